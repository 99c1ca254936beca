package main

import (
	"log"

	"github.com/khalidoy/gspfinanceback/app/config"
	"github.com/khalidoy/gspfinanceback/app/database"
)

func main() {
	log.Println("Running schema migrations...")

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatal("Migration failed:", err)
	}
	log.Println("Migrations completed successfully")
}
