package main

import (
	"flag"
	"fmt"

	"github.com/khalidoy/gspfinanceback/app/config"
	"github.com/khalidoy/gspfinanceback/app/database"
)

func main() {
	username := flag.String("username", "admin", "username for the new account")
	password := flag.String("password", "", "password for the new account")
	flag.Parse()

	if *password == "" {
		fmt.Println("Usage: create_admin -username admin -password <password>")
		return
	}

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		fmt.Printf("Error preparing schema: %v\n", err)
		return
	}

	user, err := database.CreateUser(db, *username, *password)
	if err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		return
	}
	fmt.Printf("User created successfully: %s (%s)\n", user.Username, user.ID)
}
