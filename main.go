package main

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/khalidoy/gspfinanceback/app/config"
	"github.com/khalidoy/gspfinanceback/app/database"
	"github.com/khalidoy/gspfinanceback/app/models"
	"github.com/khalidoy/gspfinanceback/app/routes/accounting"
	"github.com/khalidoy/gspfinanceback/app/routes/auth"
	"github.com/khalidoy/gspfinanceback/app/routes/classes"
	"github.com/khalidoy/gspfinanceback/app/routes/creditreports"
	"github.com/khalidoy/gspfinanceback/app/routes/depences"
	"github.com/khalidoy/gspfinanceback/app/routes/payments"
	"github.com/khalidoy/gspfinanceback/app/routes/reports"
	"github.com/khalidoy/gspfinanceback/app/routes/schoolyears"
	"github.com/khalidoy/gspfinanceback/app/routes/students"
)

// errorHandler maps the typed error taxonomy onto HTTP status codes so
// handlers can return domain errors directly.
func errorHandler(c *fiber.Ctx, err error) error {
	var (
		validation *models.ValidationError
		notFound   *models.NotFoundError
		validated  *models.AlreadyValidatedError
		storage    *models.StorageError
	)

	switch {
	case errors.As(err, &validation):
		return c.Status(400).JSON(fiber.Map{"status": "error", "message": validation.Error()})
	case errors.As(err, &notFound):
		return c.Status(404).JSON(fiber.Map{"status": "error", "message": notFound.Error()})
	case errors.As(err, &validated):
		return c.Status(400).JSON(fiber.Map{"status": "error", "message": validated.Error()})
	case errors.As(err, &storage):
		log.Printf("storage error: %v", storage)
		return c.Status(500).JSON(fiber.Map{"status": "error", "message": "Internal server error"})
	}

	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{"status": "error", "message": err.Error()})
}

func main() {
	config.InitDB()
	defer config.GetDB().Close()

	if err := database.EnsureSchema(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Routes
	auth.SetupAuthRoutes(app)
	students.SetupStudentsRoutes(app)
	payments.SetupPaymentsRoutes(app)
	schoolyears.SetupSchoolYearsRoutes(app)
	classes.SetupClassesRoutes(app)
	depences.SetupDepencesRoutes(app)
	accounting.SetupAccountingRoutes(app)
	reports.SetupReportsRoutes(app)
	creditreports.SetupCreditReportsRoutes(app)

	log.Printf("Starting server on %s", config.AppConfig.ListenAddr)
	log.Fatal(app.Listen(config.AppConfig.ListenAddr))
}
