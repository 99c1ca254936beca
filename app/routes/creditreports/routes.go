package creditreports

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khalidoy/gspfinanceback/app/config"
	"github.com/khalidoy/gspfinanceback/app/routes/auth"
)

// SetupCreditReportsRoutes sets up the arrears report routes.
func SetupCreditReportsRoutes(app *fiber.App) {
	credit := app.Group("/creditreports")
	credit.Use(auth.AuthMiddleware)

	credit.Get("/all_months_report", func(c *fiber.Ctx) error {
		return AllMonthsReportAPI(c, config.GetDB())
	})
}
