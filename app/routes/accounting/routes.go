package accounting

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khalidoy/gspfinanceback/app/config"
	"github.com/khalidoy/gspfinanceback/app/routes/auth"
)

// SetupAccountingRoutes sets up the daily close-out routes.
func SetupAccountingRoutes(app *fiber.App) {
	accounting := app.Group("/accounting")
	accounting.Use(auth.AuthMiddleware)

	accounting.Get("/daily/today", func(c *fiber.Ctx) error {
		return GetTodayAPI(c, config.GetDB())
	})

	accounting.Post("/daily/validate", func(c *fiber.Ctx) error {
		return ValidateDayAPI(c, config.GetDB())
	})

	accounting.Get("/daily/status", func(c *fiber.Ctx) error {
		return GetDayStatusAPI(c, config.GetDB())
	})

	accounting.Get("/daily_accounting_report", func(c *fiber.Ctx) error {
		return DailyAccountingReportAPI(c, config.GetDB())
	})
}
