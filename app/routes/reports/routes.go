package reports

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khalidoy/gspfinanceback/app/config"
	"github.com/khalidoy/gspfinanceback/app/routes/auth"
)

// SetupReportsRoutes sets up the profit and distribution report routes.
func SetupReportsRoutes(app *fiber.App) {
	reports := app.Group("/reports")
	reports.Use(auth.AuthMiddleware)

	reports.Get("/normal_profit_report", func(c *fiber.Ctx) error {
		return NormalProfitReportAPI(c, config.GetDB())
	})

	reports.Get("/unknown_agreed_payments", func(c *fiber.Ctx) error {
		return UnknownAgreedPaymentsAPI(c, config.GetDB())
	})

	reports.Get("/payments-report", func(c *fiber.Ctx) error {
		return PaymentsDistributionAPI(c, config.GetDB())
	})

	reports.Get("/transport-report", func(c *fiber.Ctx) error {
		return TransportDistributionAPI(c, config.GetDB())
	})
}
