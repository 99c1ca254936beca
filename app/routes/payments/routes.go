package payments

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khalidoy/gspfinanceback/app/config"
	"github.com/khalidoy/gspfinanceback/app/routes/auth"
)

// SetupPaymentsRoutes sets up the reconciliation endpoints.
func SetupPaymentsRoutes(app *fiber.App) {
	payments := app.Group("/payments")
	payments.Use(auth.AuthMiddleware)

	payments.Post("/create_or_update", func(c *fiber.Ctx) error {
		return CreateOrUpdatePaymentAPI(c, config.GetDB())
	})

	payments.Post("/agreed_changes", func(c *fiber.Ctx) error {
		return AgreedChangesAPI(c, config.GetDB())
	})

	payments.Delete("/:payment_id", func(c *fiber.Ctx) error {
		return DeletePaymentAPI(c, config.GetDB())
	})
}
