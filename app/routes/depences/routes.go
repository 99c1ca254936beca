package depences

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khalidoy/gspfinanceback/app/config"
	"github.com/khalidoy/gspfinanceback/app/routes/auth"
)

// SetupDepencesRoutes sets up the expense routes.
func SetupDepencesRoutes(app *fiber.App) {
	depences := app.Group("/depences")
	depences.Use(auth.AuthMiddleware)

	depences.Get("/", func(c *fiber.Ctx) error {
		return GetDepencesAPI(c, config.GetDB())
	})

	depences.Post("/", func(c *fiber.Ctx) error {
		return CreateDepenceAPI(c, config.GetDB())
	})

	depences.Get("/monthly", func(c *fiber.Ctx) error {
		return GetAllMonthlySheetsAPI(c, config.GetDB())
	})

	depences.Get("/monthly/:month", func(c *fiber.Ctx) error {
		return GetMonthlySheetAPI(c, config.GetDB())
	})

	depences.Post("/monthly/:month", func(c *fiber.Ctx) error {
		return UpsertMonthlySheetAPI(c, config.GetDB())
	})

	depences.Get("/:depence_id", func(c *fiber.Ctx) error {
		return GetDepenceAPI(c, config.GetDB())
	})

	depences.Put("/:depence_id", func(c *fiber.Ctx) error {
		return UpdateDepenceAPI(c, config.GetDB())
	})

	depences.Delete("/:depence_id", func(c *fiber.Ctx) error {
		return DeleteDepenceAPI(c, config.GetDB())
	})
}
