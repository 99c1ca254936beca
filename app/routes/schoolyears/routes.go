package schoolyears

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khalidoy/gspfinanceback/app/config"
	"github.com/khalidoy/gspfinanceback/app/routes/auth"
)

// SetupSchoolYearsRoutes sets up the school-year period routes.
func SetupSchoolYearsRoutes(app *fiber.App) {
	years := app.Group("/schoolyearperiods")
	years.Use(auth.AuthMiddleware)

	years.Get("/", func(c *fiber.Ctx) error {
		return GetSchoolYearsAPI(c, config.GetDB())
	})

	years.Post("/", func(c *fiber.Ctx) error {
		return CreateSchoolYearAPI(c, config.GetDB())
	})

	years.Get("/:schoolyear_id", func(c *fiber.Ctx) error {
		return GetSchoolYearAPI(c, config.GetDB())
	})

	years.Put("/:schoolyear_id", func(c *fiber.Ctx) error {
		return UpdateSchoolYearAPI(c, config.GetDB())
	})

	years.Delete("/:schoolyear_id", func(c *fiber.Ctx) error {
		return DeleteSchoolYearAPI(c, config.GetDB())
	})
}
