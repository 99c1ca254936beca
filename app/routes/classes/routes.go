package classes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khalidoy/gspfinanceback/app/config"
	"github.com/khalidoy/gspfinanceback/app/routes/auth"
)

// SetupClassesRoutes sets up the class CRUD routes.
func SetupClassesRoutes(app *fiber.App) {
	classes := app.Group("/classes")
	classes.Use(auth.AuthMiddleware)

	classes.Get("/", func(c *fiber.Ctx) error {
		return GetClassesAPI(c, config.GetDB())
	})

	classes.Post("/", func(c *fiber.Ctx) error {
		return CreateClassAPI(c, config.GetDB())
	})

	classes.Get("/:class_id", func(c *fiber.Ctx) error {
		return GetClassAPI(c, config.GetDB())
	})

	classes.Put("/:class_id", func(c *fiber.Ctx) error {
		return UpdateClassAPI(c, config.GetDB())
	})

	classes.Delete("/:class_id", func(c *fiber.Ctx) error {
		return DeleteClassAPI(c, config.GetDB())
	})
}
