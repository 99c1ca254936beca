package students

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khalidoy/gspfinanceback/app/config"
	"github.com/khalidoy/gspfinanceback/app/routes/auth"
)

// SetupStudentsRoutes sets up the student CRUD routes.
func SetupStudentsRoutes(app *fiber.App) {
	students := app.Group("/students")
	students.Use(auth.AuthMiddleware)

	students.Get("/", func(c *fiber.Ctx) error {
		return GetStudentsAPI(c, config.GetDB())
	})

	students.Post("/", func(c *fiber.Ctx) error {
		return CreateStudentAPI(c, config.GetDB())
	})

	students.Post("/batch_left", func(c *fiber.Ctx) error {
		return BatchFlagLeftAPI(c, config.GetDB())
	})

	students.Get("/:student_id", func(c *fiber.Ctx) error {
		return GetStudentAPI(c, config.GetDB())
	})

	students.Put("/:student_id", func(c *fiber.Ctx) error {
		return UpdateStudentAPI(c, config.GetDB())
	})

	// Soft delete: flags the student as left, keeping the year's ledger.
	students.Put("/:student_id/delete", func(c *fiber.Ctx) error {
		return FlagStudentLeftAPI(c, config.GetDB())
	})

	students.Delete("/:student_id", func(c *fiber.Ctx) error {
		return DeleteStudentAPI(c, config.GetDB())
	})

	students.Get("/:student_id/saves", func(c *fiber.Ctx) error {
		return GetStudentSavesAPI(c, config.GetDB())
	})
}
