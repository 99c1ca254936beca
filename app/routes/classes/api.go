package classes

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/khalidoy/gspfinanceback/app/database"
	"github.com/khalidoy/gspfinanceback/app/models"
)

var validate = validator.New()

func GetClassesAPI(c *fiber.Ctx, db *sql.DB) error {
	classes, err := database.ListClasses(db)
	if err != nil {
		return err
	}
	if classes == nil {
		classes = []*models.Class{}
	}
	return c.JSON(classes)
}

func CreateClassAPI(c *fiber.Ctx, db *sql.DB) error {
	var class models.Class
	if err := c.BodyParser(&class); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(class); err != nil {
		return &models.ValidationError{Message: err.Error()}
	}

	if err := database.CreateClass(db, &class); err != nil {
		return err
	}
	return c.Status(201).JSON(class)
}

func GetClassAPI(c *fiber.Ctx, db *sql.DB) error {
	class, err := database.GetClassByID(db, c.Params("class_id"))
	if err != nil {
		return err
	}
	return c.JSON(class)
}

func UpdateClassAPI(c *fiber.Ctx, db *sql.DB) error {
	class, err := database.GetClassByID(db, c.Params("class_id"))
	if err != nil {
		return err
	}

	var req models.Class
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name != "" {
		class.Name = req.Name
	}
	if req.Order != 0 {
		class.Order = req.Order
	}

	if err := database.UpdateClass(db, class); err != nil {
		return err
	}
	return c.JSON(class)
}

func DeleteClassAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteClass(db, c.Params("class_id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Class deleted successfully."})
}
