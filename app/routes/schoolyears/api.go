package schoolyears

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/khalidoy/gspfinanceback/app/database"
	"github.com/khalidoy/gspfinanceback/app/models"
)

var validate = validator.New()

func GetSchoolYearsAPI(c *fiber.Ctx, db *sql.DB) error {
	periods, err := database.ListSchoolYears(db)
	if err != nil {
		return err
	}
	if periods == nil {
		periods = []*models.SchoolYearPeriod{}
	}
	return c.JSON(periods)
}

// CreateSchoolYearAPI creates a period and carries the previous year's active
// students into it with fresh ledgers.
func CreateSchoolYearAPI(c *fiber.Ctx, db *sql.DB) error {
	var period models.SchoolYearPeriod
	if err := c.BodyParser(&period); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(period); err != nil {
		return &models.ValidationError{Message: err.Error()}
	}
	if !period.EndDate.After(period.StartDate) {
		return &models.ValidationError{Message: "end_date must be after start_date"}
	}

	carried, err := database.CreateSchoolYearWithRollover(db, &period)
	if err != nil {
		return err
	}
	return c.Status(201).JSON(fiber.Map{
		"school_year_period": period,
		"students_carried":   carried,
	})
}

func GetSchoolYearAPI(c *fiber.Ctx, db *sql.DB) error {
	period, err := database.GetSchoolYearByID(db, c.Params("schoolyear_id"))
	if err != nil {
		return err
	}
	return c.JSON(period)
}

func UpdateSchoolYearAPI(c *fiber.Ctx, db *sql.DB) error {
	period, err := database.GetSchoolYearByID(db, c.Params("schoolyear_id"))
	if err != nil {
		return err
	}

	var req models.SchoolYearPeriod
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name != "" {
		period.Name = req.Name
	}
	if !req.StartDate.IsZero() {
		period.StartDate = req.StartDate
	}
	if !req.EndDate.IsZero() {
		period.EndDate = req.EndDate
	}
	if !period.EndDate.After(period.StartDate) {
		return &models.ValidationError{Message: "end_date must be after start_date"}
	}

	if err := database.UpdateSchoolYear(db, period); err != nil {
		return err
	}
	return c.JSON(period)
}

func DeleteSchoolYearAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteSchoolYear(db, c.Params("schoolyear_id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "School year period deleted successfully."})
}
