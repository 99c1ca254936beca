package creditreports

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/khalidoy/gspfinanceback/app/models"
	"github.com/khalidoy/gspfinanceback/app/services"
)

// AllMonthsReportAPI returns the arrears view of every school-year month,
// September through June.
func AllMonthsReportAPI(c *fiber.Ctx, db *sql.DB) error {
	schoolYearID := c.Query("schoolyear_id")
	if schoolYearID == "" {
		return &models.ValidationError{Message: "School Year Period ID is required"}
	}

	months, err := services.AllMonthsCreditReport(db, schoolYearID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": months})
}
