package accounting

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/khalidoy/gspfinanceback/app/models"
	"github.com/khalidoy/gspfinanceback/app/services"
)

// GetTodayAPI returns the raw payments and daily expenses of the current day,
// unaggregated.
func GetTodayAPI(c *fiber.Ctx, db *sql.DB) error {
	activity, err := services.GetTodayActivity(db, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":   "success",
		"payments": activity.Payments,
		"expenses": activity.Expenses,
	})
}

// ValidateDayAPI closes the current day: totals are snapshotted and the day
// becomes immutable.
func ValidateDayAPI(c *fiber.Ctx, db *sql.DB) error {
	rec, err := services.ValidateDay(db, time.Now())
	if err != nil {
		return err
	}
	return c.Status(201).JSON(fiber.Map{
		"status":  "success",
		"message": "Today's accounting has been validated.",
		"data":    rec,
	})
}

// GetDayStatusAPI reports whether today has been closed and its totals.
func GetDayStatusAPI(c *fiber.Ctx, db *sql.DB) error {
	status, err := services.GetDayStatus(db, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":         "success",
		"isValidated":    status.IsValidated,
		"net_profit":     status.NetProfit,
		"total_payments": status.TotalPayments,
		"total_expenses": status.TotalExpenses,
	})
}

// DailyAccountingReportAPI expands every closed day in [start_date, end_date]
// with its payment and expense details.
func DailyAccountingReportAPI(c *fiber.Ctx, db *sql.DB) error {
	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	if startStr == "" || endStr == "" {
		return &models.ValidationError{Message: "start_date and end_date are required"}
	}

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return &models.ValidationError{Message: "start_date must be an ISO date"}
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return &models.ValidationError{Message: "end_date must be an ISO date"}
	}

	entries, err := services.DailyAccountingReport(db, start, end)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": entries})
}
