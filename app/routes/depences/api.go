package depences

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/khalidoy/gspfinanceback/app/database"
	"github.com/khalidoy/gspfinanceback/app/models"
)

var validate = validator.New()

// GetDepencesAPI lists expenses, optionally bounded by start_date/end_date
// query parameters (ISO dates) and filtered by type.
func GetDepencesAPI(c *fiber.Ctx, db *sql.DB) error {
	from := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Now().AddDate(10, 0, 0)

	if s := c.Query("start_date"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return &models.ValidationError{Message: "start_date must be an ISO date"}
		}
		from = parsed
	}
	if s := c.Query("end_date"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return &models.ValidationError{Message: "end_date must be an ISO date"}
		}
		to = parsed.AddDate(0, 0, 1)
	}

	depences, err := database.ListDepencesBetween(db, from, to, c.Query("type"))
	if err != nil {
		return err
	}
	if depences == nil {
		depences = []*models.Depence{}
	}
	return c.JSON(fiber.Map{"status": "success", "data": depences})
}

func CreateDepenceAPI(c *fiber.Ctx, db *sql.DB) error {
	var depence models.Depence
	if err := c.BodyParser(&depence); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if depence.Type == "" {
		depence.Type = models.DepenceDaily
	}
	if depence.Date.IsZero() {
		depence.Date = time.Now()
	}
	if err := validate.Struct(depence); err != nil {
		return &models.ValidationError{Message: err.Error()}
	}

	if err := database.CreateDepence(db, &depence); err != nil {
		return err
	}
	return c.Status(201).JSON(fiber.Map{"status": "success", "data": depence})
}

func GetDepenceAPI(c *fiber.Ctx, db *sql.DB) error {
	depence, err := database.GetDepenceByID(db, c.Params("depence_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": depence})
}

func UpdateDepenceAPI(c *fiber.Ctx, db *sql.DB) error {
	depence, err := database.GetDepenceByID(db, c.Params("depence_id"))
	if err != nil {
		return err
	}

	var req models.Depence
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Type != "" {
		depence.Type = req.Type
	}
	if req.Description != "" {
		depence.Description = req.Description
	}
	if !req.Date.IsZero() {
		depence.Date = req.Date
	}
	depence.Amount = req.Amount
	depence.FixedExpenses = req.FixedExpenses
	if err := validate.Struct(depence); err != nil {
		return &models.ValidationError{Message: err.Error()}
	}

	if err := database.UpdateDepence(db, depence); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": depence})
}

func DeleteDepenceAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteDepence(db, c.Params("depence_id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Depence deleted successfully."})
}

// monthYear anchors a school-year month in the running year: Sep-Dec fall in
// the current calendar year, Jan-Aug in the next.
func monthYear(month int, now time.Time) int {
	if month >= 9 {
		return now.Year()
	}
	return now.Year() + 1
}

// GetAllMonthlySheetsAPI returns every monthly expense sheet of the running
// school year.
func GetAllMonthlySheetsAPI(c *fiber.Ctx, db *sql.DB) error {
	now := time.Now()
	sheets := []*models.Depence{}

	for month := 1; month <= 12; month++ {
		sheet, err := database.GetMonthlyDepence(db, monthYear(month, now), time.Month(month))
		if err != nil {
			return err
		}
		if sheet != nil {
			sheets = append(sheets, sheet)
		}
	}
	return c.JSON(fiber.Map{"status": "success", "data": sheets})
}

// GetMonthlySheetAPI fetches the monthly sheet for one calendar month.
func GetMonthlySheetAPI(c *fiber.Ctx, db *sql.DB) error {
	month, err := strconv.Atoi(c.Params("month"))
	if err != nil || month < 1 || month > 12 {
		return &models.ValidationError{Message: "month must be between 1 and 12"}
	}

	sheet, dbErr := database.GetMonthlyDepence(db, monthYear(month, time.Now()), time.Month(month))
	if dbErr != nil {
		return dbErr
	}
	if sheet == nil {
		return c.JSON(fiber.Map{"status": "success", "data": []*models.Depence{}})
	}
	return c.JSON(fiber.Map{"status": "success", "data": sheet})
}

// UpsertMonthlySheetAPI creates or replaces the fixed-expense sheet of one
// month. The sheet is anchored at the first of the month.
func UpsertMonthlySheetAPI(c *fiber.Ctx, db *sql.DB) error {
	month, err := strconv.Atoi(c.Params("month"))
	if err != nil || month < 1 || month > 12 {
		return &models.ValidationError{Message: "month must be between 1 and 12"}
	}

	var req struct {
		Description   string                `json:"description"`
		Amount        float64               `json:"amount"`
		FixedExpenses []models.FixedExpense `json:"fixed_expenses"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	amount := req.Amount
	if amount == 0 {
		for _, fe := range req.FixedExpenses {
			amount += fe.ExpenseAmount
		}
	}

	year := monthYear(month, time.Now())
	existing, err := database.GetMonthlyDepence(db, year, time.Month(month))
	if err != nil {
		return err
	}

	if existing != nil {
		existing.Amount = amount
		existing.FixedExpenses = req.FixedExpenses
		if req.Description != "" {
			existing.Description = req.Description
		}
		if err := database.UpdateDepence(db, existing); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"status": "success", "data": existing})
	}

	sheet := &models.Depence{
		Type:          models.DepenceMonthly,
		Description:   req.Description,
		Date:          time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
		Amount:        amount,
		FixedExpenses: req.FixedExpenses,
	}
	if err := database.CreateDepence(db, sheet); err != nil {
		return err
	}
	return c.Status(201).JSON(fiber.Map{"status": "success", "data": sheet})
}
