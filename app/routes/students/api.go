package students

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/khalidoy/gspfinanceback/app/database"
	"github.com/khalidoy/gspfinanceback/app/models"
	"github.com/khalidoy/gspfinanceback/app/routes/auth"
	"github.com/khalidoy/gspfinanceback/app/services"
)

var validate = validator.New()

// GetStudentsAPI lists every student of a school-year period with their
// ledgers.
func GetStudentsAPI(c *fiber.Ctx, db *sql.DB) error {
	schoolYearID := c.Query("schoolyear_id")
	if schoolYearID == "" {
		return &models.ValidationError{Message: "schoolyear_id query parameter is required"}
	}
	if _, err := database.GetSchoolYearByID(db, schoolYearID); err != nil {
		return err
	}

	students, err := database.ListStudentsByPeriod(db, schoolYearID)
	if err != nil {
		return err
	}
	if students == nil {
		students = []*models.Student{}
	}
	return c.JSON(students)
}

// CreateStudentAPI registers a student with an optional pre-filled ledger.
func CreateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if student.JoinedMonth == 0 {
		student.JoinedMonth = 9
	}
	if err := validate.Struct(student); err != nil {
		return &models.ValidationError{Message: err.Error()}
	}
	if _, err := database.GetSchoolYearByID(db, student.SchoolYearID); err != nil {
		return err
	}

	if err := database.CreateStudent(db, &student); err != nil {
		return err
	}
	return c.Status(201).JSON(student)
}

func GetStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	if !models.ValidID(c.Params("student_id")) {
		return &models.ValidationError{Message: "student_id must be a valid id"}
	}
	student, err := database.GetStudentByID(db, c.Params("student_id"))
	if err != nil {
		return err
	}
	return c.JSON(student)
}

// UpdateStudentAPI edits the student's descriptive fields and, when the body
// carries a payments object, overwrites the full ledger. Ledger overwrites are
// office corrections; they skip propagation and land in the change log.
func UpdateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	student, err := database.GetStudentByID(db, c.Params("student_id"))
	if err != nil {
		return err
	}

	var req struct {
		Name         *string        `json:"name"`
		JoinedMonth  *int           `json:"joined_month"`
		Observations *string        `json:"observations"`
		ClassID      *string        `json:"class_id"`
		Payments     *models.Ledger `json:"payments"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.JoinedMonth != nil {
		if *req.JoinedMonth < 1 || *req.JoinedMonth > 12 {
			return &models.ValidationError{Message: "joined_month must be between 1 and 12"}
		}
		student.JoinedMonth = *req.JoinedMonth
	}
	if req.Observations != nil {
		student.Observations = *req.Observations
	}
	if req.ClassID != nil {
		if *req.ClassID == "" {
			student.ClassID = nil
		} else {
			student.ClassID = req.ClassID
		}
	}

	if err := services.UpdateStudent(db, auth.CallerID(c), student, req.Payments); err != nil {
		return err
	}
	return c.JSON(student)
}

// FlagStudentLeftAPI soft-deletes: the student is marked as departed but keeps
// their financial history for the year.
func FlagStudentLeftAPI(c *fiber.Ctx, db *sql.DB) error {
	student, err := database.FlagStudentLeft(db, c.Params("student_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Student flagged as left successfully.",
		"student": student,
	})
}

// BatchFlagLeftAPI marks many students as left in one call. Failures are
// reported per item; one bad id does not abort the rest of the batch.
func BatchFlagLeftAPI(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		StudentIDs []string `json:"student_ids" validate:"required,min=1"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return &models.ValidationError{Message: err.Error()}
	}

	type itemResult struct {
		StudentID string `json:"student_id"`
		Status    string `json:"status"`
		Error     string `json:"error,omitempty"`
	}
	results := make([]itemResult, 0, len(req.StudentIDs))
	for _, id := range req.StudentIDs {
		if _, err := database.FlagStudentLeft(db, id); err != nil {
			results = append(results, itemResult{StudentID: id, Status: "error", Error: err.Error()})
			continue
		}
		results = append(results, itemResult{StudentID: id, Status: "success"})
	}
	return c.JSON(fiber.Map{"results": results})
}

// DeleteStudentAPI hard-deletes a student and their financial history.
func DeleteStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteStudent(db, c.Params("student_id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Student deleted successfully."})
}

// GetStudentSavesAPI returns the student's ledger change log, newest first.
func GetStudentSavesAPI(c *fiber.Ctx, db *sql.DB) error {
	if _, err := database.GetStudentByID(db, c.Params("student_id")); err != nil {
		return err
	}
	saves, err := database.ListSavesByStudent(db, c.Params("student_id"))
	if err != nil {
		return err
	}
	if saves == nil {
		saves = []*models.Save{}
	}
	return c.JSON(saves)
}
