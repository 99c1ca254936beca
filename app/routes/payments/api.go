package payments

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/khalidoy/gspfinanceback/app/models"
	"github.com/khalidoy/gspfinanceback/app/routes/auth"
	"github.com/khalidoy/gspfinanceback/app/services"
)

var validate = validator.New()

// CreateOrUpdatePaymentAPI records a collected amount against a student's
// ledger. An amount of zero reverses the month's collection.
func CreateOrUpdatePaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req services.PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return &models.ValidationError{Message: err.Error()}
	}
	if !models.ValidID(req.StudentID) {
		return &models.ValidationError{Message: "student_id must be a valid id"}
	}

	student, err := services.RecordRealPayment(db, auth.CallerID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"student": student,
	})
}

// AgreedChangesAPI bulk-edits a student's agreed amounts. The body carries the
// legacy field map: {"student_id": ..., "agreed_payments": {"m9_agreed": 500}}.
func AgreedChangesAPI(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		StudentID      string             `json:"student_id" validate:"required"`
		AgreedPayments map[string]float64 `json:"agreed_payments" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return &models.ValidationError{Message: err.Error()}
	}

	edits := make([]services.AgreedChange, 0, len(req.AgreedPayments))
	for field, amount := range req.AgreedPayments {
		edits = append(edits, services.AgreedChange{Field: field, Amount: amount})
	}

	student, err := services.ApplyAgreedChanges(db, auth.CallerID(c), req.StudentID, edits)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"student": student,
	})
}

// DeletePaymentAPI removes a payment and zeroes the real-ledger cell it
// tracked.
func DeletePaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	paymentID := c.Params("payment_id")
	if !models.ValidID(paymentID) {
		return &models.ValidationError{Message: "payment_id must be a valid id"}
	}
	student, err := services.DeletePaymentAndReset(db, auth.CallerID(c), paymentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"student": student,
	})
}
