package services

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/khalidoy/gspfinanceback/app/database"
	"github.com/khalidoy/gspfinanceback/app/models"
)

// PaymentRequest is the reconciliation input: one collected amount for one
// student, stream and (for month-scoped streams) calendar month.
type PaymentRequest struct {
	StudentID   string             `json:"student_id" validate:"required"`
	PaymentType models.PaymentType `json:"payment_type" validate:"required"`
	Month       *int               `json:"month,omitempty"`
	Amount      float64            `json:"amount" validate:"gte=0"`
}

// RecordRealPayment applies a collected amount to a student's ledger: the real
// cell is overwritten, the agreed cell raised to match if undercut, and the
// raised floor propagated to later months. The touched ledger rows and the
// live Payment row are written in one transaction; the change log is appended
// afterwards, fire-and-forget.
func RecordRealPayment(db *sql.DB, userID string, req PaymentRequest) (*models.Student, error) {
	stream, ok := req.PaymentType.Stream()
	if !ok || req.PaymentType.IsAgreed() {
		return nil, &models.ValidationError{Message: fmt.Sprintf("unknown payment type: %s", req.PaymentType)}
	}
	if req.Amount < 0 {
		return nil, &models.ValidationError{Message: "amount must not be negative"}
	}

	var slot models.MonthSlot
	if req.PaymentType.MonthScoped() {
		if req.Month == nil {
			return nil, &models.ValidationError{Message: "month is required for " + string(req.PaymentType) + " payments"}
		}
		var err error
		slot, err = models.SlotFromCalendarMonth(*req.Month)
		if err != nil {
			return nil, err
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, &models.StorageError{Op: "begin payment", Err: err}
	}
	defer tx.Rollback()

	student, err := database.GetStudentWithLedgerForUpdate(tx, req.StudentID)
	if err != nil {
		return nil, err
	}

	var changes []models.LedgerChange
	if stream == models.StreamInsurance {
		changes = student.Payments.ApplyRealInsurance(req.Amount)
	} else {
		changes = student.Payments.ApplyReal(stream, slot, req.Amount)
	}

	if len(changes) > 0 {
		if err := database.UpsertLedgerChanges(tx, student.ID, changes, &student.Payments); err != nil {
			return nil, err
		}
	}

	if err := upsertLivePayment(tx, student.ID, userID, req); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, &models.StorageError{Op: "commit payment", Err: err}
	}

	if len(changes) > 0 {
		go logLedgerChanges(db, student.ID, userID, req.PaymentType, changes)
	}
	return student, nil
}

// upsertLivePayment keeps at most one Payment row per student/type/month and
// tracks the latest collected amount on it. A zero amount deletes the row.
func upsertLivePayment(tx *sql.Tx, studentID, userID string, req PaymentRequest) error {
	var month *int
	if req.PaymentType.MonthScoped() {
		month = req.Month
	}

	live, err := database.GetLivePayment(tx, studentID, req.PaymentType, month)
	if err != nil {
		return err
	}

	if req.Amount == 0 {
		if live != nil {
			return database.DeletePayment(tx, live.ID)
		}
		return nil
	}

	if live != nil {
		return database.UpdatePaymentAmount(tx, live.ID, req.Amount, userID)
	}
	return database.InsertPayment(tx, &models.Payment{
		StudentID:   studentID,
		UserID:      userID,
		Date:        time.Now(),
		Amount:      req.Amount,
		PaymentType: req.PaymentType,
		Month:       month,
	})
}

// DeletePaymentAndReset removes a payment row and zeroes the real-ledger cell
// it was tracking. Agreed amounts are untouched.
func DeletePaymentAndReset(db *sql.DB, userID, paymentID string) (*models.Student, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, &models.StorageError{Op: "begin payment delete", Err: err}
	}
	defer tx.Rollback()

	payment, err := database.GetPaymentByID(tx, paymentID)
	if err != nil {
		return nil, err
	}

	student, err := database.GetStudentWithLedgerForUpdate(tx, payment.StudentID)
	if err != nil {
		return nil, err
	}

	stream, ok := payment.PaymentType.Stream()
	if !ok {
		return nil, &models.ValidationError{Message: fmt.Sprintf("unknown payment type: %s", payment.PaymentType)}
	}

	var changes []models.LedgerChange
	if stream == models.StreamInsurance {
		changes = student.Payments.ApplyRealInsurance(0)
	} else {
		if payment.Month == nil {
			return nil, &models.ValidationError{Message: "payment has no month"}
		}
		slot, err := models.SlotFromCalendarMonth(*payment.Month)
		if err != nil {
			return nil, err
		}
		changes = student.Payments.ApplyReal(stream, slot, 0)
	}

	if len(changes) > 0 {
		if err := database.UpsertLedgerChanges(tx, student.ID, changes, &student.Payments); err != nil {
			return nil, err
		}
	}
	if err := database.DeletePayment(tx, payment.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, &models.StorageError{Op: "commit payment delete", Err: err}
	}

	if len(changes) > 0 {
		go logLedgerChanges(db, student.ID, userID, payment.PaymentType, changes)
	}
	return student, nil
}

// AgreedChange is one cell of a bulk agreed-amount edit, addressed by the
// legacy field name ("m9_agreed", "m10_transport_agreed", "insurance_agreed").
type AgreedChange struct {
	Field  string  `json:"field" validate:"required"`
	Amount float64 `json:"amount" validate:"gte=0"`
}

// ApplyAgreedChanges overwrites agreed cells directly. The office uses this to
// edit the contract, so no propagation is applied and values may be lowered.
func ApplyAgreedChanges(db *sql.DB, userID, studentID string, edits []AgreedChange) (*models.Student, error) {
	if len(edits) == 0 {
		return nil, &models.ValidationError{Message: "no changes supplied"}
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, &models.StorageError{Op: "begin agreed changes", Err: err}
	}
	defer tx.Rollback()

	student, err := database.GetStudentWithLedgerForUpdate(tx, studentID)
	if err != nil {
		return nil, err
	}

	var changes []models.LedgerChange
	for _, edit := range edits {
		if edit.Amount < 0 {
			return nil, &models.ValidationError{Message: "amount must not be negative"}
		}
		stream, slot, side, err := models.ParseWireField(edit.Field)
		if err != nil {
			return nil, err
		}
		if side != models.SideAgreed {
			return nil, &models.ValidationError{Message: fmt.Sprintf("%s is not an agreed field", edit.Field)}
		}
		if c, changed := student.Payments.SetAgreed(stream, slot, edit.Amount); changed {
			changes = append(changes, c)
		}
	}

	if len(changes) > 0 {
		if err := database.UpsertLedgerChanges(tx, student.ID, changes, &student.Payments); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, &models.StorageError{Op: "commit agreed changes", Err: err}
	}

	if len(changes) > 0 {
		go logLedgerChanges(db, student.ID, userID, "", changes)
	}
	return student, nil
}

// logLedgerChanges appends a Save record off the request path. A failed log
// write is logged and dropped; it never fails the payment that produced it.
func logLedgerChanges(db *sql.DB, studentID, userID string, paymentType models.PaymentType, changes []models.LedgerChange) {
	save := &models.Save{
		StudentID: studentID,
		UserID:    userID,
		Date:      time.Now(),
	}
	if paymentType != "" {
		save.Types = []string{string(paymentType)}
	} else {
		save.Types = []string{"agreed_changes"}
	}
	for _, c := range changes {
		save.Changes = append(save.Changes, models.ChangeDetail{
			FieldName: c.FieldName(),
			OldValue:  formatAmount(c.Old),
			NewValue:  formatAmount(c.New),
		})
	}
	if err := database.InsertSave(db, save); err != nil {
		logSaveFailure(studentID, err)
	}
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%g", v)
}

func logSaveFailure(studentID string, err error) {
	log.Printf("failed to record change log for student %s: %v", studentID, err)
}
