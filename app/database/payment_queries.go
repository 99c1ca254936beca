package database

import (
	"database/sql"
	"time"

	"github.com/khalidoy/gspfinanceback/app/models"
)

const paymentColumns = `id, student_id, user_id, date, amount, payment_type, month`

func scanPayment(row interface{ Scan(...interface{}) error }) (*models.Payment, error) {
	p := &models.Payment{}
	var userID sql.NullString
	err := row.Scan(&p.ID, &p.StudentID, &userID, &p.Date, &p.Amount, &p.PaymentType, &p.Month)
	if err != nil {
		return nil, err
	}
	p.UserID = userID.String
	return p, nil
}

// GetPaymentByID loads one payment row.
func GetPaymentByID(q Querier, id string) (*models.Payment, error) {
	row := q.QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
	p, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Resource: "Payment"}
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get payment", Err: err}
	}
	return p, nil
}

// GetLivePayment finds the single live payment row for a student/type/month
// combination, if one exists. Month is nil for insurance.
func GetLivePayment(q Querier, studentID string, paymentType models.PaymentType, month *int) (*models.Payment, error) {
	var row *sql.Row
	if month == nil {
		row = q.QueryRow(
			`SELECT `+paymentColumns+` FROM payments
			 WHERE student_id = $1 AND payment_type = $2 AND month IS NULL`,
			studentID, string(paymentType),
		)
	} else {
		row = q.QueryRow(
			`SELECT `+paymentColumns+` FROM payments
			 WHERE student_id = $1 AND payment_type = $2 AND month = $3`,
			studentID, string(paymentType), *month,
		)
	}
	p, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &models.StorageError{Op: "find live payment", Err: err}
	}
	return p, nil
}

// InsertPayment creates a new payment row.
func InsertPayment(q Querier, p *models.Payment) error {
	err := q.QueryRow(
		`INSERT INTO payments (student_id, user_id, date, amount, payment_type, month)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		p.StudentID, nullString(p.UserID), p.Date, p.Amount, string(p.PaymentType), p.Month,
	).Scan(&p.ID)
	if err != nil {
		return &models.StorageError{Op: "insert payment", Err: err}
	}
	return nil
}

// UpdatePaymentAmount overwrites the live row's amount and refreshes its
// timestamp so the row lands in today's accounting window.
func UpdatePaymentAmount(q Querier, id string, amount float64, userID string) error {
	_, err := q.Exec(
		`UPDATE payments SET amount = $1, user_id = $2, date = NOW() WHERE id = $3`,
		amount, nullString(userID), id,
	)
	if err != nil {
		return &models.StorageError{Op: "update payment", Err: err}
	}
	return nil
}

// DeletePayment removes a payment row.
func DeletePayment(q Querier, id string) error {
	res, err := q.Exec(`DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return &models.StorageError{Op: "delete payment", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &models.NotFoundError{Resource: "Payment"}
	}
	return nil
}

// ListPaymentsBetween returns payments in [from, to) with student names
// joined in, newest first.
func ListPaymentsBetween(q Querier, from, to time.Time) ([]*models.Payment, error) {
	rows, err := q.Query(
		`SELECT p.id, p.student_id, p.user_id, p.date, p.amount, p.payment_type, p.month, s.name
		 FROM payments p
		 JOIN students s ON s.id = p.student_id
		 WHERE p.date >= $1 AND p.date < $2
		 ORDER BY p.date DESC`,
		from, to,
	)
	if err != nil {
		return nil, &models.StorageError{Op: "list payments", Err: err}
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		var userID sql.NullString
		if err := rows.Scan(&p.ID, &p.StudentID, &userID, &p.Date, &p.Amount, &p.PaymentType, &p.Month, &p.StudentName); err != nil {
			return nil, &models.StorageError{Op: "scan payment", Err: err}
		}
		p.UserID = userID.String
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
