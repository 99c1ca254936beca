package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khalidoy/gspfinanceback/app/models"
)

func TestGetLivePaymentMonthScoped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	month := 9
	now := time.Now()
	mock.ExpectQuery("SELECT id, student_id, user_id, date, amount, payment_type, month FROM payments").
		WithArgs("stu-1", "monthly", 9).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "student_id", "user_id", "date", "amount", "payment_type", "month"},
		).AddRow("pay-1", "stu-1", "usr-1", now, 500.0, "monthly", 9))

	p, err := GetLivePayment(db, "stu-1", models.PaymentMonthly, &month)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "pay-1", p.ID)
	assert.Equal(t, 500.0, p.Amount)
	assert.Equal(t, models.PaymentMonthly, p.PaymentType)
	require.NotNil(t, p.Month)
	assert.Equal(t, 9, *p.Month)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLivePaymentInsuranceHasNoMonth(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The insurance lookup matches on month IS NULL, so only two args bind.
	mock.ExpectQuery("month IS NULL").
		WithArgs("stu-1", "insurance").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "student_id", "user_id", "date", "amount", "payment_type", "month"},
		))

	p, err := GetLivePayment(db, "stu-1", models.PaymentInsurance, nil)
	require.NoError(t, err)
	assert.Nil(t, p, "no live row means nil, not an error")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePaymentNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM payments").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = DeletePayment(db, "missing")

	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
