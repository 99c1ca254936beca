package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khalidoy/gspfinanceback/app/models"
)

func TestComputeDailyTotals(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	payments := []*models.Payment{
		{ID: "p1", Amount: 100},
		{ID: "p2", Amount: 50},
	}
	depences := []*models.Depence{
		{ID: "d1", Amount: 30},
	}

	rec := ComputeDailyTotals(day, payments, depences)

	assert.Equal(t, 150.0, rec.TotalPayments)
	assert.Equal(t, 30.0, rec.TotalExpenses)
	assert.Equal(t, 120.0, rec.NetProfit)
	assert.Equal(t, []string{"p1", "p2"}, rec.PaymentIDs)
	assert.Equal(t, []string{"d1"}, rec.DepenceIDs)
}

func TestComputeDailyTotalsEmptyDay(t *testing.T) {
	rec := ComputeDailyTotals(time.Now(), nil, nil)

	assert.Zero(t, rec.TotalPayments)
	assert.Zero(t, rec.TotalExpenses)
	assert.Zero(t, rec.NetProfit)
	assert.NotNil(t, rec.PaymentIDs)
	assert.NotNil(t, rec.DepenceIDs)
}

func TestDayWindow(t *testing.T) {
	at := time.Date(2025, 3, 10, 15, 42, 7, 0, time.UTC)
	start, end := DayWindow(at)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), end)
}

func TestValidateDayAlreadyValidated(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, date, total_payments, total_expenses, net_profit, is_validated").
		WithArgs("2025-03-10").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "date", "total_payments", "total_expenses", "net_profit", "is_validated"},
		).AddRow("acc-1", day, 150.0, 30.0, 120.0, true))
	mock.ExpectQuery("SELECT payment_id FROM daily_accounting_payments").
		WithArgs("acc-1").
		WillReturnRows(sqlmock.NewRows([]string{"payment_id"}))
	mock.ExpectQuery("SELECT depence_id FROM daily_accounting_depences").
		WithArgs("acc-1").
		WillReturnRows(sqlmock.NewRows([]string{"depence_id"}))
	mock.ExpectRollback()

	_, err = ValidateDay(db, day)

	var alreadyValidated *models.AlreadyValidatedError
	require.ErrorAs(t, err, &alreadyValidated)
	assert.NoError(t, mock.ExpectationsWereMet())
}
