package services

import (
	"database/sql"
	"time"

	"github.com/khalidoy/gspfinanceback/app/database"
	"github.com/khalidoy/gspfinanceback/app/models"
)

// DayWindow returns [startOfDay, endOfDay) for a calendar date.
func DayWindow(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}

// ComputeDailyTotals sums a day's payments and expenses into a close-out
// snapshot. Pure so the totals logic is testable without a database.
func ComputeDailyTotals(day time.Time, payments []*models.Payment, depences []*models.Depence) *models.DailyAccounting {
	rec := &models.DailyAccounting{
		Date:       day,
		PaymentIDs: []string{},
		DepenceIDs: []string{},
	}
	for _, p := range payments {
		rec.TotalPayments += p.Amount
		rec.PaymentIDs = append(rec.PaymentIDs, p.ID)
	}
	for _, d := range depences {
		rec.TotalExpenses += d.Amount
		rec.DepenceIDs = append(rec.DepenceIDs, d.ID)
	}
	rec.NetProfit = rec.TotalPayments - rec.TotalExpenses
	return rec
}

// ValidateDay finalizes a calendar day: it snapshots the day's payments and
// expenses with their totals and marks the record validated. A validated day
// is terminal; re-validating fails. The existence check and the upsert run in
// one transaction with the row locked, so concurrent close attempts serialize
// instead of racing the check.
func ValidateDay(db *sql.DB, date time.Time) (*models.DailyAccounting, error) {
	start, end := DayWindow(date)

	tx, err := db.Begin()
	if err != nil {
		return nil, &models.StorageError{Op: "begin daily close", Err: err}
	}
	defer tx.Rollback()

	existing, err := database.GetDailyAccountingForDate(tx, start, true)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.IsValidated {
		return nil, &models.AlreadyValidatedError{Date: start.Format("2006-01-02")}
	}

	payments, err := database.ListPaymentsBetween(tx, start, end)
	if err != nil {
		return nil, err
	}
	depences, err := database.ListDepencesBetween(tx, start, end, "")
	if err != nil {
		return nil, err
	}

	rec := ComputeDailyTotals(start, payments, depences)
	rec.IsValidated = true
	if err := database.UpsertDailyAccounting(tx, rec); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, &models.StorageError{Op: "commit daily close", Err: err}
	}
	return rec, nil
}

// TodayActivity is the raw, unaggregated view of the current day.
type TodayActivity struct {
	Payments []*models.Payment `json:"payments"`
	Expenses []*models.Depence `json:"expenses"`
}

// GetTodayActivity lists the current day's payments and daily expenses
// without any aggregation. Monthly expense sheets are excluded; they belong
// to the monthly report, not the cash day.
func GetTodayActivity(db *sql.DB, now time.Time) (*TodayActivity, error) {
	start, end := DayWindow(now)

	payments, err := database.ListPaymentsBetween(db, start, end)
	if err != nil {
		return nil, err
	}
	expenses, err := database.ListDepencesBetween(db, start, end, models.DepenceDaily)
	if err != nil {
		return nil, err
	}

	if payments == nil {
		payments = []*models.Payment{}
	}
	if expenses == nil {
		expenses = []*models.Depence{}
	}
	return &TodayActivity{Payments: payments, Expenses: expenses}, nil
}

// DayStatus reports whether a day has been closed and, if snapshotted, its
// totals.
type DayStatus struct {
	IsValidated   bool    `json:"isValidated"`
	NetProfit     float64 `json:"net_profit,omitempty"`
	TotalPayments float64 `json:"total_payments,omitempty"`
	TotalExpenses float64 `json:"total_expenses,omitempty"`
}

// GetDayStatus returns the close-out state of a calendar day.
func GetDayStatus(db *sql.DB, date time.Time) (*DayStatus, error) {
	start, _ := DayWindow(date)
	rec, err := database.GetDailyAccountingForDate(db, start, false)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return &DayStatus{IsValidated: false}, nil
	}
	return &DayStatus{
		IsValidated:   rec.IsValidated,
		NetProfit:     rec.NetProfit,
		TotalPayments: rec.TotalPayments,
		TotalExpenses: rec.TotalExpenses,
	}, nil
}

// DailyReportEntry is one closed day with its payment and expense details
// resolved for display.
type DailyReportEntry struct {
	Date          time.Time `json:"date"`
	TotalPayments float64   `json:"total_payments"`
	TotalExpenses float64   `json:"total_expenses"`
	NetProfit     float64   `json:"net_profit"`
	Details       struct {
		Payments []*models.Payment `json:"payments"`
		Expenses []*models.Depence `json:"daily_expenses"`
	} `json:"details"`
}

// DailyAccountingReport expands every close-out record in [from, to] with its
// referenced payment and expense rows.
func DailyAccountingReport(db *sql.DB, from, to time.Time) ([]*DailyReportEntry, error) {
	records, err := database.ListDailyAccountingRange(db, from, to)
	if err != nil {
		return nil, err
	}

	entries := make([]*DailyReportEntry, 0, len(records))
	for _, rec := range records {
		entry := &DailyReportEntry{
			Date:          rec.Date,
			TotalPayments: rec.TotalPayments,
			TotalExpenses: rec.TotalExpenses,
			NetProfit:     rec.NetProfit,
		}
		if entry.Details.Payments, err = database.GetPaymentsByIDs(db, rec.PaymentIDs); err != nil {
			return nil, err
		}
		if entry.Details.Expenses, err = database.GetDepencesByIDs(db, rec.DepenceIDs); err != nil {
			return nil, err
		}
		if entry.Details.Payments == nil {
			entry.Details.Payments = []*models.Payment{}
		}
		if entry.Details.Expenses == nil {
			entry.Details.Expenses = []*models.Depence{}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
