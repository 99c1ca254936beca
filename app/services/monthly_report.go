package services

import (
	"database/sql"

	"github.com/khalidoy/gspfinanceback/app/database"
	"github.com/khalidoy/gspfinanceback/app/models"
)

// MonthSummary is one row of the monthly profit report.
type MonthSummary struct {
	Month          int     `json:"month"`
	TotalAgreed    float64 `json:"total_monthly_agreed_payments"`
	TotalTransport float64 `json:"total_transport_agreed_payments"`
	TotalPaid      float64 `json:"total_paid"`
	TotalLeft      float64 `json:"total_left"`
	TotalExpenses  float64 `json:"total_expenses"`
	NetProfit      float64 `json:"net_profit"`
	InsuranceCount int     `json:"total_insurance_students"`
}

// MonthlyReport is the whole-year profit view: ten rows in fixed
// September..June order plus the yearly insurance totals.
type MonthlyReport struct {
	Months                []MonthSummary `json:"data"`
	TotalInsuranceAgreed  float64        `json:"total_insurance_agreed_payments"`
	StudentsWithInsurance int            `json:"total_students_with_insurance"`
	TotalYearlyIncome     float64        `json:"total_yearly_income"`
}

// monthlyExpenses is the per-slot expense lookup the builder needs; pulled out
// so the aggregation itself is testable without a database.
type monthlyExpenses func(slot models.MonthSlot) float64

// BuildMonthlyReport aggregates students into the ten-month report. The slot
// sequence is always September through June, never calendar order.
func BuildMonthlyReport(students []*models.Student, expenses monthlyExpenses) *MonthlyReport {
	report := &MonthlyReport{}

	for _, slot := range models.SchoolYearSlots {
		row := MonthSummary{Month: slot.CalendarMonth()}
		for _, s := range students {
			if !s.EnrolledBy(slot) {
				continue
			}
			agreedTuition := s.Payments.Agreed.Tuition[slot]
			agreedTransport := s.Payments.Agreed.Transport[slot]
			realPaid := s.Payments.Real.Tuition[slot] + s.Payments.Real.Transport[slot]

			row.TotalAgreed += agreedTuition
			row.TotalTransport += agreedTransport
			row.TotalPaid += realPaid
			row.TotalLeft += (agreedTuition + agreedTransport) - realPaid
			if s.Payments.Agreed.Insurance > 0 {
				row.InsuranceCount++
			}
		}
		row.TotalExpenses = expenses(slot)
		row.NetProfit = row.TotalAgreed + row.TotalTransport - row.TotalExpenses
		report.Months = append(report.Months, row)
	}

	// Insurance is yearly, reported once rather than per month.
	for _, s := range students {
		if s.Payments.Agreed.Insurance > 0 {
			report.StudentsWithInsurance++
		}
		report.TotalInsuranceAgreed += s.Payments.Agreed.Insurance
	}

	for _, row := range report.Months {
		report.TotalYearlyIncome += row.NetProfit
	}
	report.TotalYearlyIncome += report.TotalInsuranceAgreed

	return report
}

// NormalProfitReport loads a period's students and expenses and builds the
// monthly report. Expense windows are anchored to the slot's actual calendar
// year: Sep-Dec in the period's start year, Jan-Jun in its end year.
func NormalProfitReport(db *sql.DB, schoolYearID string) (*MonthlyReport, error) {
	period, err := database.GetSchoolYearByID(db, schoolYearID)
	if err != nil {
		return nil, err
	}
	students, err := database.ListStudentsByPeriod(db, schoolYearID)
	if err != nil {
		return nil, err
	}

	expensesBySlot := make(map[models.MonthSlot]float64, models.NumSlots)
	for _, slot := range models.SchoolYearSlots {
		from, to := period.SlotWindow(slot)
		depences, err := database.ListDepencesBetween(db, from, to, "")
		if err != nil {
			return nil, err
		}
		var total float64
		for _, d := range depences {
			total += d.Amount
		}
		expensesBySlot[slot] = total
	}

	return BuildMonthlyReport(students, func(slot models.MonthSlot) float64 {
		return expensesBySlot[slot]
	}), nil
}
