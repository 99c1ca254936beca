package services

import (
	"database/sql"

	"github.com/khalidoy/gspfinanceback/app/database"
	"github.com/khalidoy/gspfinanceback/app/models"
)

// UnpaidStudent is one arrears line: the student's agreed vs collected amounts
// for the month under review.
type UnpaidStudent struct {
	Name            string  `json:"name"`
	AgreedPayment   float64 `json:"agreed_payment"`
	RealPayment     float64 `json:"real_payment"`
	AgreedTransport float64 `json:"agreed_transport"`
	RealTransport   float64 `json:"real_transport"`
}

// CreditMonth is the arrears summary for one school-year month.
type CreditMonth struct {
	Month          int             `json:"month"`
	TotalPaid      float64         `json:"total_paid"`
	TotalLeft      float64         `json:"total_left"`
	UnpaidStudents []UnpaidStudent `json:"unpaid_students"`
}

// BuildCreditMonth computes the arrears view of one slot. A student counts
// only between their joining month and, if they left, their departure month.
// September additionally flags brand-new students whose ledger is still fully
// zero: that is an unresolved case for the office, not a paid-in-full one.
func BuildCreditMonth(students []*models.Student, slot models.MonthSlot) CreditMonth {
	report := CreditMonth{Month: slot.CalendarMonth(), UnpaidStudents: []UnpaidStudent{}}

	for _, s := range students {
		if !s.EnrolledBy(slot) {
			continue
		}
		if leftSlot, ok := s.LeftSlot(); ok && slot.Index() > leftSlot.Index() {
			continue
		}

		agreed := s.Payments.Agreed.Tuition[slot]
		real := s.Payments.Real.Tuition[slot]
		agreedTransport := s.Payments.Agreed.Transport[slot]
		realTransport := s.Payments.Real.Transport[slot]

		report.TotalPaid += real + realTransport
		report.TotalLeft += (agreed + agreedTransport) - (real + realTransport)

		unpaid := real < agreed || realTransport < agreedTransport
		if slot == models.SlotSeptember && agreed == 0 && real == 0 && s.JoinedMonth == 9 {
			unpaid = true
		}

		if unpaid {
			report.UnpaidStudents = append(report.UnpaidStudents, UnpaidStudent{
				Name:            s.Name,
				AgreedPayment:   agreed,
				RealPayment:     real,
				AgreedTransport: agreedTransport,
				RealTransport:   realTransport,
			})
		}
	}
	return report
}

// AllMonthsCreditReport runs the arrears computation for every month of the
// school year, September through June.
func AllMonthsCreditReport(db *sql.DB, schoolYearID string) ([]CreditMonth, error) {
	if _, err := database.GetSchoolYearByID(db, schoolYearID); err != nil {
		return nil, err
	}
	students, err := database.ListStudentsByPeriod(db, schoolYearID)
	if err != nil {
		return nil, err
	}

	months := make([]CreditMonth, 0, models.NumSlots)
	for _, slot := range models.SchoolYearSlots {
		months = append(months, BuildCreditMonth(students, slot))
	}
	return months, nil
}
