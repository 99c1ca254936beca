package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khalidoy/gspfinanceback/app/models"
)

func noExpenses(models.MonthSlot) float64 { return 0 }

func TestBuildMonthlyReportFixedOrder(t *testing.T) {
	report := BuildMonthlyReport(nil, noExpenses)

	require.Len(t, report.Months, 10)
	want := []int{9, 10, 11, 12, 1, 2, 3, 4, 5, 6}
	for i, row := range report.Months {
		assert.Equal(t, want[i], row.Month)
	}
}

func TestBuildMonthlyReportSkipsNotYetJoined(t *testing.T) {
	december := &models.Student{Name: "late", JoinedMonth: 12}
	for _, slot := range models.SchoolYearSlots {
		december.Payments.Agreed.Tuition[slot] = 300
	}

	report := BuildMonthlyReport([]*models.Student{december}, noExpenses)

	// September through November: no contribution.
	for i := 0; i < 3; i++ {
		assert.Zero(t, report.Months[i].TotalAgreed, "month %d", report.Months[i].Month)
	}
	// December onward: the agreed amount counts.
	for i := 3; i < 10; i++ {
		assert.Equal(t, 300.0, report.Months[i].TotalAgreed, "month %d", report.Months[i].Month)
	}
}

func TestBuildMonthlyReportTotals(t *testing.T) {
	a := &models.Student{Name: "a", JoinedMonth: 9}
	a.Payments.Agreed.Tuition[models.SlotSeptember] = 500
	a.Payments.Agreed.Transport[models.SlotSeptember] = 100
	a.Payments.Real.Tuition[models.SlotSeptember] = 400

	b := &models.Student{Name: "b", JoinedMonth: 9}
	b.Payments.Agreed.Tuition[models.SlotSeptember] = 300
	b.Payments.Real.Tuition[models.SlotSeptember] = 300
	b.Payments.Real.Transport[models.SlotSeptember] = 50

	expenses := func(slot models.MonthSlot) float64 {
		if slot == models.SlotSeptember {
			return 120
		}
		return 0
	}

	report := BuildMonthlyReport([]*models.Student{a, b}, expenses)

	sep := report.Months[0]
	assert.Equal(t, 800.0, sep.TotalAgreed)
	assert.Equal(t, 100.0, sep.TotalTransport)
	assert.Equal(t, 750.0, sep.TotalPaid)
	assert.Equal(t, 150.0, sep.TotalLeft)
	assert.Equal(t, 120.0, sep.TotalExpenses)
	// Net profit is contract-based: agreed totals minus expenses.
	assert.Equal(t, 800.0+100.0-120.0, sep.NetProfit)
}

func TestBuildMonthlyReportInsuranceReportedOncePerYear(t *testing.T) {
	a := &models.Student{Name: "a", JoinedMonth: 9}
	a.Payments.Agreed.Insurance = 90
	b := &models.Student{Name: "b", JoinedMonth: 9}
	c := &models.Student{Name: "c", JoinedMonth: 9}
	c.Payments.Agreed.Insurance = 110

	report := BuildMonthlyReport([]*models.Student{a, b, c}, noExpenses)

	assert.Equal(t, 200.0, report.TotalInsuranceAgreed)
	assert.Equal(t, 2, report.StudentsWithInsurance)
	// Insurance lands in the yearly income exactly once.
	assert.Equal(t, 200.0, report.TotalYearlyIncome)
}
