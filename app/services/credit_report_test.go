package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khalidoy/gspfinanceback/app/models"
)

func TestCreditMonthExcludesNotYetJoined(t *testing.T) {
	s := &models.Student{Name: "october joiner", JoinedMonth: 10}
	s.Payments.Agreed.Tuition[models.SlotSeptember] = 500

	september := BuildCreditMonth([]*models.Student{s}, models.SlotSeptember)
	assert.Empty(t, september.UnpaidStudents)
	assert.Zero(t, september.TotalLeft)

	october := BuildCreditMonth([]*models.Student{s}, models.SlotOctober)
	require.Len(t, october.UnpaidStudents, 0, "october agreed is zero, nothing owed")
}

func TestCreditMonthFlagsUnderpaid(t *testing.T) {
	s := &models.Student{Name: "behind", JoinedMonth: 9}
	s.Payments.Agreed.Tuition[models.SlotOctober] = 500
	s.Payments.Real.Tuition[models.SlotOctober] = 300
	s.Payments.Agreed.Transport[models.SlotOctober] = 100
	s.Payments.Real.Transport[models.SlotOctober] = 100

	report := BuildCreditMonth([]*models.Student{s}, models.SlotOctober)

	assert.Equal(t, 400.0, report.TotalPaid)
	assert.Equal(t, 200.0, report.TotalLeft)
	require.Len(t, report.UnpaidStudents, 1)
	entry := report.UnpaidStudents[0]
	assert.Equal(t, "behind", entry.Name)
	assert.Equal(t, 500.0, entry.AgreedPayment)
	assert.Equal(t, 300.0, entry.RealPayment)
}

func TestCreditMonthTransportAloneFlags(t *testing.T) {
	s := &models.Student{Name: "transport behind", JoinedMonth: 9}
	s.Payments.Agreed.Tuition[models.SlotOctober] = 500
	s.Payments.Real.Tuition[models.SlotOctober] = 500
	s.Payments.Agreed.Transport[models.SlotOctober] = 100

	report := BuildCreditMonth([]*models.Student{s}, models.SlotOctober)
	require.Len(t, report.UnpaidStudents, 1)
}

func TestCreditMonthSeptemberSpecialCase(t *testing.T) {
	// Brand-new September joiner with a fully blank ledger needs attention.
	blank := &models.Student{Name: "new", JoinedMonth: 9}
	report := BuildCreditMonth([]*models.Student{blank}, models.SlotSeptember)
	require.Len(t, report.UnpaidStudents, 1)

	// The same blank ledger in October is not flagged.
	report = BuildCreditMonth([]*models.Student{blank}, models.SlotOctober)
	assert.Empty(t, report.UnpaidStudents)

	// An October joiner with a blank ledger is not flagged in September.
	lateBlank := &models.Student{Name: "late", JoinedMonth: 10}
	report = BuildCreditMonth([]*models.Student{lateBlank}, models.SlotSeptember)
	assert.Empty(t, report.UnpaidStudents)
}

func TestCreditMonthExcludesMonthsAfterDeparture(t *testing.T) {
	left := time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC)
	s := &models.Student{Name: "gone", JoinedMonth: 9, IsLeft: true, LeftDate: &left}
	for _, slot := range models.SchoolYearSlots {
		s.Payments.Agreed.Tuition[slot] = 500
	}

	november := BuildCreditMonth([]*models.Student{s}, models.SlotNovember)
	require.Len(t, november.UnpaidStudents, 1, "still owing through the departure month")

	december := BuildCreditMonth([]*models.Student{s}, models.SlotDecember)
	assert.Empty(t, december.UnpaidStudents, "months after departure are not arrears")
	assert.Zero(t, december.TotalLeft)
}
