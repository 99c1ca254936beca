package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khalidoy/gspfinanceback/app/models"
)

func TestBuildDistributionReportBucketsByAmount(t *testing.T) {
	mk := func(name string, amount float64) *models.Student {
		s := &models.Student{ID: name, Name: name, JoinedMonth: 9}
		s.Payments.Agreed.Tuition[models.SlotSeptember] = amount
		return s
	}
	students := []*models.Student{
		mk("a", 500), mk("b", 500), mk("c", 700), mk("d", 0),
	}

	report := BuildDistributionReport(students, models.StreamTuition)
	require.Len(t, report, 10)

	sep := report["September"]
	require.NotNil(t, sep)
	assert.Len(t, sep.Students, 3, "zero agreed amounts are excluded")
	assert.Equal(t, 1700, sep.TotalAgreed)
	assert.Equal(t, 567, sep.PaymentStatistics.Average)
	assert.Equal(t, 500, sep.PaymentStatistics.Min)
	assert.Equal(t, 700, sep.PaymentStatistics.Max)

	require.Len(t, sep.PaymentDistribution, 2)
	assert.Equal(t, DistributionBucket{Amount: 500, StudentCount: 2}, sep.PaymentDistribution[0])
	assert.Equal(t, DistributionBucket{Amount: 700, StudentCount: 1}, sep.PaymentDistribution[1])

	// Untouched months are present with empty buckets.
	assert.Empty(t, report["June"].Students)
	assert.Zero(t, report["June"].TotalAgreed)
}

func TestBuildDistributionReportStreamsSeparate(t *testing.T) {
	s := &models.Student{ID: "a", Name: "a", JoinedMonth: 9}
	s.Payments.Agreed.Tuition[models.SlotSeptember] = 500

	transport := BuildDistributionReport([]*models.Student{s}, models.StreamTransport)
	assert.Empty(t, transport["September"].Students)
}
