package services

import (
	"database/sql"
	"math"
	"sort"

	"github.com/khalidoy/gspfinanceback/app/database"
	"github.com/khalidoy/gspfinanceback/app/models"
)

// DistributionBucket counts students paying the same agreed amount.
type DistributionBucket struct {
	Amount       int `json:"amount"`
	StudentCount int `json:"student_count"`
}

// PaymentStatistics summarizes the agreed amounts of one month.
type PaymentStatistics struct {
	Average int `json:"average_agreed_payment"`
	Min     int `json:"min_agreed_payment"`
	Max     int `json:"max_agreed_payment"`
}

// StudentAgreedEntry is one student's agreed amount inside a month bucket.
type StudentAgreedEntry struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AgreedPayment int    `json:"agreed_payment"`
}

// MonthDistribution groups every student with a non-zero agreed amount for
// one month, with summary statistics and an amount histogram.
type MonthDistribution struct {
	Students            []StudentAgreedEntry `json:"students"`
	TotalAgreed         int                  `json:"total_agreed"`
	PaymentStatistics   PaymentStatistics    `json:"payment_statistics"`
	PaymentDistribution []DistributionBucket `json:"payment_distribution"`
}

var monthNames = map[models.MonthSlot]string{
	models.SlotSeptember: "September",
	models.SlotOctober:   "October",
	models.SlotNovember:  "November",
	models.SlotDecember:  "December",
	models.SlotJanuary:   "January",
	models.SlotFebruary:  "February",
	models.SlotMarch:     "March",
	models.SlotApril:     "April",
	models.SlotMay:       "May",
	models.SlotJune:      "June",
}

// BuildDistributionReport buckets students by agreed amount per month for one
// stream. Months with no agreed amounts still appear with empty buckets.
func BuildDistributionReport(students []*models.Student, stream models.Stream) map[string]*MonthDistribution {
	report := make(map[string]*MonthDistribution, models.NumSlots)
	for _, slot := range models.SchoolYearSlots {
		report[monthNames[slot]] = &MonthDistribution{
			Students:            []StudentAgreedEntry{},
			PaymentDistribution: []DistributionBucket{},
		}
	}

	for _, slot := range models.SchoolYearSlots {
		bucket := report[monthNames[slot]]
		counts := make(map[int]int)
		var amounts []int

		for _, s := range students {
			agreed := int(math.Round(*s.Payments.Agreed.Slot(stream, slot)))
			if agreed <= 0 {
				continue
			}
			bucket.Students = append(bucket.Students, StudentAgreedEntry{
				ID:            s.ID,
				Name:          s.Name,
				AgreedPayment: agreed,
			})
			bucket.TotalAgreed += agreed
			counts[agreed]++
			amounts = append(amounts, agreed)
		}

		if len(amounts) > 0 {
			sum, min, max := 0, amounts[0], amounts[0]
			for _, a := range amounts {
				sum += a
				if a < min {
					min = a
				}
				if a > max {
					max = a
				}
			}
			bucket.PaymentStatistics = PaymentStatistics{
				Average: int(math.Round(float64(sum) / float64(len(amounts)))),
				Min:     min,
				Max:     max,
			}
		}

		keys := make([]int, 0, len(counts))
		for amount := range counts {
			keys = append(keys, amount)
		}
		sort.Ints(keys)
		for _, amount := range keys {
			bucket.PaymentDistribution = append(bucket.PaymentDistribution, DistributionBucket{
				Amount:       amount,
				StudentCount: counts[amount],
			})
		}
	}
	return report
}

// PaymentsDistributionReport builds the tuition distribution view for a
// school year looked up by name.
func PaymentsDistributionReport(db *sql.DB, schoolYearName string) (map[string]*MonthDistribution, error) {
	students, err := studentsByPeriodName(db, schoolYearName)
	if err != nil {
		return nil, err
	}
	return BuildDistributionReport(students, models.StreamTuition), nil
}

// TransportDistributionReport builds the transport distribution view for a
// school year looked up by name.
func TransportDistributionReport(db *sql.DB, schoolYearName string) (map[string]*MonthDistribution, error) {
	students, err := studentsByPeriodName(db, schoolYearName)
	if err != nil {
		return nil, err
	}
	return BuildDistributionReport(students, models.StreamTransport), nil
}

func studentsByPeriodName(db *sql.DB, name string) ([]*models.Student, error) {
	periods, err := database.ListSchoolYears(db)
	if err != nil {
		return nil, err
	}
	for _, p := range periods {
		if p.Name == name {
			return database.ListStudentsByPeriod(db, p.ID)
		}
	}
	return nil, &models.NotFoundError{Resource: "School Year Period"}
}
