package models

import "time"

// PaymentType identifies which ledger field a payment targets. The _agreed
// variants exist for the change log and legacy clients; the reconciliation
// endpoint itself only accepts the real types.
type PaymentType string

const (
	PaymentMonthly         PaymentType = "monthly"
	PaymentTransport       PaymentType = "transport"
	PaymentInsurance       PaymentType = "insurance"
	PaymentMonthlyAgreed   PaymentType = "monthly_agreed"
	PaymentTransportAgreed PaymentType = "transport_agreed"
	PaymentInsuranceAgreed PaymentType = "insurance_agreed"
)

// Stream maps a payment type to its ledger stream.
func (t PaymentType) Stream() (Stream, bool) {
	switch t {
	case PaymentMonthly, PaymentMonthlyAgreed:
		return StreamTuition, true
	case PaymentTransport, PaymentTransportAgreed:
		return StreamTransport, true
	case PaymentInsurance, PaymentInsuranceAgreed:
		return StreamInsurance, true
	}
	return "", false
}

// IsAgreed reports whether this is an _agreed variant.
func (t PaymentType) IsAgreed() bool {
	switch t {
	case PaymentMonthlyAgreed, PaymentTransportAgreed, PaymentInsuranceAgreed:
		return true
	}
	return false
}

// MonthScoped reports whether the type requires a month.
func (t PaymentType) MonthScoped() bool {
	s, ok := t.Stream()
	return ok && s != StreamInsurance
}

// Payment is one collection event. The student's Ledger is the authoritative
// running total; Payment rows are the transaction log feeding the daily
// accounting close. The reconciliation engine keeps at most one live row per
// student/type/month and updates its amount in place.
type Payment struct {
	ID          string      `json:"id"`
	StudentID   string      `json:"student"`
	UserID      string      `json:"user"`
	Date        time.Time   `json:"date"`
	Amount      float64     `json:"amount" validate:"gte=0"`
	PaymentType PaymentType `json:"payment_type" validate:"required"`
	Month       *int        `json:"month,omitempty"`

	// StudentName is joined in for the daily accounting views.
	StudentName string `json:"student_name,omitempty"`
}
