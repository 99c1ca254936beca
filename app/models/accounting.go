package models

import "time"

// DailyAccounting is the close-out snapshot of one calendar day: the payment
// and expense rows that fell in the day window and their totals. Once
// IsValidated is set the record is immutable; there is no un-close.
type DailyAccounting struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	PaymentIDs    []string  `json:"payments"`
	DepenceIDs    []string  `json:"daily_expenses"`
	TotalPayments float64   `json:"total_payments"`
	TotalExpenses float64   `json:"total_expenses"`
	NetProfit     float64   `json:"net_profit"`
	IsValidated   bool      `json:"isValidated"`
}
