package models

import "time"

// FixedExpense is one named line item of a monthly expense sheet.
type FixedExpense struct {
	ExpenseType   string  `json:"expense_type" validate:"required"`
	ExpenseAmount float64 `json:"expense_amount"`
}

// DepenceDaily and DepenceMonthly are the two expense entry kinds.
const (
	DepenceDaily   = "daily"
	DepenceMonthly = "monthly"
)

// Depence is a dated expense entry: either a single daily amount, or a
// monthly sheet whose fixed line items sum to Amount. Depences only feed the
// profit aggregation and the daily close; they carry no reconciliation logic.
type Depence struct {
	ID            string         `json:"id"`
	Type          string         `json:"type" validate:"required,oneof=daily monthly"`
	Description   string         `json:"description"`
	Date          time.Time      `json:"date"`
	Amount        float64        `json:"amount"`
	FixedExpenses []FixedExpense `json:"fixed_expenses,omitempty"`
}
