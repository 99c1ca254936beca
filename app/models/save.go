package models

import "time"

// ChangeDetail is one field mutation inside a Save record.
type ChangeDetail struct {
	FieldName string `json:"field_name"`
	OldValue  string `json:"old_value"`
	NewValue  string `json:"new_value"`
}

// Save is an append-only change-log entry for a student's ledger. It is
// best-effort observability: written fire-and-forget off the reconciliation
// path and never required for correctness.
type Save struct {
	ID        string         `json:"id"`
	StudentID string         `json:"student"`
	UserID    string         `json:"user"`
	Date      time.Time      `json:"date"`
	Types     []string       `json:"types"`
	Changes   []ChangeDetail `json:"changes"`
}
