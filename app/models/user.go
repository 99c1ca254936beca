package models

import "time"

// User is an office account. Writes to the ledger are attributed to the
// authenticated user, never to a hardcoded identity.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username" validate:"required"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
