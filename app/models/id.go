package models

import "github.com/google/uuid"

// ValidID reports whether a path or body id is a well-formed UUID. Checking
// up front turns malformed ids into a 400 instead of a storage error from the
// uuid column cast.
func ValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
