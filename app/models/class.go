package models

// Class is an ordered class label students can be assigned to (CP, CE1, ...).
// Purely organizational; classes own no payment data.
type Class struct {
	ID    string `json:"_id"`
	Name  string `json:"name" validate:"required"`
	Order int    `json:"order"`
}
