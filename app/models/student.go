package models

import "time"

// Student is the owner of one Ledger for one school-year period. Deleting a
// student is normally soft (IsLeft + LeftDate) so the financial history of the
// year stays intact; hard delete exists but loses that history.
type Student struct {
	ID           string     `json:"id"`
	Name         string     `json:"name" validate:"required"`
	SchoolYearID string     `json:"school_year" validate:"required,uuid"`
	IsNew        bool       `json:"isNew"`
	IsLeft       bool       `json:"isLeft"`
	JoinedMonth  int        `json:"joined_month" validate:"min=1,max=12"`
	Observations string     `json:"observations"`
	LeftDate     *time.Time `json:"left_date,omitempty"`
	ClassID      *string    `json:"class_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Payments Ledger `json:"payments"`
}

// JoinedSlot returns the school-year slot the student enrolled in. Students
// who joined outside the Sep-Jun calendar (July/August) are treated as
// September joiners.
func (s *Student) JoinedSlot() MonthSlot {
	slot, err := SlotFromCalendarMonth(s.JoinedMonth)
	if err != nil {
		return SlotSeptember
	}
	return slot
}

// LeftSlot returns the slot of the student's departure month, if a departure
// date was recorded.
func (s *Student) LeftSlot() (MonthSlot, bool) {
	if !s.IsLeft || s.LeftDate == nil {
		return 0, false
	}
	slot, err := SlotFromCalendarMonth(int(s.LeftDate.Month()))
	if err != nil {
		return 0, false
	}
	return slot, true
}

// EnrolledBy reports whether the student had joined by the given slot.
func (s *Student) EnrolledBy(slot MonthSlot) bool {
	return s.JoinedSlot().Index() <= slot.Index()
}
