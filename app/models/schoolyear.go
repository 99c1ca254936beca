package models

import "time"

// SchoolYearPeriod is a named Sep..Jun interval, e.g. "2024/2025". The start
// year anchors the Sep-Dec slots and the end year the Jan-Jun slots.
type SchoolYearPeriod struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

// SlotWindow returns the [first, next) calendar window a slot covers inside
// this period. Sep-Dec slots fall in the start year, Jan-Jun in the end year.
func (p *SchoolYearPeriod) SlotWindow(slot MonthSlot) (time.Time, time.Time) {
	month := slot.CalendarMonth()
	year := p.StartDate.Year()
	if month <= 6 {
		year = p.EndDate.Year()
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
