package models

// CalendarHourSlot is one row of the day view.
type CalendarHourSlot struct {
	Hour        int          `json:"hour"`    // 0-23
	NextDay     bool         `json:"nextDay"` // rendered after a midnight wraparound
	Label       string       `json:"label"`   // "9 AM", "12 PM"
	Appointment *Appointment `json:"appointment,omitempty"`
	Blocked     bool         `json:"blocked"`
}
