package models

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// DayHours is one weekday's entry in a working-hours schedule.
type DayHours struct {
	Enabled bool   `bson:"enabled" json:"enabled"`
	Start   string `bson:"start" json:"start"` // "HH:MM"
	End     string `bson:"end" json:"end"`     // "HH:MM"
}

// Validate checks the clock format of an enabled day. Disabled days may
// carry anything.
func (d DayHours) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Start, validation.When(d.Enabled, validation.Required, validation.Match(clockPattern))),
		validation.Field(&d.End, validation.When(d.Enabled, validation.Required, validation.Match(clockPattern))),
	)
}

// WorkingHours maps a lowercase weekday name ("monday") to its hours.
type WorkingHours map[string]DayHours

// ForDate returns the entry for the weekday of date. Missing entries are
// reported as a disabled day.
func (w WorkingHours) ForDate(date time.Time) (DayHours, bool) {
	if w == nil {
		return DayHours{}, false
	}
	day, ok := w[strings.ToLower(date.Weekday().String())]
	return day, ok
}
