package scheduling

import (
	"sort"
	"time"

	"clipprmobile/models"
)

const clockLayout = "15:04"

// interval is a half-open [start, end) span.
type interval struct {
	start time.Time
	end   time.Time
}

// overlaps applies the four-way test: a starts inside b, a ends inside b,
// a contains b, or a is contained in b.
func (a interval) overlaps(b interval) bool {
	startsInside := !a.start.Before(b.start) && a.start.Before(b.end)
	endsInside := a.end.After(b.start) && !a.end.After(b.end)
	contains := !a.start.After(b.start) && !a.end.Before(b.end)
	contained := !a.start.Before(b.start) && !a.end.After(b.end)
	return startsInside || endsInside || contains || contained
}

// expand widens the interval by the same amount on both sides.
func (a interval) expand(d time.Duration) interval {
	return interval{start: a.start.Add(-d), end: a.end.Add(d)}
}

func appointmentInterval(apt models.Appointment) interval {
	return interval{start: apt.ScheduledAt, end: apt.End()}
}

// parseClock reads an "HH:MM" value.
func parseClock(value string) (hour, minute int, err error) {
	t, err := time.Parse(clockLayout, value)
	if err != nil {
		return 0, 0, NewValidationError("invalid clock time " + value + ", expected HH:MM")
	}
	return t.Hour(), t.Minute(), nil
}

// atClock returns the wall-clock time on date's calendar day in date's location.
func atClock(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

// sortedAppointments returns a copy ordered by start time; ties keep input order.
func sortedAppointments(appointments []models.Appointment) []models.Appointment {
	sorted := make([]models.Appointment, len(appointments))
	copy(sorted, appointments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ScheduledAt.Before(sorted[j].ScheduledAt)
	})
	return sorted
}
