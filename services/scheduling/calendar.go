package scheduling

import (
	"fmt"
	"time"

	"clipprmobile/models"
)

// CalendarRenderer lays a day's appointments onto hour rows.
//
// Rows are addressed by an extended hour: hours of the rendered date are
// 0-23, hours of the following day are 24-47. A midnight-crossing day is
// rendered as [startHour..23] then [0..lastNextDayHour], which is one
// increasing run in extended hours, so containment and blocking never need
// special cases for the wraparound.
type CalendarRenderer struct {
	settings Settings
}

func NewCalendarRenderer(settings Settings) *CalendarRenderer {
	return &CalendarRenderer{settings: settings}
}

// hourSpan is the bucket range [first, end) an appointment occupies, in extended hours.
type hourSpan struct {
	appointment models.Appointment
	first       int
	end         int
}

// Render builds the grid for date. The grid starts at the default hours (or
// the enabled day's schedule), then grows to cover every appointment.
// A nil schedule means no working hours are known and no row is blocked.
func (r *CalendarRenderer) Render(date time.Time, appointments []models.Appointment, schedule models.WorkingHours) []models.CalendarHourSlot {
	loc := date.Location()
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	startHour, endHour := r.settings.DefaultStartHour, r.settings.DefaultEndHour

	// Only the hour part of the configured start/end is used here. The grid
	// is hour-quantized: a 09:30 start still renders the 9 AM row. Do not
	// "fix" this to minute precision, the slot scanner is where minutes count.
	enabled := false
	scheduleStart, scheduleEnd := 0, 0
	if schedule != nil {
		if day, ok := schedule.ForDate(date); ok && day.Enabled {
			sh, _, errStart := parseClock(day.Start)
			eh, _, errEnd := parseClock(day.End)
			if errStart == nil && errEnd == nil {
				enabled = true
				scheduleStart, scheduleEnd = sh, eh
				startHour, endHour = sh, eh
			}
		}
	}

	// endExt is the last grid hour in extended hours; an overnight schedule
	// such as 22:00-02:00 ends at 26.
	endExt := endHour
	if endHour < startHour {
		endExt += 24
	}

	sorted := sortedAppointments(appointments)
	spans := make([]hourSpan, 0, len(sorted))
	wraps := false
	lastNextDayHour := -1
	for _, apt := range sorted {
		start := apt.ScheduledAt.In(loc)
		end := apt.End().In(loc)
		startOffset := dayOffset(midnight, start)
		endOffset := dayOffset(midnight, end)

		span := hourSpan{
			appointment: apt,
			first:       start.Hour() + 24*startOffset,
			end:         end.Hour() + 24*endOffset,
		}
		// Leftover minutes spill into the end hour; ending on the hour does not.
		if end.Minute() > 0 || end.Second() > 0 {
			span.end++
		}
		if span.end <= span.first {
			// Zero-length appointments still show in their start row.
			span.end = span.first + 1
		}
		spans = append(spans, span)

		if startOffset != 0 {
			continue
		}
		if start.Hour() < startHour {
			startHour = start.Hour()
		}
		if endOffset == startOffset {
			if end.Hour() > endExt || (end.Hour() == endExt && end.Minute() > 0) {
				endExt = end.Hour()
			}
			continue
		}
		// Crosses midnight: the grid runs to 23 and on into the next day as
		// far as the last occupied bucket.
		wraps = true
		if last := span.end - 1 - 24; last > lastNextDayHour {
			lastNextDayHour = last
		}
	}

	// Appointments only widen the range, never shrink it.
	lastExt := endExt
	if wraps {
		lastExt = max(lastExt, 23)
		if lastNextDayHour >= 0 {
			lastExt = max(lastExt, 24+lastNextDayHour)
		}
	}
	// Never render the same hour twice.
	if lastExt > startHour+23 {
		lastExt = startHour + 23
	}

	scheduleEndExt := scheduleEnd
	if scheduleEnd < scheduleStart {
		scheduleEndExt += 24
	}

	grid := make([]models.CalendarHourSlot, 0, lastExt-startHour+1)
	for ext := startHour; ext <= lastExt; ext++ {
		hour := ext % 24
		slot := models.CalendarHourSlot{
			Hour:    hour,
			NextDay: ext >= 24,
			Label:   hourLabel(hour),
		}
		// Inclusive on both ends, unlike the end-hour expansion above.
		if schedule != nil {
			slot.Blocked = !(enabled && scheduleStart <= ext && ext <= scheduleEndExt)
		}
		for i := range spans {
			if spans[i].first <= ext && ext < spans[i].end {
				apt := spans[i].appointment
				slot.Appointment = &apt
				break
			}
		}
		grid = append(grid, slot)
	}
	return grid
}

// dayOffset is the number of calendar days between midnight and t's date.
func dayOffset(midnight, t time.Time) int {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, midnight.Location())
	// Round to absorb DST shifts between the two midnights.
	return int((day.Sub(midnight) + 12*time.Hour).Hours() / 24)
}

func hourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour == 12:
		return "12 PM"
	case hour < 12:
		return fmt.Sprintf("%d AM", hour)
	default:
		return fmt.Sprintf("%d PM", hour-12)
	}
}
