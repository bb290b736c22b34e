package scheduling

import (
	"fmt"
	"time"

	"clipprmobile/models"
)

// SlotScanner finds offerable start times for a new appointment.
type SlotScanner struct {
	settings Settings
}

func NewSlotScanner(settings Settings) *SlotScanner {
	return &SlotScanner{settings: settings}
}

// FindAvailableSlots steps through the working day and keeps every candidate
// that clears all buffered appointments. Working hours are honoured to the
// minute here, unlike the calendar grid.
//
// Only the buffers of existing appointments are checked. Travel to and from
// the new client's own address is unknown to the buffer chain and is not
// verified.
func (s *SlotScanner) FindAvailableSlots(
	date time.Time,
	day models.DayHours,
	appointments []models.Appointment,
	buffers []models.TravelBuffer,
	serviceDurationMinutes int,
) ([]models.TimeSlotCandidate, error) {
	if serviceDurationMinutes < 0 {
		return nil, NewValidationError(fmt.Sprintf("service duration must not be negative, got %d", serviceDurationMinutes))
	}
	slots := []models.TimeSlotCandidate{}
	if !day.Enabled {
		return slots, nil
	}

	startHour, startMinute, err := parseClock(day.Start)
	if err != nil {
		return nil, err
	}
	endHour, endMinute, err := parseClock(day.End)
	if err != nil {
		return nil, err
	}
	dayStart := atClock(date, startHour, startMinute)
	dayEnd := atClock(date, endHour, endMinute)

	busy, err := s.bufferedIntervals(appointments, buffers)
	if err != nil {
		return nil, err
	}

	step := time.Duration(s.settings.SlotIntervalMinutes) * time.Minute
	if step <= 0 {
		step = 30 * time.Minute
	}
	duration := time.Duration(serviceDurationMinutes) * time.Minute

	for start := dayStart; ; start = start.Add(step) {
		candidate := interval{start: start, end: start.Add(duration)}
		// Later candidates only end later, so the first overrun ends the scan.
		if candidate.end.After(dayEnd) {
			break
		}
		if conflicts(candidate, busy) {
			continue
		}
		slots = append(slots, models.TimeSlotCandidate{Start: candidate.start, End: candidate.end})
	}
	return slots, nil
}

// bufferedIntervals widens each appointment by its total buffer on both sides.
// Appointments without a buffer entry get the default buffer.
func (s *SlotScanner) bufferedIntervals(appointments []models.Appointment, buffers []models.TravelBuffer) ([]interval, error) {
	byID := make(map[string]int, len(buffers))
	for _, b := range buffers {
		byID[b.AppointmentID] = b.TotalBufferMinutes
	}

	busy := make([]interval, 0, len(appointments))
	for _, apt := range appointments {
		if apt.DurationMinutes < 0 {
			return nil, NewValidationError(fmt.Sprintf("appointment %s has negative duration %d", apt.ID, apt.DurationMinutes))
		}
		total, ok := byID[apt.ID]
		if !ok {
			total = s.settings.DefaultBufferMinutes
		}
		busy = append(busy, appointmentInterval(apt).expand(time.Duration(total)*time.Minute))
	}
	return busy, nil
}

func conflicts(candidate interval, busy []interval) bool {
	for _, b := range busy {
		if candidate.overlaps(b) {
			return true
		}
	}
	return false
}
