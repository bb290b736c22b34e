package scheduling

import (
	"fmt"
	"testing"
	"time"

	"clipprmobile/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nineToFive = models.DayHours{Enabled: true, Start: "09:00", End: "17:00"}

func starts(slots []models.TimeSlotCandidate) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start.Format("15:04"))
	}
	return out
}

func TestFindAvailableSlotsEmptyDay(t *testing.T) {
	scanner := NewSlotScanner(testSettings())
	slots, err := scanner.FindAvailableSlots(on(time.UTC, 0, 0), nineToFive, nil, nil, 60)
	require.NoError(t, err)

	require.Len(t, slots, 15)
	assert.Equal(t, on(time.UTC, 9, 0), slots[0].Start)
	assert.Equal(t, on(time.UTC, 16, 0), slots[14].Start)
	assert.Equal(t, on(time.UTC, 17, 0), slots[14].End)
	for _, s := range slots {
		assert.Equal(t, time.Hour, s.End.Sub(s.Start))
	}
}

func TestFindAvailableSlotsDisabledDay(t *testing.T) {
	scanner := NewSlotScanner(testSettings())
	day := models.DayHours{Enabled: false, Start: "09:00", End: "17:00"}

	slots, err := scanner.FindAvailableSlots(on(time.UTC, 0, 0), day, nil, nil, 30)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestFindAvailableSlotsRespectsBuffers(t *testing.T) {
	scanner := NewSlotScanner(testSettings())
	apts := []models.Appointment{apt("a", on(time.UTC, 12, 0), 60, "A")}
	buffers := []models.TravelBuffer{{AppointmentID: "a", TotalBufferMinutes: 15}}

	slots, err := scanner.FindAvailableSlots(on(time.UTC, 0, 0), nineToFive, apts, buffers, 60)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00"}, starts(slots))
}

func TestFindAvailableSlotsDefaultBufferWhenMissing(t *testing.T) {
	settings := testSettings()
	settings.DefaultBufferMinutes = 45
	scanner := NewSlotScanner(settings)
	apts := []models.Appointment{apt("a", on(time.UTC, 12, 0), 60, "A")}

	slots, err := scanner.FindAvailableSlots(on(time.UTC, 0, 0), nineToFive, apts, nil, 60)
	require.NoError(t, err)
	// Busy span is 11:15-13:45.
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "14:00", "14:30", "15:00", "15:30", "16:00"}, starts(slots))
}

func TestFindAvailableSlotsTouchingIsAllowed(t *testing.T) {
	scanner := NewSlotScanner(testSettings())
	apts := []models.Appointment{apt("a", on(time.UTC, 11, 0), 60, "A")}
	buffers := []models.TravelBuffer{{AppointmentID: "a", TotalBufferMinutes: 0}}

	slots, err := scanner.FindAvailableSlots(on(time.UTC, 0, 0), nineToFive, apts, buffers, 60)
	require.NoError(t, err)
	got := starts(slots)
	assert.Contains(t, got, "10:00")
	assert.Contains(t, got, "12:00")
	assert.NotContains(t, got, "10:30")
	assert.NotContains(t, got, "11:30")
}

func TestFindAvailableSlotsNeverOverlapBufferedAppointments(t *testing.T) {
	scanner := NewSlotScanner(testSettings())
	apts := []models.Appointment{
		apt("a", on(time.UTC, 9, 40), 25, "A"),
		apt("b", on(time.UTC, 11, 5), 90, "B"),
		apt("c", on(time.UTC, 14, 50), 10, "C"),
		apt("d", on(time.UTC, 16, 20), 45, "D"),
	}
	buffers := []models.TravelBuffer{
		{AppointmentID: "a", TotalBufferMinutes: 7},
		{AppointmentID: "b", TotalBufferMinutes: 22},
		{AppointmentID: "c", TotalBufferMinutes: 35},
	}

	for _, duration := range []int{0, 15, 30, 45, 60, 90, 120} {
		t.Run(fmt.Sprintf("%dmin", duration), func(t *testing.T) {
			slots, err := scanner.FindAvailableSlots(on(time.UTC, 0, 0), nineToFive, apts, buffers, duration)
			require.NoError(t, err)

			busy, err := scanner.bufferedIntervals(apts, buffers)
			require.NoError(t, err)
			for _, s := range slots {
				assert.Equal(t, time.Duration(duration)*time.Minute, s.End.Sub(s.Start))
				assert.False(t, s.Start.Before(on(time.UTC, 9, 0)))
				assert.False(t, s.End.After(on(time.UTC, 17, 0)))
				for _, b := range busy {
					halfOpenOverlap := s.Start.Before(b.end) && b.start.Before(s.End)
					assert.False(t, halfOpenOverlap, "slot %s overlaps busy %s-%s",
						s.Start.Format("15:04"), b.start.Format("15:04"), b.end.Format("15:04"))
				}
			}
		})
	}
}

func TestFindAvailableSlotsMinutePrecisionHours(t *testing.T) {
	scanner := NewSlotScanner(testSettings())
	day := models.DayHours{Enabled: true, Start: "09:15", End: "11:45"}

	slots, err := scanner.FindAvailableSlots(on(time.UTC, 0, 0), day, nil, nil, 60)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:15", "09:45", "10:15", "10:45"}, starts(slots))
}

func TestFindAvailableSlotsServiceLongerThanDay(t *testing.T) {
	scanner := NewSlotScanner(testSettings())
	slots, err := scanner.FindAvailableSlots(on(time.UTC, 0, 0), nineToFive, nil, nil, 9*60)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestFindAvailableSlotsCustomInterval(t *testing.T) {
	settings := testSettings()
	settings.SlotIntervalMinutes = 15
	scanner := NewSlotScanner(settings)
	day := models.DayHours{Enabled: true, Start: "09:00", End: "10:00"}

	slots, err := scanner.FindAvailableSlots(on(time.UTC, 0, 0), day, nil, nil, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:15", "09:30"}, starts(slots))
}

func TestFindAvailableSlotsValidation(t *testing.T) {
	scanner := NewSlotScanner(testSettings())

	_, err := scanner.FindAvailableSlots(on(time.UTC, 0, 0), nineToFive, nil, nil, -1)
	assert.True(t, IsValidationError(err))

	_, err = scanner.FindAvailableSlots(on(time.UTC, 0, 0), models.DayHours{Enabled: true, Start: "9am", End: "17:00"}, nil, nil, 30)
	assert.True(t, IsValidationError(err))

	bad := []models.Appointment{apt("a", on(time.UTC, 10, 0), -30, "A")}
	_, err = scanner.FindAvailableSlots(on(time.UTC, 0, 0), nineToFive, bad, nil, 30)
	assert.True(t, IsValidationError(err))
}

func TestOverlapsFourWay(t *testing.T) {
	at := func(h, m int) time.Time { return on(time.UTC, h, m) }
	b := interval{start: at(10, 0), end: at(11, 0)}

	cases := []struct {
		name string
		a    interval
		want bool
	}{
		{"before", interval{at(9, 0), at(10, 0)}, false},
		{"after", interval{at(11, 0), at(12, 0)}, false},
		{"starts inside", interval{at(10, 30), at(11, 30)}, true},
		{"ends inside", interval{at(9, 30), at(10, 30)}, true},
		{"contains", interval{at(9, 0), at(12, 0)}, true},
		{"contained", interval{at(10, 15), at(10, 45)}, true},
		{"identical", b, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.overlaps(b))
		})
	}
}
