package scheduling

import (
	"context"
	"sync"
	"time"

	"clipprmobile/models"
)

type leg struct {
	Origin      string
	Destination string
	Mode        models.TransportMode
	At          time.Time
}

// fakeProvider answers from fixed per-destination minutes and records every call.
type fakeProvider struct {
	mu      sync.Mutex
	minutes map[string]int
	errs    map[string]error
	err     error
	calls   []leg
}

func (f *fakeProvider) Estimate(_ context.Context, origin, destination string, mode models.TransportMode) (models.TravelEstimate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, leg{Origin: origin, Destination: destination, Mode: mode, At: time.Now()})
	if err, ok := f.errs[destination]; ok {
		return models.TravelEstimate{}, err
	}
	if f.err != nil {
		return models.TravelEstimate{}, f.err
	}
	m, ok := f.minutes[destination]
	if !ok {
		m = 10
	}
	return models.TravelEstimate{Minutes: m}, nil
}

func (f *fakeProvider) Calls() []leg {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]leg, len(f.calls))
	copy(out, f.calls)
	return out
}

type fakeUserRepo struct {
	users map[string]*models.User
	err   error
}

func (f *fakeUserRepo) GetSchedulingProfile(_ context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments []models.Appointment
	err          error
	ranges       [][2]time.Time
}

func (f *fakeAppointmentRepo) GetByUserAndRange(_ context.Context, userID string, from, to time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ranges = append(f.ranges, [2]time.Time{from, to})
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Appointment
	for _, apt := range f.appointments {
		if apt.UserID != userID {
			continue
		}
		if apt.ScheduledAt.Before(from) || !apt.ScheduledAt.Before(to) {
			continue
		}
		out = append(out, apt)
	}
	return out, nil
}

// testSettings disables throttling so tests run fast.
func testSettings() Settings {
	s := DefaultSettings()
	s.ProviderThrottle = 0
	return s
}

// on returns h:m on 2024-03-04 (a Monday) in loc.
func on(loc *time.Location, h, m int) time.Time {
	return time.Date(2024, 3, 4, h, m, 0, 0, loc)
}

func apt(id string, start time.Time, minutes int, address string) models.Appointment {
	return models.Appointment{
		ID:              id,
		UserID:          "u1",
		ScheduledAt:     start,
		DurationMinutes: minutes,
		Address:         address,
		Status:          models.AppointmentConfirmed,
	}
}

func (f *fakeAppointmentRepo) GetInRange(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if !a.ScheduledAt.Before(from) && a.ScheduledAt.Before(to) {
			out = append(out, a)
		}
	}
	return out, f.err
}
