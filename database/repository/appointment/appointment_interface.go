package appointmentRepo

import (
	"context"
	"time"

	"clipprmobile/models"
)

// AppointmentRepository reads booked appointments. Scheduling never writes them.
type AppointmentRepository interface {
	// GetByUserAndRange returns the user's non-cancelled appointments starting
	// in [from, to), ordered by start time.
	GetByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]models.Appointment, error)
	// GetInRange returns every user's non-cancelled appointments starting in [from, to).
	GetInRange(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
}
