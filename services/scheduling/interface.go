package scheduling

import (
	"context"
	"time"

	appointmentRepo "clipprmobile/database/repository/appointment"
	userRepo "clipprmobile/database/repository/user"
	"clipprmobile/models"

	"go.uber.org/zap"
)

type SchedulingService interface {
	// Availability
	GetAvailableSlots(ctx context.Context, userID, date string, durationMinutes int) (*models.AvailabilityResult, error)
	GetAvailabilityForDates(ctx context.Context, userID string, dates []string, durationMinutes int) ([]models.AvailabilityResult, error)

	// Day views
	GetDayBuffers(ctx context.Context, userID, date string) ([]models.TravelBuffer, error)
	GetCalendar(ctx context.Context, userID, date string) ([]models.CalendarHourSlot, error)
}

// DefaultSchedulingService is the production implementation.
type DefaultSchedulingService struct {
	UserRepo        userRepo.UserRepository
	AppointmentRepo appointmentRepo.AppointmentRepository
	Buffers         *BufferCalculator
	Scanner         *SlotScanner
	Renderer        *CalendarRenderer
	Settings        Settings
	Logger          *zap.Logger
	Now             func() time.Time // nil means time.Now
}
