package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clipprmobile/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

// ErrUserNotFound is returned when the requested provider does not exist.
var ErrUserNotFound = errors.New("user not found")

// availabilityRequest is the validated input of the availability operations.
type availabilityRequest struct {
	UserID          string
	Dates           []string
	DurationMinutes int
}

func (r *availabilityRequest) Validate(settings Settings) error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.Dates,
			validation.Required,
			validation.Length(1, settings.MaxLookaheadDays),
			validation.Each(validation.Required, validation.Date(dateLayout))),
		validation.Field(&r.DurationMinutes, validation.Min(0), validation.Max(settings.MaxServiceMinutes)),
	)
	return asValidationError(err)
}

// dayRequest is the validated input of the single-day views.
type dayRequest struct {
	UserID string
	Date   string
}

func (r *dayRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.Date, validation.Required, validation.Date(dateLayout)),
	)
	return asValidationError(err)
}

func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	return NewValidationError(err.Error())
}

// profile is a loaded user with its resolved location.
type profile struct {
	user *models.User
	loc  *time.Location
	mode models.TransportMode
}

// GetAvailableSlots returns the offerable start times on one date.
func (s *DefaultSchedulingService) GetAvailableSlots(ctx context.Context, userID, date string, durationMinutes int) (*models.AvailabilityResult, error) {
	req := availabilityRequest{UserID: userID, Dates: []string{date}, DurationMinutes: durationMinutes}
	if err := req.Validate(s.Settings); err != nil {
		return nil, err
	}
	p, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.availabilityFor(ctx, p, date, durationMinutes)
}

// GetAvailabilityForDates computes each date independently and concurrently.
// Results keep the order of dates. Buffer throttling stays per day.
func (s *DefaultSchedulingService) GetAvailabilityForDates(ctx context.Context, userID string, dates []string, durationMinutes int) ([]models.AvailabilityResult, error) {
	req := availabilityRequest{UserID: userID, Dates: dates, DurationMinutes: durationMinutes}
	if err := req.Validate(s.Settings); err != nil {
		return nil, err
	}
	p, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	results := make([]models.AvailabilityResult, len(dates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, date := range dates {
		g.Go(func() error {
			result, err := s.availabilityFor(gctx, p, date, durationMinutes)
			if err != nil {
				return fmt.Errorf("availability for %s: %w", date, err)
			}
			results[i] = *result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// GetDayBuffers returns the travel buffer chain for one date.
func (s *DefaultSchedulingService) GetDayBuffers(ctx context.Context, userID, date string) ([]models.TravelBuffer, error) {
	req := dayRequest{UserID: userID, Date: date}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	day, err := s.parseDate(date, p.loc)
	if err != nil {
		return nil, err
	}
	appointments, err := s.loadAppointments(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	return s.Buffers.ComputeDayBuffers(ctx, appointments, p.user.HomeBaseAddress, p.user.DefaultGraceTime, p.mode), nil
}

// GetCalendar returns the hour grid for one date.
func (s *DefaultSchedulingService) GetCalendar(ctx context.Context, userID, date string) ([]models.CalendarHourSlot, error) {
	req := dayRequest{UserID: userID, Date: date}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	day, err := s.parseDate(date, p.loc)
	if err != nil {
		return nil, err
	}
	appointments, err := s.loadAppointments(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	return s.Renderer.Render(day, appointments, p.user.WorkingHours), nil
}

func (s *DefaultSchedulingService) availabilityFor(ctx context.Context, p profile, date string, durationMinutes int) (*models.AvailabilityResult, error) {
	day, err := s.parseDate(date, p.loc)
	if err != nil {
		return nil, err
	}
	result := &models.AvailabilityResult{
		Date:  date,
		Slots: []models.TimeSlotCandidate{},
	}

	hours, err := s.workingDay(p.user, day)
	if err != nil {
		result.AvailabilityError = err.Error()
		return result, nil
	}
	if err := hours.Validate(); err != nil {
		return nil, NewValidationError(fmt.Sprintf("working hours for %s: %v", date, err))
	}

	appointments, err := s.loadAppointments(ctx, p.user.ID, day)
	if err != nil {
		return nil, err
	}

	buffers := s.Buffers.ComputeDayBuffers(ctx, appointments, p.user.HomeBaseAddress, p.user.DefaultGraceTime, p.mode)
	if len(buffers) == 0 && len(appointments) > 0 {
		// The scanner applies the default buffer to every appointment without one.
		result.DefaultBufferApplied = true
		s.logger().Info("GetAvailableSlots: no buffer chain, applying default buffer",
			zap.String("userID", p.user.ID),
			zap.String("date", date),
			zap.Int("defaultBufferMinutes", s.Settings.DefaultBufferMinutes))
	}

	slots, err := s.Scanner.FindAvailableSlots(day, hours, appointments, buffers, durationMinutes)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for _, slot := range slots {
		if slot.Start.Before(now) {
			continue
		}
		result.Slots = append(result.Slots, slot)
	}
	result.Buffers = buffers
	return result, nil
}

// workingDay resolves the hours for day. A user without any schedule works
// the default hours; a schedule without an enabled entry for the weekday
// makes the day unavailable.
func (s *DefaultSchedulingService) workingDay(user *models.User, day time.Time) (models.DayHours, error) {
	if user.WorkingHours == nil {
		return models.DayHours{
			Enabled: true,
			Start:   fmt.Sprintf("%02d:00", s.Settings.DefaultStartHour),
			End:     fmt.Sprintf("%02d:00", s.Settings.DefaultEndHour),
		}, nil
	}
	hours, ok := user.WorkingHours.ForDate(day)
	if !ok || !hours.Enabled {
		return models.DayHours{}, ErrDayDisabled
	}
	return hours, nil
}

func (s *DefaultSchedulingService) loadProfile(ctx context.Context, userID string) (profile, error) {
	user, err := s.UserRepo.GetSchedulingProfile(ctx, userID)
	if err != nil {
		return profile{}, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if user == nil {
		return profile{}, ErrUserNotFound
	}

	tz := user.Timezone
	if tz == "" {
		tz = s.Settings.DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		s.logger().Warn("loadProfile: invalid timezone, using default",
			zap.String("userID", userID), zap.String("timezone", tz), zap.Error(err))
		if loc, err = time.LoadLocation(s.Settings.DefaultTimezone); err != nil {
			loc = time.UTC
		}
	}

	mode := models.TransportMode(user.TransportationMode)
	if mode == "" {
		mode = models.ModeDriving
	}
	return profile{user: user, loc: loc, mode: mode}, nil
}

func (s *DefaultSchedulingService) loadAppointments(ctx context.Context, userID string, day time.Time) ([]models.Appointment, error) {
	appointments, err := s.AppointmentRepo.GetByUserAndRange(ctx, userID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}
	active := make([]models.Appointment, 0, len(appointments))
	for _, apt := range appointments {
		if apt.Status == models.AppointmentCancelled {
			continue
		}
		active = append(active, apt)
	}
	return active, nil
}

func (s *DefaultSchedulingService) parseDate(date string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, NewValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
	}
	return day, nil
}

func (s *DefaultSchedulingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultSchedulingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
