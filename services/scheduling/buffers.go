package scheduling

import (
	"context"
	"errors"
	"strings"

	"clipprmobile/metrics"
	"clipprmobile/models"
	"clipprmobile/services/travel"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BufferCalculator computes the travel buffer in front of every appointment of a day.
type BufferCalculator struct {
	provider travel.Provider
	settings Settings
	logger   *zap.Logger
	metrics  *metrics.Recorder
}

func NewBufferCalculator(provider travel.Provider, settings Settings, logger *zap.Logger, rec *metrics.Recorder) *BufferCalculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BufferCalculator{provider: provider, settings: settings, logger: logger, metrics: rec}
}

// ComputeDayBuffers walks the day in start order. Each leg starts where the
// previous appointment was (home base for the first one, or when the previous
// address is missing), so calls are strictly sequential. It never fails: a
// leg that cannot be routed gets the fixed fallback for mode. Without a home
// base nothing is computed and the result is empty.
func (c *BufferCalculator) ComputeDayBuffers(
	ctx context.Context,
	appointments []models.Appointment,
	homeBase string,
	graceMinutes int,
	mode models.TransportMode,
) []models.TravelBuffer {
	homeBase = strings.TrimSpace(homeBase)
	if homeBase == "" {
		c.logger.Warn("ComputeDayBuffers: no home base, skipping buffer computation",
			zap.Int("appointments", len(appointments)), zap.Error(ErrMissingAddress))
		return []models.TravelBuffer{}
	}
	if !mode.Valid() {
		c.logger.Warn("ComputeDayBuffers: unknown transport mode, using driving", zap.String("mode", string(mode)))
		mode = models.ModeDriving
	}
	if graceMinutes < 0 {
		graceMinutes = 0
	}

	// Burst of one: the first call goes out immediately, later ones are
	// spaced by the throttle. A fresh limiter per day keeps requests independent.
	var limiter *rate.Limiter
	if c.settings.ProviderThrottle > 0 {
		limiter = rate.NewLimiter(rate.Every(c.settings.ProviderThrottle), 1)
	}

	sorted := sortedAppointments(appointments)
	buffers := make([]models.TravelBuffer, 0, len(sorted))
	previous := homeBase
	for _, apt := range sorted {
		buffers = append(buffers, c.bufferFor(ctx, apt, previous, graceMinutes, mode, limiter))
		previous = addressOr(apt.Address, homeBase)
	}
	return buffers
}

func (c *BufferCalculator) bufferFor(
	ctx context.Context,
	apt models.Appointment,
	origin string,
	graceMinutes int,
	mode models.TransportMode,
	limiter *rate.Limiter,
) models.TravelBuffer {
	fallback := c.settings.Fallbacks.Minutes(mode)

	destination := strings.TrimSpace(apt.Address)
	if destination == "" {
		// No destination: no call, no grace.
		c.metrics.Fallback(string(mode), "missing_destination")
		return models.TravelBuffer{
			AppointmentID:      apt.ID,
			TravelMinutes:      fallback,
			GraceMinutes:       0,
			TotalBufferMinutes: fallback,
			OriginAddress:      models.UnknownAddress,
			DestinationAddress: models.UnknownAddress,
			Fallback:           true,
		}
	}

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			c.logger.Debug("ComputeDayBuffers: throttle wait aborted", zap.Error(err))
		}
	}

	buffer := models.TravelBuffer{
		AppointmentID:      apt.ID,
		GraceMinutes:       graceMinutes,
		OriginAddress:      origin,
		DestinationAddress: destination,
	}

	est, err := c.provider.Estimate(ctx, origin, destination, mode)
	if err != nil {
		c.logger.Warn("ComputeDayBuffers: travel estimate failed, using fallback",
			zap.String("appointmentID", apt.ID),
			zap.String("mode", string(mode)),
			zap.Int("fallbackMinutes", fallback),
			zap.Error(err))
		c.metrics.Fallback(string(mode), fallbackReason(err))
		buffer.TravelMinutes = fallback
		buffer.Fallback = true
	} else {
		buffer.TravelMinutes = est.Minutes
	}
	buffer.TotalBufferMinutes = buffer.TravelMinutes + buffer.GraceMinutes
	return buffer
}

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, travel.ErrGeocodeNotFound):
		return "geocode_not_found"
	case errors.Is(err, travel.ErrRouteNotFound):
		return "route_not_found"
	default:
		return "provider_unavailable"
	}
}

func addressOr(address, fallback string) string {
	if a := strings.TrimSpace(address); a != "" {
		return a
	}
	return fallback
}
