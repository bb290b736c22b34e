package scheduling

import (
	"fmt"
	"time"

	"clipprmobile/config"
	"clipprmobile/models"
	"clipprmobile/services/travel"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Settings are the engine-wide defaults. They are injected at construction
// so tests can override them.
type Settings struct {
	DefaultStartHour     int                  // first grid hour when no schedule applies
	DefaultEndHour       int                  // last grid hour when no schedule applies
	SlotIntervalMinutes  int                  // spacing between candidate start times
	DefaultBufferMinutes int                  // used when no buffer chain could be computed
	MaxServiceMinutes    int                  // longest service a client may request
	MaxLookaheadDays     int                  // most dates one multi-date request may cover
	ProviderThrottle     time.Duration        // delay between consecutive routing calls in a day
	Fallbacks            travel.FallbackTable // per-mode minutes when routing fails
	DefaultTimezone      string               // for users without a timezone
}

func DefaultSettings() Settings {
	return Settings{
		DefaultStartHour:     9,
		DefaultEndHour:       20,
		SlotIntervalMinutes:  30,
		DefaultBufferMinutes: 15,
		MaxServiceMinutes:    12 * 60,
		MaxLookaheadDays:     14,
		ProviderThrottle:     100 * time.Millisecond,
		Fallbacks:            travel.DefaultFallbackTable(),
		DefaultTimezone:      "UTC",
	}
}

// SettingsFromConfig maps the application config onto Settings.
func SettingsFromConfig(cfg config.Config) Settings {
	s := DefaultSettings()
	s.DefaultStartHour = cfg.ScheduleDefaultStartHour
	s.DefaultEndHour = cfg.ScheduleDefaultEndHour
	s.SlotIntervalMinutes = cfg.ScheduleSlotIntervalMinutes
	s.DefaultBufferMinutes = cfg.ScheduleDefaultBufferMinutes
	s.MaxLookaheadDays = cfg.ScheduleMaxLookaheadDays
	s.ProviderThrottle = time.Duration(cfg.TravelThrottleMs) * time.Millisecond
	s.Fallbacks = travel.FallbackTable{
		models.ModeDriving: cfg.FallbackDrivingMinutes,
		models.ModeWalking: cfg.FallbackWalkingMinutes,
		models.ModeCycling: cfg.FallbackCyclingMinutes,
		models.ModeTransit: cfg.FallbackTransitMinutes,
	}
	if cfg.DefaultTimezone != "" {
		s.DefaultTimezone = cfg.DefaultTimezone
	}
	return s
}

// Validate rejects settings the engine cannot work with.
func (s *Settings) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.DefaultStartHour, validation.Min(0), validation.Max(23)),
		validation.Field(&s.DefaultEndHour, validation.Min(0), validation.Max(23), validation.By(s.endNotBeforeStart)),
		validation.Field(&s.SlotIntervalMinutes, validation.Required, validation.Min(1)),
		validation.Field(&s.DefaultBufferMinutes, validation.Min(0)),
		validation.Field(&s.MaxServiceMinutes, validation.Required, validation.Min(1)),
		validation.Field(&s.MaxLookaheadDays, validation.Required, validation.Min(1)),
		validation.Field(&s.ProviderThrottle, validation.Min(time.Duration(0)), validation.Max(5*time.Second)),
		validation.Field(&s.Fallbacks, validation.By(nonNegativeFallbacks)),
		validation.Field(&s.DefaultTimezone, validation.Required, validation.By(validTimezone)),
	)
}

func (s *Settings) endNotBeforeStart(interface{}) error {
	if s.DefaultEndHour < s.DefaultStartHour {
		return validation.NewError("validation_end_before_start", "must not be before the default start hour")
	}
	return nil
}

func nonNegativeFallbacks(value interface{}) error {
	table, _ := value.(travel.FallbackTable)
	for mode, minutes := range table {
		if minutes < 0 {
			return validation.NewError("validation_fallback_negative", fmt.Sprintf("fallback for %s must not be negative", mode))
		}
	}
	return nil
}

func validTimezone(value interface{}) error {
	name, _ := value.(string)
	if _, err := time.LoadLocation(name); err != nil {
		return validation.NewError("validation_timezone", "must be a valid IANA timezone")
	}
	return nil
}
