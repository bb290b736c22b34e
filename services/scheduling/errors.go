package scheduling

import (
	"errors"
	"fmt"
)

// Conditions the engine recovers from locally. They are logged or reported
// as text, never returned to callers.
var (
	ErrDayDisabled    = errors.New("working hours are disabled for this date")
	ErrMissingAddress = errors.New("address is missing")
)

// ValidationError reports malformed structural input: an unparseable date or
// clock time, a negative duration. It is the only error class the core
// returns for bad data.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &ValidationError{
		Code:    "invalidInput",
		Message: msg,
	}
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
