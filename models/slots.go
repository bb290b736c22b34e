package models

import "time"

// TimeSlotCandidate is an offerable interval of exactly the requested service duration.
type TimeSlotCandidate struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AvailabilityResult is what the booking-availability endpoint returns for one date.
type AvailabilityResult struct {
	Date                 string              `json:"date"`
	Slots                []TimeSlotCandidate `json:"slots"`
	Buffers              []TravelBuffer      `json:"buffers,omitempty"`
	AvailabilityError    string              `json:"availabilityError,omitempty"`
	DefaultBufferApplied bool                `json:"defaultBufferApplied"` // no buffer chain could be computed
}
