package models

// TransportMode is how the provider moves between appointments.
type TransportMode string

const (
	ModeDriving TransportMode = "driving"
	ModeWalking TransportMode = "walking"
	ModeCycling TransportMode = "cycling"
	ModeTransit TransportMode = "transit"
)

// Valid reports whether m is one of the supported modes.
func (m TransportMode) Valid() bool {
	switch m {
	case ModeDriving, ModeWalking, ModeCycling, ModeTransit:
		return true
	}
	return false
}

// Coordinates is a resolved address.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TravelEstimate is a successful routing result.
type TravelEstimate struct {
	Minutes        int `json:"minutes"`
	DistanceMeters int `json:"distanceMeters"`
}

// UnknownAddress labels buffer legs whose destination could not be determined.
const UnknownAddress = "Unknown"

// TravelBuffer is the gap required before an appointment. Derived per
// request, never persisted.
type TravelBuffer struct {
	AppointmentID      string `json:"appointmentId"`
	TravelMinutes      int    `json:"travelMinutes"`
	GraceMinutes       int    `json:"graceMinutes"`
	TotalBufferMinutes int    `json:"totalBufferMinutes"` // TravelMinutes + GraceMinutes
	OriginAddress      string `json:"originAddress"`
	DestinationAddress string `json:"destinationAddress"`
	Fallback           bool   `json:"fallback"` // travel minutes came from the fixed per-mode table
}
