package models

import "time"

// Appointment statuses as stored by the booking side of the product.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment is a booked visit. The scheduling engine only reads it.
type Appointment struct {
	ID              string    `bson:"id" json:"id"`
	UserID          string    `bson:"userId" json:"userId"`                         // provider the appointment belongs to
	ClientID        string    `bson:"clientId,omitempty" json:"clientId,omitempty"` // client being served, informational
	ScheduledAt     time.Time `bson:"scheduledAt" json:"scheduledAt"`               // absolute start time
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`       // >= 0
	Address         string    `bson:"address,omitempty" json:"address,omitempty"`   // service location, may be empty
	Status          string    `bson:"status" json:"status"`
}

// End returns the exclusive end of the occupied interval.
func (a Appointment) End() time.Time {
	return a.ScheduledAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}
