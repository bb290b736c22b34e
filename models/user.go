package models

// User carries the profile fields the scheduling engine reads.
type User struct {
	ID                 string       `bson:"id" json:"id"`
	Name               string       `bson:"name" json:"name,omitempty"`
	Email              string       `bson:"email" json:"email,omitempty"`
	HomeBaseAddress    string       `bson:"homeBaseAddress" json:"homeBaseAddress,omitempty"`
	DefaultGraceTime   int          `bson:"defaultGraceTime" json:"defaultGraceTime"`     // minutes added to every travel estimate
	TransportationMode string       `bson:"transportationMode" json:"transportationMode"` // driving, walking, cycling or transit
	WorkingHours       WorkingHours `bson:"workingHours,omitempty" json:"workingHours,omitempty"`
	Timezone           string       `bson:"timezone,omitempty" json:"timezone,omitempty"` // IANA name, e.g. "America/New_York"
}
