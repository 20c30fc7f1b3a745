package models

import "time"

// Therapist is the provider side of a session. Profile management lives in an
// external service; this server reads the fields booking needs and lets the
// therapist maintain their weekly availability.
type Therapist struct {
	ID           string             `bson:"id" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	SessionRate  float64            `bson:"sessionRate" json:"sessionRate"` // standard fee per session
	Currency     string             `bson:"currency" json:"currency"`
	Specialties  []string           `bson:"specialties,omitempty" json:"specialties,omitempty"`
	Availability WeeklyAvailability `bson:"availability,omitempty" json:"availability,omitempty"`
	FCMToken     string             `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
