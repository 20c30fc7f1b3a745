package models

import "time"

// Session statuses. A session is created pending and moves through the
// lifecycle owned by services/session.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusRejected  = "rejected"
	StatusNoShow    = "no-show"

	// StatusScheduled is a legacy alias for confirmed still present in older
	// documents. It is normalized on read and never written back.
	StatusScheduled = "scheduled"
)

// Payment statuses, set by the payment collaborator and read for display only.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// Session is a therapy appointment between a patient and a therapist.
type Session struct {
	ID                 string    `bson:"id" json:"id"`
	PatientID          string    `bson:"patientId" json:"patientId"`
	TherapistID        string    `bson:"therapistId" json:"therapistId"`
	ScheduledAt        time.Time `bson:"scheduledAt" json:"scheduledAt"` // stored UTC
	Duration           int       `bson:"duration" json:"duration"`       // minutes
	SessionFee         float64   `bson:"sessionFee" json:"sessionFee"`   // 0 marks a free trial
	Currency           string    `bson:"currency,omitempty" json:"currency,omitempty"`
	Status             string    `bson:"status" json:"status"`
	PaymentStatus      string    `bson:"paymentStatus" json:"paymentStatus"`
	MeetingLink        string    `bson:"meetingLink,omitempty" json:"meetingLink,omitempty"`
	TherapistNotes     string    `bson:"therapistNotes,omitempty" json:"therapistNotes,omitempty"`
	CancellationReason string    `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsFreeTrial reports whether this session was booked as a free trial.
func (s Session) IsFreeTrial() bool {
	return s.SessionFee == 0
}

// IsTerminal reports whether the session accepts no further lifecycle
// transitions.
func (s Session) IsTerminal() bool {
	switch s.Status {
	case StatusCompleted, StatusCancelled, StatusRejected, StatusNoShow:
		return true
	}
	return false
}

// EndsAt returns the scheduled end of the session.
func (s Session) EndsAt() time.Time {
	return s.ScheduledAt.Add(time.Duration(s.Duration) * time.Minute)
}

// NormalizeStatus collapses the legacy "scheduled" value onto "confirmed".
func NormalizeStatus(status string) string {
	if status == StatusScheduled {
		return StatusConfirmed
	}
	return status
}

// SessionRequest is the creation payload produced by the booking negotiator.
// Persistence and payment confirmation happen outside the negotiator.
type SessionRequest struct {
	PatientID   string    `json:"patientId"`
	TherapistID string    `json:"therapistId"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Duration    int       `json:"duration"`
	SessionFee  float64   `json:"sessionFee"`
	Currency    string    `json:"currency,omitempty"`
	FreeTrial   bool      `json:"freeTrial"`
}

// SessionFilter narrows session listings.
type SessionFilter struct {
	PatientID   string `json:"patientId,omitempty"`
	TherapistID string `json:"therapistId,omitempty"`
	Status      string `json:"status,omitempty"`
	From        string `json:"from,omitempty"` // "YYYY-MM-DD", inclusive
	To          string `json:"to,omitempty"`   // "YYYY-MM-DD", exclusive
}
