package session

import (
	"context"
	"time"

	"mindhaven/models"
)

// SessionService owns the booking flow and the session lifecycle. Every
// transition re-validates its guards server-side; eligibility flags shipped
// to clients are advisory only.
type SessionService interface {
	// GetTherapistCalendar returns the patient-facing calendar for a window
	// of days starting at from.
	GetTherapistCalendar(ctx context.Context, therapistID string, from time.Time, days int) (*models.TherapistCalendar, error)

	// BookSession validates the input, confirms payment, and creates the
	// session in pending.
	BookSession(ctx context.Context, input BookingInput) (*models.Session, error)

	GetSession(ctx context.Context, id string) (*models.Session, error)
	ListSessions(ctx context.Context, filter models.SessionFilter) ([]models.Session, error)

	AcceptSession(ctx context.Context, id string, actor Actor, meetingLink, notes string) (*models.Session, error)
	RejectSession(ctx context.Context, id string, actor Actor, reason string) (*models.Session, error)
	CancelSession(ctx context.Context, id string, actor Actor, reason string) (*models.Session, error)
	CompleteSession(ctx context.Context, id string, actor Actor) (*models.Session, error)
	MarkSessionNoShow(ctx context.Context, id string, actor Actor) (*models.Session, error)
	UpdateSessionNotes(ctx context.Context, id string, actor Actor, notes string) (*models.Session, error)
}
