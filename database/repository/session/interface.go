package sessionRepo

import (
	"context"
	"time"

	"mindhaven/models"
)

// SessionRepository defines data access for therapy sessions. The repository
// is the single source of truth for session state; services persist every
// transition through Update and never mutate documents in place.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	Update(ctx context.Context, session *models.Session) error
	List(ctx context.Context, filter models.SessionFilter) ([]models.Session, error)

	// GetBookedDates returns the calendar dates ("YYYY-MM-DD") inside
	// [from, to) that carry a non-terminal session with the given therapist.
	GetBookedDates(ctx context.Context, therapistID string, from, to time.Time) (map[string]bool, error)
}
