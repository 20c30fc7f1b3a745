package therapistRepo

import (
	"context"

	"mindhaven/models"
)

// TherapistRepository defines data access for therapist profiles. Profiles are
// owned by the external account service; booking reads them and lets the
// therapist maintain their recurring availability.
type TherapistRepository interface {
	GetByID(ctx context.Context, id string) (*models.Therapist, error)
	UpdateAvailability(ctx context.Context, id string, availability models.WeeklyAvailability) error
}
