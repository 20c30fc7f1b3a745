package session

import (
	"time"

	"mindhaven/models"
)

// JoinWindow is how far before the scheduled start the meeting becomes
// joinable.
const JoinWindow = 15 * time.Minute

// The predicates below are advisory: they drive which controls a client
// enables, and the state machine re-checks everything when the action
// actually arrives. They are pure over (session, now).

// CanJoin reports whether the meeting can be entered right now: the session
// is confirmed, a meeting link exists, and now lies inside the closed
// interval [scheduledAt-15m, scheduledAt].
func CanJoin(s models.Session, now time.Time) bool {
	if models.NormalizeStatus(s.Status) != models.StatusConfirmed {
		return false
	}
	if s.MeetingLink == "" {
		return false
	}
	opens := s.ScheduledAt.Add(-JoinWindow)
	return !now.Before(opens) && !now.After(s.ScheduledAt)
}

// CanPatientCancel reports whether the patient can still cancel: pending or
// confirmed, and strictly more than 24 hours before the start.
func CanPatientCancel(s models.Session, now time.Time) bool {
	switch models.NormalizeStatus(s.Status) {
	case models.StatusPending, models.StatusConfirmed:
	default:
		return false
	}
	return now.Before(s.ScheduledAt.Add(-CancelNotice))
}

// CanTherapistAct reports whether the therapist may close out the session
// (complete or no-show): confirmed and the scheduled start has passed.
func CanTherapistAct(s models.Session, now time.Time) bool {
	if models.NormalizeStatus(s.Status) != models.StatusConfirmed {
		return false
	}
	return !now.Before(s.ScheduledAt)
}

// Actions bundles the predicates for one session so list endpoints can ship
// them alongside the entity.
type Actions struct {
	CanJoin          bool `json:"canJoin"`
	CanPatientCancel bool `json:"canPatientCancel"`
	CanTherapistAct  bool `json:"canTherapistAct"`
}

// ActionsFor evaluates all predicates at one instant.
func ActionsFor(s models.Session, now time.Time) Actions {
	return Actions{
		CanJoin:          CanJoin(s, now),
		CanPatientCancel: CanPatientCancel(s, now),
		CanTherapistAct:  CanTherapistAct(s, now),
	}
}
