package session

import (
	"time"

	"mindhaven/models"
	"mindhaven/utils"
)

// CancelNotice is the minimum lead a patient cancellation needs before the
// scheduled start.
const CancelNotice = 24 * time.Hour

// Actor identifies who is attempting a transition. Role checks happen here,
// inside the state machine, not only at the HTTP layer.
type Actor struct {
	ID   string
	Role string // utils.RolePatient or utils.RoleTherapist
}

// The transition functions below are pure: they take a session by value and
// return the new authoritative copy, so callers can update optimistically and
// roll back when the server rejects the persisted write. Guards are
// re-validated on every call regardless of any eligibility check the caller
// already ran.

func requireTherapist(s models.Session, actor Actor) error {
	if actor.Role != utils.RoleTherapist || actor.ID != s.TherapistID {
		return newTransitionError(GuardWrongActor, "only the session's therapist may perform this action")
	}
	return nil
}

func requirePatient(s models.Session, actor Actor) error {
	if actor.Role != utils.RolePatient || actor.ID != s.PatientID {
		return newTransitionError(GuardWrongActor, "only the session's patient may perform this action")
	}
	return nil
}

func requireStatus(s models.Session, allowed ...string) error {
	status := models.NormalizeStatus(s.Status)
	for _, a := range allowed {
		if status == a {
			return nil
		}
	}
	if s.IsTerminal() {
		return newTransitionError(GuardTerminalState, "session is %s and accepts no further transitions", status)
	}
	return newTransitionError(GuardInvalidStatus, "session is %s", status)
}

// Accept confirms a pending session. The meeting link is mandatory: a
// confirmed session the patient cannot join is worse than a pending one.
func Accept(s models.Session, actor Actor, meetingLink, notes string, now time.Time) (models.Session, error) {
	if err := requireTherapist(s, actor); err != nil {
		return s, err
	}
	if err := requireStatus(s, models.StatusPending); err != nil {
		return s, err
	}
	if meetingLink == "" {
		return s, newTransitionError(GuardMeetingLinkRequired, "a meeting link is required to confirm a session")
	}

	out := s
	out.Status = models.StatusConfirmed
	out.MeetingLink = meetingLink
	if notes != "" {
		out.TherapistNotes = notes
	}
	out.UpdatedAt = now
	return out, nil
}

// Reject declines a pending session. The reason is optional.
func Reject(s models.Session, actor Actor, reason string, now time.Time) (models.Session, error) {
	if err := requireTherapist(s, actor); err != nil {
		return s, err
	}
	if err := requireStatus(s, models.StatusPending); err != nil {
		return s, err
	}

	out := s
	out.Status = models.StatusRejected
	out.CancellationReason = reason
	out.UpdatedAt = now
	return out, nil
}

// Cancel lets the patient withdraw a pending or confirmed session up to
// CancelNotice before the start. The cutoff is exact: a cancellation at
// scheduledAt-24h is already too late.
func Cancel(s models.Session, actor Actor, reason string, now time.Time) (models.Session, error) {
	if err := requirePatient(s, actor); err != nil {
		return s, err
	}
	if err := requireStatus(s, models.StatusPending, models.StatusConfirmed); err != nil {
		return s, err
	}
	if reason == "" {
		return s, newTransitionError(GuardReasonRequired, "a cancellation reason is required")
	}
	if !now.Before(s.ScheduledAt.Add(-CancelNotice)) {
		return s, newTransitionError(GuardCancelWindowClosed, "cannot cancel within 24 hours of the session")
	}

	out := s
	out.Status = models.StatusCancelled
	out.CancellationReason = reason
	out.UpdatedAt = now
	return out, nil
}

// Complete marks a confirmed session as held. Only valid once the scheduled
// start has passed.
func Complete(s models.Session, actor Actor, now time.Time) (models.Session, error) {
	return closeOut(s, actor, models.StatusCompleted, now)
}

// MarkNoShow records that the patient did not attend a confirmed session.
func MarkNoShow(s models.Session, actor Actor, now time.Time) (models.Session, error) {
	return closeOut(s, actor, models.StatusNoShow, now)
}

func closeOut(s models.Session, actor Actor, to string, now time.Time) (models.Session, error) {
	if err := requireTherapist(s, actor); err != nil {
		return s, err
	}
	if err := requireStatus(s, models.StatusConfirmed); err != nil {
		return s, err
	}
	if now.Before(s.ScheduledAt) {
		return s, newTransitionError(GuardSessionNotStarted, "session has not started yet")
	}

	out := s
	out.Status = to
	out.UpdatedAt = now
	return out, nil
}

// UpdateNotes attaches or replaces therapist notes. Notes are cosmetic
// metadata: allowed on confirmed sessions and, post-hoc, on completed ones,
// without changing status.
func UpdateNotes(s models.Session, actor Actor, notes string, now time.Time) (models.Session, error) {
	if err := requireTherapist(s, actor); err != nil {
		return s, err
	}
	if err := requireStatus(s, models.StatusConfirmed, models.StatusCompleted); err != nil {
		return s, err
	}

	out := s
	out.TherapistNotes = notes
	out.UpdatedAt = now
	return out, nil
}
