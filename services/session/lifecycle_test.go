package session

import (
	"testing"
	"time"

	"mindhaven/models"
	"mindhaven/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	therapistActor = Actor{ID: "ther-1", Role: utils.RoleTherapist}
	patientActor   = Actor{ID: "pat-1", Role: utils.RolePatient}
)

func pendingSession(scheduledAt time.Time) models.Session {
	return models.Session{
		ID:          "sess-1",
		PatientID:   "pat-1",
		TherapistID: "ther-1",
		ScheduledAt: scheduledAt,
		Duration:    60,
		Status:      models.StatusPending,
	}
}

func confirmedSession(scheduledAt time.Time) models.Session {
	s := pendingSession(scheduledAt)
	s.Status = models.StatusConfirmed
	s.MeetingLink = "https://meet.example/abc"
	return s
}

func guardOf(t *testing.T, err error) string {
	t.Helper()
	var te *TransitionError
	require.ErrorAs(t, err, &te)
	return te.Guard
}

func TestAccept(t *testing.T) {
	start := time.Date(2026, time.September, 10, 10, 0, 0, 0, time.UTC)
	now := start.Add(-48 * time.Hour)

	t.Run("requires meeting link", func(t *testing.T) {
		_, err := Accept(pendingSession(start), therapistActor, "", "", now)
		assert.Equal(t, GuardMeetingLinkRequired, guardOf(t, err))
	})

	t.Run("therapist only", func(t *testing.T) {
		_, err := Accept(pendingSession(start), patientActor, "https://meet.example/abc", "", now)
		assert.Equal(t, GuardWrongActor, guardOf(t, err))

		otherTherapist := Actor{ID: "ther-2", Role: utils.RoleTherapist}
		_, err = Accept(pendingSession(start), otherTherapist, "https://meet.example/abc", "", now)
		assert.Equal(t, GuardWrongActor, guardOf(t, err))
	})

	t.Run("confirms and stores link and notes", func(t *testing.T) {
		original := pendingSession(start)
		got, err := Accept(original, therapistActor, "https://meet.example/abc", "bring journal", now)
		require.NoError(t, err)
		assert.Equal(t, models.StatusConfirmed, got.Status)
		assert.Equal(t, "https://meet.example/abc", got.MeetingLink)
		assert.Equal(t, "bring journal", got.TherapistNotes)
		assert.Equal(t, now, got.UpdatedAt)

		// Copy-on-transition: the input is untouched.
		assert.Equal(t, models.StatusPending, original.Status)
		assert.Empty(t, original.MeetingLink)
	})

	t.Run("only from pending", func(t *testing.T) {
		_, err := Accept(confirmedSession(start), therapistActor, "https://meet.example/abc", "", now)
		assert.Equal(t, GuardInvalidStatus, guardOf(t, err))
	})
}

func TestReject(t *testing.T) {
	start := time.Date(2026, time.September, 10, 10, 0, 0, 0, time.UTC)
	now := start.Add(-48 * time.Hour)

	got, err := Reject(pendingSession(start), therapistActor, "fully booked", now)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, got.Status)
	assert.Equal(t, "fully booked", got.CancellationReason)

	// Reason is optional on reject.
	got, err = Reject(pendingSession(start), therapistActor, "", now)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, got.Status)

	_, err = Reject(pendingSession(start), patientActor, "", now)
	assert.Equal(t, GuardWrongActor, guardOf(t, err))
}

func TestCancel(t *testing.T) {
	start := time.Date(2026, time.September, 10, 10, 0, 0, 0, time.UTC)
	cutoff := start.Add(-CancelNotice)

	t.Run("patient only", func(t *testing.T) {
		_, err := Cancel(pendingSession(start), therapistActor, "conflict", cutoff.Add(-time.Hour))
		assert.Equal(t, GuardWrongActor, guardOf(t, err))
	})

	t.Run("reason required", func(t *testing.T) {
		_, err := Cancel(pendingSession(start), patientActor, "", cutoff.Add(-time.Hour))
		assert.Equal(t, GuardReasonRequired, guardOf(t, err))
	})

	t.Run("window boundary is exact", func(t *testing.T) {
		// One second before the cutoff still cancels.
		got, err := Cancel(confirmedSession(start), patientActor, "conflict", cutoff.Add(-time.Second))
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, got.Status)
		assert.Equal(t, "conflict", got.CancellationReason)

		// Exactly at scheduledAt-24h the window is closed.
		_, err = Cancel(confirmedSession(start), patientActor, "conflict", cutoff)
		assert.Equal(t, GuardCancelWindowClosed, guardOf(t, err))

		_, err = Cancel(confirmedSession(start), patientActor, "conflict", cutoff.Add(time.Second))
		assert.Equal(t, GuardCancelWindowClosed, guardOf(t, err))
	})

	t.Run("pending and confirmed both cancellable", func(t *testing.T) {
		for _, s := range []models.Session{pendingSession(start), confirmedSession(start)} {
			got, err := Cancel(s, patientActor, "conflict", cutoff.Add(-time.Hour))
			require.NoError(t, err)
			assert.Equal(t, models.StatusCancelled, got.Status)
		}
	})
}

func TestCompleteAndNoShow(t *testing.T) {
	start := time.Date(2026, time.September, 10, 10, 0, 0, 0, time.UTC)

	t.Run("not before start", func(t *testing.T) {
		_, err := Complete(confirmedSession(start), therapistActor, start.Add(-time.Second))
		assert.Equal(t, GuardSessionNotStarted, guardOf(t, err))

		_, err = MarkNoShow(confirmedSession(start), therapistActor, start.Add(-time.Second))
		assert.Equal(t, GuardSessionNotStarted, guardOf(t, err))
	})

	t.Run("at or after start", func(t *testing.T) {
		got, err := Complete(confirmedSession(start), therapistActor, start)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, got.Status)

		got, err = MarkNoShow(confirmedSession(start), therapistActor, start.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, models.StatusNoShow, got.Status)
	})

	t.Run("not from pending", func(t *testing.T) {
		_, err := Complete(pendingSession(start), therapistActor, start.Add(time.Hour))
		assert.Equal(t, GuardInvalidStatus, guardOf(t, err))
	})

	t.Run("legacy scheduled status treated as confirmed", func(t *testing.T) {
		s := confirmedSession(start)
		s.Status = models.StatusScheduled
		got, err := Complete(s, therapistActor, start.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, got.Status)
	})
}

func TestTerminalStatesAcceptNoTransitions(t *testing.T) {
	start := time.Date(2026, time.September, 10, 10, 0, 0, 0, time.UTC)
	now := start.Add(2 * time.Hour)

	for _, status := range []string{
		models.StatusCompleted, models.StatusCancelled,
		models.StatusRejected, models.StatusNoShow,
	} {
		s := confirmedSession(start)
		s.Status = status

		_, err := Accept(s, therapistActor, "https://meet.example/abc", "", now)
		assert.Equal(t, GuardTerminalState, guardOf(t, err), "accept from %s", status)

		_, err = Cancel(s, patientActor, "reason", start.Add(-48*time.Hour))
		assert.Equal(t, GuardTerminalState, guardOf(t, err), "cancel from %s", status)

		_, err = Complete(s, therapistActor, now)
		assert.Equal(t, GuardTerminalState, guardOf(t, err), "complete from %s", status)
	}
}

func TestUpdateNotes(t *testing.T) {
	start := time.Date(2026, time.September, 10, 10, 0, 0, 0, time.UTC)
	now := start.Add(2 * time.Hour)

	t.Run("on confirmed, status unchanged", func(t *testing.T) {
		got, err := UpdateNotes(confirmedSession(start), therapistActor, "made progress", now)
		require.NoError(t, err)
		assert.Equal(t, models.StatusConfirmed, got.Status)
		assert.Equal(t, "made progress", got.TherapistNotes)
	})

	t.Run("still allowed after completion", func(t *testing.T) {
		s := confirmedSession(start)
		s.Status = models.StatusCompleted
		got, err := UpdateNotes(s, therapistActor, "follow up next week", now)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, got.Status)
		assert.Equal(t, "follow up next week", got.TherapistNotes)
	})

	t.Run("not on cancelled", func(t *testing.T) {
		s := confirmedSession(start)
		s.Status = models.StatusCancelled
		_, err := UpdateNotes(s, therapistActor, "n/a", now)
		assert.Equal(t, GuardTerminalState, guardOf(t, err))
	})

	t.Run("therapist only", func(t *testing.T) {
		_, err := UpdateNotes(confirmedSession(start), patientActor, "hi", now)
		assert.Equal(t, GuardWrongActor, guardOf(t, err))
	})
}

func TestTransitionsAreIdempotentOnFailure(t *testing.T) {
	start := time.Date(2026, time.September, 10, 10, 0, 0, 0, time.UTC)
	s := confirmedSession(start)
	now := start.Add(-time.Hour) // inside the cancel blackout

	first, err1 := Cancel(s, patientActor, "conflict", now)
	second, err2 := Cancel(s, patientActor, "conflict", now)
	assert.Equal(t, guardOf(t, err1), guardOf(t, err2))
	assert.Equal(t, first, second)
	assert.Equal(t, models.StatusConfirmed, s.Status)
}
