package session

import (
	"testing"
	"time"

	"mindhaven/models"

	"github.com/stretchr/testify/assert"
)

func TestCanJoin(t *testing.T) {
	start := time.Date(2026, time.September, 10, 10, 0, 0, 0, time.UTC)
	opens := start.Add(-JoinWindow)

	t.Run("window is a closed interval", func(t *testing.T) {
		s := confirmedSession(start)
		assert.False(t, CanJoin(s, opens.Add(-time.Second)))
		assert.True(t, CanJoin(s, opens))
		assert.True(t, CanJoin(s, start.Add(-10*time.Minute)))
		assert.True(t, CanJoin(s, start))
		assert.False(t, CanJoin(s, start.Add(time.Second)))
	})

	t.Run("needs a meeting link", func(t *testing.T) {
		s := confirmedSession(start)
		s.MeetingLink = ""
		assert.False(t, CanJoin(s, start.Add(-10*time.Minute)))
	})

	t.Run("confirmed only", func(t *testing.T) {
		s := pendingSession(start)
		s.MeetingLink = "https://meet.example/abc"
		assert.False(t, CanJoin(s, start.Add(-10*time.Minute)))
	})

	t.Run("legacy scheduled counts as confirmed", func(t *testing.T) {
		s := confirmedSession(start)
		s.Status = models.StatusScheduled
		assert.True(t, CanJoin(s, start.Add(-10*time.Minute)))
	})
}

func TestCanPatientCancel(t *testing.T) {
	start := time.Date(2026, time.September, 10, 10, 0, 0, 0, time.UTC)
	cutoff := start.Add(-CancelNotice)

	t.Run("flips exactly at the cutoff", func(t *testing.T) {
		s := confirmedSession(start)
		assert.True(t, CanPatientCancel(s, cutoff.Add(-time.Second)))
		assert.False(t, CanPatientCancel(s, cutoff))
		assert.False(t, CanPatientCancel(s, cutoff.Add(time.Second)))
	})

	t.Run("pending and confirmed only", func(t *testing.T) {
		now := cutoff.Add(-time.Hour)
		assert.True(t, CanPatientCancel(pendingSession(start), now))

		for _, status := range []string{
			models.StatusCompleted, models.StatusCancelled,
			models.StatusRejected, models.StatusNoShow,
		} {
			s := confirmedSession(start)
			s.Status = status
			assert.False(t, CanPatientCancel(s, now), status)
		}
	})
}

func TestCanTherapistAct(t *testing.T) {
	start := time.Date(2026, time.September, 10, 10, 0, 0, 0, time.UTC)

	s := confirmedSession(start)
	assert.False(t, CanTherapistAct(s, start.Add(-time.Second)))
	assert.True(t, CanTherapistAct(s, start))
	assert.True(t, CanTherapistAct(s, start.Add(time.Hour)))

	assert.False(t, CanTherapistAct(pendingSession(start), start.Add(time.Hour)))
}

func TestActionsFor(t *testing.T) {
	start := time.Date(2026, time.September, 10, 10, 0, 0, 0, time.UTC)
	s := confirmedSession(start)

	// Far out: only cancelling makes sense.
	got := ActionsFor(s, start.Add(-72*time.Hour))
	assert.Equal(t, Actions{CanPatientCancel: true}, got)

	// Inside the join window: joining only.
	got = ActionsFor(s, start.Add(-10*time.Minute))
	assert.Equal(t, Actions{CanJoin: true}, got)

	// After the start: therapist close-out only.
	got = ActionsFor(s, start.Add(time.Minute))
	assert.Equal(t, Actions{CanTherapistAct: true}, got)

	// Terminal sessions expose nothing.
	s.Status = models.StatusCompleted
	assert.Equal(t, Actions{}, ActionsFor(s, start.Add(time.Minute)))
}
