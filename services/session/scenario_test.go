package session

import (
	"testing"
	"time"

	"mindhaven/models"
	"mindhaven/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFirstSessionEndToEnd walks a first booking through its whole life:
// slot discovery, free-trial booking, confirmation, the join window, and
// close-out, checking the eligibility predicates at each step.
func TestFirstSessionEndToEnd(t *testing.T) {
	therapist := &models.Therapist{
		ID:          "ther-9",
		SessionRate: 80,
		Currency:    "USD",
		Availability: models.WeeklyAvailability{
			"monday": {{Start: "10:00", End: "14:00"}},
			// No tuesday entry: the default workday applies.
		},
	}

	// Tuesday 2026-09-01 falls back to 09:00-17:00.
	tuesday := date(2026, 9, 1)
	slots := ResolveDaySlots(tuesday, therapist.Availability)
	require.Equal(t, []string{
		"09:00", "10:00", "11:00", "12:00",
		"13:00", "14:00", "15:00", "16:00",
	}, slots)

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	require.True(t, IsDateBookable(tuesday, therapist.Availability, DateSet{}, now))

	// No history with this therapist: the booking is a free trial.
	req, err := BuildSessionRequest(BookingInput{
		PatientID:   "pat-7",
		TherapistID: therapist.ID,
		Date:        "2026-09-01",
		Slot:        "10:00",
		Duration:    60,
	}, therapist, nil)
	require.NoError(t, err)
	assert.True(t, req.FreeTrial)
	assert.Zero(t, req.SessionFee)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), req.ScheduledAt)

	s := models.Session{
		ID:          "sess-42",
		PatientID:   req.PatientID,
		TherapistID: req.TherapistID,
		ScheduledAt: req.ScheduledAt,
		Duration:    req.Duration,
		SessionFee:  req.SessionFee,
		Currency:    req.Currency,
		Status:      models.StatusPending,
	}

	// The pending session hides the date from other patients.
	booked := DateSet{"2026-09-01": true}
	assert.False(t, IsDateBookable(tuesday, therapist.Availability, booked, now))

	// Nothing joinable while pending.
	assert.False(t, CanJoin(s, s.ScheduledAt.Add(-10*time.Minute)))

	therAct := Actor{ID: therapist.ID, Role: utils.RoleTherapist}
	patAct := Actor{ID: "pat-7", Role: utils.RolePatient}

	s, err = Accept(s, therAct, "https://meet.example/sess-42", "", now)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, s.Status)

	// Join window: closed 20 minutes out, open 10 minutes out.
	assert.False(t, CanJoin(s, s.ScheduledAt.Add(-20*time.Minute)))
	assert.True(t, CanJoin(s, s.ScheduledAt.Add(-10*time.Minute)))

	// Ten minutes out the cancel window is long gone.
	assert.False(t, CanPatientCancel(s, s.ScheduledAt.Add(-10*time.Minute)))
	_, err = Cancel(s, patAct, "changed my mind", s.ScheduledAt.Add(-10*time.Minute))
	assert.Equal(t, GuardCancelWindowClosed, guardOf(t, err))

	// One minute in the therapist can close out.
	closeAt := s.ScheduledAt.Add(time.Minute)
	assert.True(t, CanTherapistAct(s, closeAt))
	s, err = Complete(s, therAct, closeAt)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, s.Status)

	// The completed session consumes the trial: the next booking is billed.
	req2, err := BuildSessionRequest(BookingInput{
		PatientID:   "pat-7",
		TherapistID: therapist.ID,
		Date:        "2026-09-08",
		Slot:        "11:00",
		Duration:    60,
	}, therapist, []models.Session{s})
	require.NoError(t, err)
	assert.False(t, req2.FreeTrial)
	assert.Equal(t, 80.0, req2.SessionFee)
}
