package session

import (
	"testing"
	"time"

	"mindhaven/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTherapist() *models.Therapist {
	return &models.Therapist{
		ID:          "ther-1",
		Name:        "Dr. Osei",
		SessionRate: 80,
		Currency:    "USD",
	}
}

func validInput() BookingInput {
	return BookingInput{
		PatientID:   "pat-1",
		TherapistID: "ther-1",
		Date:        "2026-09-01",
		Slot:        "10:00",
		Duration:    60,
	}
}

func TestBuildSessionRequest_MissingSelection(t *testing.T) {
	input := validInput()
	input.Date = ""
	_, err := BuildSessionRequest(input, testTherapist(), nil)
	assert.ErrorIs(t, err, ErrMissingSelection)

	input = validInput()
	input.Slot = ""
	_, err = BuildSessionRequest(input, testTherapist(), nil)
	assert.ErrorIs(t, err, ErrMissingSelection)
}

func TestBuildSessionRequest_TherapistUnresolved(t *testing.T) {
	_, err := BuildSessionRequest(validInput(), nil, nil)
	assert.ErrorIs(t, err, ErrTherapistUnresolved)
}

func TestBuildSessionRequest_DurationMustBeOffered(t *testing.T) {
	input := validInput()
	input.Duration = 45
	_, err := BuildSessionRequest(input, testTherapist(), nil)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestBuildSessionRequest_CombinesDateAndSlot(t *testing.T) {
	req, err := BuildSessionRequest(validInput(), testTherapist(), nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC), req.ScheduledAt)
	assert.Equal(t, 60, req.Duration)
	assert.Equal(t, "USD", req.Currency)
}

func TestBuildSessionRequest_FirstSessionIsFreeTrial(t *testing.T) {
	req, err := BuildSessionRequest(validInput(), testTherapist(), nil)
	require.NoError(t, err)
	assert.True(t, req.FreeTrial)
	assert.Zero(t, req.SessionFee)
}

func TestBuildSessionRequest_UnpaidHistoryKeepsTrial(t *testing.T) {
	// Pending, rejected, cancelled and no-show sessions do not consume the
	// free trial; neither do sessions with a different therapist.
	history := []models.Session{
		{TherapistID: "ther-1", Status: models.StatusPending},
		{TherapistID: "ther-1", Status: models.StatusRejected},
		{TherapistID: "ther-1", Status: models.StatusCancelled},
		{TherapistID: "ther-1", Status: models.StatusNoShow},
		{TherapistID: "ther-2", Status: models.StatusCompleted},
	}

	req, err := BuildSessionRequest(validInput(), testTherapist(), history)
	require.NoError(t, err)
	assert.True(t, req.FreeTrial)
	assert.Zero(t, req.SessionFee)
}

func TestBuildSessionRequest_StandardRateAfterCompletedSession(t *testing.T) {
	history := []models.Session{
		{TherapistID: "ther-1", Status: models.StatusCompleted},
	}

	req, err := BuildSessionRequest(validInput(), testTherapist(), history)
	require.NoError(t, err)
	assert.False(t, req.FreeTrial)
	assert.Equal(t, 80.0, req.SessionFee)
}

func TestBuildSessionRequest_LegacyScheduledStatusConsumesTrial(t *testing.T) {
	history := []models.Session{
		{TherapistID: "ther-1", Status: models.StatusScheduled},
	}

	req, err := BuildSessionRequest(validInput(), testTherapist(), history)
	require.NoError(t, err)
	assert.False(t, req.FreeTrial)
	assert.Equal(t, 80.0, req.SessionFee)
}
