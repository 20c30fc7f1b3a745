package session

import (
	"fmt"
	"time"

	"mindhaven/config"
	"mindhaven/models"
)

// BookingInput is what the patient's booking screen submits.
type BookingInput struct {
	PatientID   string `json:"patientId"`
	TherapistID string `json:"therapistId"`
	Date        string `json:"date"` // "YYYY-MM-DD"
	Slot        string `json:"slot"` // "HH:MM"
	Duration    int    `json:"duration"`
}

func allowedDurations() []int {
	if d := config.AppConfig.AllowedDurations; len(d) > 0 {
		return d
	}
	return []int{30, 60, 90}
}

// hasPriorPaidSession reports whether the patient has ever had a confirmed or
// completed session with this therapist. Anything else (pending, rejected,
// cancelled, no-show) does not consume the free trial.
func hasPriorPaidSession(history []models.Session, therapistID string) bool {
	for _, s := range history {
		if s.TherapistID != therapistID {
			continue
		}
		switch models.NormalizeStatus(s.Status) {
		case models.StatusConfirmed, models.StatusCompleted:
			return true
		}
	}
	return false
}

// BuildSessionRequest validates the booking input and computes the creation
// payload: the effective fee (zero for a first session with this therapist)
// and the absolute start timestamp. It never touches storage; persistence and
// payment confirmation belong to the caller.
func BuildSessionRequest(input BookingInput, therapist *models.Therapist, history []models.Session) (*models.SessionRequest, error) {
	if input.Date == "" || input.Slot == "" {
		return nil, ErrMissingSelection
	}
	if therapist == nil {
		return nil, ErrTherapistUnresolved
	}
	if input.PatientID == "" {
		return nil, NewValidationError("patientId", "patient identity is required")
	}

	durationOK := false
	for _, d := range allowedDurations() {
		if input.Duration == d {
			durationOK = true
			break
		}
	}
	if !durationOK {
		return nil, NewValidationError("duration", fmt.Sprintf("duration %d is not offered", input.Duration))
	}

	scheduledAt, err := time.ParseInLocation("2006-01-02 15:04", input.Date+" "+input.Slot, time.UTC)
	if err != nil {
		return nil, NewValidationError("scheduledAt", fmt.Sprintf("invalid date or slot: %v", err))
	}

	req := &models.SessionRequest{
		PatientID:   input.PatientID,
		TherapistID: therapist.ID,
		ScheduledAt: scheduledAt,
		Duration:    input.Duration,
		Currency:    therapist.Currency,
	}

	if hasPriorPaidSession(history, therapist.ID) {
		req.SessionFee = therapist.SessionRate
	} else {
		req.SessionFee = 0
		req.FreeTrial = true
	}
	return req, nil
}
