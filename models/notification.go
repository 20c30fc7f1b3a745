package models

// ReminderPayload is the asynq task body for a session reminder, fired when
// the join window opens.
type ReminderPayload struct {
	ReminderID  string `json:"reminderId"`
	SessionID   string `json:"sessionId"`
	PatientID   string `json:"patientId"`
	TherapistID string `json:"therapistId"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	FireDate    string `json:"fireDate"` // RFC3339
}
