package notification

import "context"

// NotificationService defines methods for sending FCM pushes to the two
// session participants.
type NotificationService interface {
	SendPatientPush(ctx context.Context, patientID, title, body string, data map[string]string) error
	SendTherapistPush(ctx context.Context, therapistID, title, body string, data map[string]string) error
}
