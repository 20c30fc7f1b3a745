package notification

import (
	"context"
	"fmt"

	therapistRepo "mindhaven/database/repository/therapist"
	userRepo "mindhaven/database/repository/user"
	"mindhaven/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	users      userRepo.UserRepository
	therapists therapistRepo.TherapistRepository
}

func NewDefaultNotificationService(
	users userRepo.UserRepository,
	therapists therapistRepo.TherapistRepository,
) (*DefaultNotificationService, error) {
	if users == nil || therapists == nil {
		return nil, fmt.Errorf("notification service initialization error: user or therapist repository is nil")
	}
	return &DefaultNotificationService{users: users, therapists: therapists}, nil
}

// SendPatientPush looks up a patient's FCM token and sends a push.
func (s *DefaultNotificationService) SendPatientPush(
	ctx context.Context,
	patientID, title, body string,
	data map[string]string,
) error {
	u, err := s.users.GetByID(ctx, patientID)
	if err != nil {
		return fmt.Errorf("SendPatientPush: could not find patient %s: %w", patientID, err)
	}
	if u.FCMToken == "" {
		return fmt.Errorf("SendPatientPush: patient %s has no FCM token", patientID)
	}
	return send(ctx, u.FCMToken, utils.RolePatient, title, body, data)
}

// SendTherapistPush looks up a therapist's FCM token and sends a push.
func (s *DefaultNotificationService) SendTherapistPush(
	ctx context.Context,
	therapistID, title, body string,
	data map[string]string,
) error {
	t, err := s.therapists.GetByID(ctx, therapistID)
	if err != nil {
		return fmt.Errorf("SendTherapistPush: could not find therapist %s: %w", therapistID, err)
	}
	if t.FCMToken == "" {
		return fmt.Errorf("SendTherapistPush: therapist %s has no FCM token", therapistID)
	}
	return send(ctx, t.FCMToken, utils.RoleTherapist, title, body, data)
}

func send(ctx context.Context, token, role, title, body string, data map[string]string) error {
	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = role
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	response, err := utils.FCMClient.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	zap.L().Debug("push sent", zap.String("response", response))
	return nil
}
