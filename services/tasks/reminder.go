package tasks

import (
	"context"
	"encoding/json"
	"time"

	"mindhaven/config"
	"mindhaven/models"

	"github.com/hibiken/asynq"
)

const TypeSessionReminder = "session:reminder"

// NewSessionReminderTask builds the asynq task for a session reminder fired
// when the join window opens.
func NewSessionReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSessionReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + payload.SessionID),
	}
	return task, opts, nil
}

// ReminderScheduler enqueues and revokes session reminders.
type ReminderScheduler interface {
	Schedule(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error
	Cancel(ctx context.Context, sessionID string) error
}

// AsynqReminderScheduler is the production scheduler backed by the reminder
// queue Redis DB.
type AsynqReminderScheduler struct {
	client    *asynq.Client
	inspector *asynq.Inspector
}

func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
	return &AsynqReminderScheduler{
		client:    asynq.NewClient(redisOpts),
		inspector: asynq.NewInspector(redisOpts),
	}
}

func (s *AsynqReminderScheduler) Schedule(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewSessionReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	_, err = s.client.EnqueueContext(ctx, task, opts...)
	return err
}

// Cancel drops a scheduled reminder, e.g. when the session is cancelled
// before it fires. A reminder that already ran is not an error.
func (s *AsynqReminderScheduler) Cancel(ctx context.Context, sessionID string) error {
	err := s.inspector.DeleteTask("default", "reminder:"+sessionID)
	if err == asynq.ErrTaskNotFound {
		return nil
	}
	return err
}
