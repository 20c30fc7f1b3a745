package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"mindhaven/config"
	"mindhaven/models"
	"mindhaven/services/notification"
	"mindhaven/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSessionReminder, handleReminderTask(notifSvc))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleReminderTask pushes the reminder to both participants. A failure for
// one side does not suppress the other; the worst error is returned so asynq
// can retry.
func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		data := map[string]string{
			"sessionId": p.SessionID,
			"fireDate":  p.FireDate,
		}

		patientErr := notifSvc.SendPatientPush(ctx, p.PatientID, p.Title, p.Body, data)
		if patientErr != nil {
			log.Printf("[ReminderHandler] patient push failed for session %s: %v", p.SessionID, patientErr)
		}
		therapistErr := notifSvc.SendTherapistPush(ctx, p.TherapistID, p.Title, p.Body, data)
		if therapistErr != nil {
			log.Printf("[ReminderHandler] therapist push failed for session %s: %v", p.SessionID, therapistErr)
		}

		if patientErr != nil {
			return patientErr
		}
		return therapistErr
	}
}
