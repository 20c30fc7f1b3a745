package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sessionRepo "mindhaven/database/repository/session"
	therapistRepo "mindhaven/database/repository/therapist"
	"mindhaven/models"
	"mindhaven/services/notification"
	"mindhaven/services/tasks"
	"mindhaven/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const calendarCacheTTL = time.Minute

// DefaultSessionService implements SessionService.
type DefaultSessionService struct {
	Repo            sessionRepo.SessionRepository
	TherapistRepo   therapistRepo.TherapistRepository
	PaymentHandler  PaymentHandler
	NotificationSvc notification.NotificationService
	Reminders       tasks.ReminderScheduler
	CacheClient     *redis.Client
	Clock           utils.Clock
}

func (svc *DefaultSessionService) now() time.Time {
	if svc.Clock != nil {
		return svc.Clock.Now()
	}
	return time.Now()
}

// GetTherapistCalendar resolves per-date bookability and slots. Results are
// cached briefly: the calendar changes only when availability is edited or a
// session lands, and a stale minute is caught again by booking validation.
func (svc *DefaultSessionService) GetTherapistCalendar(ctx context.Context, therapistID string, from time.Time, days int) (*models.TherapistCalendar, error) {
	if days <= 0 || days > 90 {
		return nil, NewValidationError("days", "days must be between 1 and 90")
	}

	cacheKey := fmt.Sprintf("calendar:%s:%s:%d", therapistID, from.Format("2006-01-02"), days)
	if svc.CacheClient != nil {
		if data, err := svc.CacheClient.Get(ctx, cacheKey).Result(); err == nil {
			var cached models.TherapistCalendar
			if json.Unmarshal([]byte(data), &cached) == nil {
				return &cached, nil
			}
		}
	}

	therapist, err := svc.TherapistRepo.GetByID(ctx, therapistID)
	if err != nil {
		return nil, fmt.Errorf("failed to load therapist: %w", err)
	}

	windowStart := dayOf(from)
	windowEnd := windowStart.AddDate(0, 0, days)
	booked, err := svc.Repo.GetBookedDates(ctx, therapistID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked dates: %w", err)
	}

	calendar := &models.TherapistCalendar{
		TherapistID: therapistID,
		Days:        BuildCalendar(from, days, therapist.Availability, booked, svc.now()),
	}

	if svc.CacheClient != nil {
		if data, err := json.Marshal(calendar); err == nil {
			svc.CacheClient.Set(ctx, cacheKey, data, calendarCacheTTL)
		}
	}
	return calendar, nil
}

// BookSession runs the negotiation, confirms payment, and persists the new
// session in pending. The chosen date and slot are re-validated against the
// live calendar so a stale client view cannot double-book a date.
func (svc *DefaultSessionService) BookSession(ctx context.Context, input BookingInput) (*models.Session, error) {
	logger := utils.GetLogger()

	therapist, err := svc.TherapistRepo.GetByID(ctx, input.TherapistID)
	if err != nil {
		return nil, ErrTherapistUnresolved
	}

	history, err := svc.Repo.List(ctx, models.SessionFilter{
		PatientID:   input.PatientID,
		TherapistID: input.TherapistID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load session history: %w", err)
	}

	req, err := BuildSessionRequest(input, therapist, history)
	if err != nil {
		return nil, err
	}

	if err := svc.checkSlotOpen(ctx, therapist, req.ScheduledAt, input.Slot); err != nil {
		return nil, err
	}

	now := svc.now()
	newSession := &models.Session{
		ID:            uuid.New().String(),
		PatientID:     req.PatientID,
		TherapistID:   req.TherapistID,
		ScheduledAt:   req.ScheduledAt,
		Duration:      req.Duration,
		SessionFee:    req.SessionFee,
		Currency:      req.Currency,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	receipt, err := svc.PaymentHandler.ConfirmPayment(ctx, models.PaymentRequest{
		PatientID:   req.PatientID,
		SessionID:   newSession.ID,
		Amount:      req.SessionFee,
		Currency:    req.Currency,
		Method:      "card",
		Description: fmt.Sprintf("Therapy session on %s", req.ScheduledAt.Format("2006-01-02 15:04")),
	})
	if err != nil {
		return nil, fmt.Errorf("payment failed: %w", err)
	}
	if receipt.Status == models.PaymentPaid {
		newSession.PaymentStatus = models.PaymentPaid
	}

	if err := svc.Repo.Create(ctx, newSession); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	svc.notifyTherapist(ctx, newSession, "New session request",
		fmt.Sprintf("A patient requested a session on %s", newSession.ScheduledAt.Format("Jan 2 at 15:04")))

	logger.Info("session booked",
		zap.String("sessionID", newSession.ID),
		zap.String("therapistID", newSession.TherapistID),
		zap.Bool("freeTrial", newSession.IsFreeTrial()))
	return newSession, nil
}

// checkSlotOpen re-runs the calendar gate and slot resolution for the chosen
// moment against current data.
func (svc *DefaultSessionService) checkSlotOpen(ctx context.Context, therapist *models.Therapist, scheduledAt time.Time, slot string) error {
	day := dayOf(scheduledAt)
	booked, err := svc.Repo.GetBookedDates(ctx, therapist.ID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return fmt.Errorf("failed to load booked dates: %w", err)
	}
	if !IsDateBookable(scheduledAt, therapist.Availability, booked, svc.now()) {
		return NewValidationError("date", "this date is no longer available")
	}
	for _, s := range ResolveDaySlots(scheduledAt, therapist.Availability) {
		if s == slot {
			return nil
		}
	}
	return NewValidationError("slot", fmt.Sprintf("slot %s is not offered on this date", slot))
}

func (svc *DefaultSessionService) GetSession(ctx context.Context, id string) (*models.Session, error) {
	return svc.Repo.GetByID(ctx, id)
}

func (svc *DefaultSessionService) ListSessions(ctx context.Context, filter models.SessionFilter) ([]models.Session, error) {
	return svc.Repo.List(ctx, filter)
}

// transition loads the session, applies fn, and persists the returned copy.
// fn is pure; nothing is written when a guard fails, so a retried rejected
// transition yields the same error rather than a corrupted state.
func (svc *DefaultSessionService) transition(ctx context.Context, id string, fn func(models.Session, time.Time) (models.Session, error)) (*models.Session, error) {
	current, err := svc.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := fn(*current, svc.now())
	if err != nil {
		return nil, err
	}

	if err := svc.Repo.Update(ctx, &next); err != nil {
		return nil, fmt.Errorf("failed to persist transition: %w", err)
	}
	return &next, nil
}

func (svc *DefaultSessionService) AcceptSession(ctx context.Context, id string, actor Actor, meetingLink, notes string) (*models.Session, error) {
	s, err := svc.transition(ctx, id, func(cur models.Session, now time.Time) (models.Session, error) {
		return Accept(cur, actor, meetingLink, notes, now)
	})
	if err != nil {
		return nil, err
	}

	svc.notifyPatient(ctx, s, "Session confirmed",
		fmt.Sprintf("Your session on %s was confirmed", s.ScheduledAt.Format("Jan 2 at 15:04")))
	svc.scheduleReminder(ctx, s)
	return s, nil
}

func (svc *DefaultSessionService) RejectSession(ctx context.Context, id string, actor Actor, reason string) (*models.Session, error) {
	s, err := svc.transition(ctx, id, func(cur models.Session, now time.Time) (models.Session, error) {
		return Reject(cur, actor, reason, now)
	})
	if err != nil {
		return nil, err
	}

	svc.notifyPatient(ctx, s, "Session request declined",
		"The therapist could not take your session request")
	return s, nil
}

func (svc *DefaultSessionService) CancelSession(ctx context.Context, id string, actor Actor, reason string) (*models.Session, error) {
	s, err := svc.transition(ctx, id, func(cur models.Session, now time.Time) (models.Session, error) {
		return Cancel(cur, actor, reason, now)
	})
	if err != nil {
		return nil, err
	}

	svc.notifyTherapist(ctx, s, "Session cancelled",
		fmt.Sprintf("The session on %s was cancelled by the patient", s.ScheduledAt.Format("Jan 2 at 15:04")))
	svc.cancelReminder(ctx, s.ID)
	return s, nil
}

func (svc *DefaultSessionService) CompleteSession(ctx context.Context, id string, actor Actor) (*models.Session, error) {
	return svc.transition(ctx, id, func(cur models.Session, now time.Time) (models.Session, error) {
		return Complete(cur, actor, now)
	})
}

func (svc *DefaultSessionService) MarkSessionNoShow(ctx context.Context, id string, actor Actor) (*models.Session, error) {
	return svc.transition(ctx, id, func(cur models.Session, now time.Time) (models.Session, error) {
		return MarkNoShow(cur, actor, now)
	})
}

func (svc *DefaultSessionService) UpdateSessionNotes(ctx context.Context, id string, actor Actor, notes string) (*models.Session, error) {
	return svc.transition(ctx, id, func(cur models.Session, now time.Time) (models.Session, error) {
		return UpdateNotes(cur, actor, notes, now)
	})
}

// Notifications and reminders are best-effort: a push failure must never roll
// back a persisted transition.

func (svc *DefaultSessionService) notifyPatient(ctx context.Context, s *models.Session, title, body string) {
	if svc.NotificationSvc == nil {
		return
	}
	if err := svc.NotificationSvc.SendPatientPush(ctx, s.PatientID, title, body, map[string]string{"sessionId": s.ID}); err != nil {
		utils.GetLogger().Warn("patient push failed", zap.String("sessionID", s.ID), zap.Error(err))
	}
}

func (svc *DefaultSessionService) notifyTherapist(ctx context.Context, s *models.Session, title, body string) {
	if svc.NotificationSvc == nil {
		return
	}
	if err := svc.NotificationSvc.SendTherapistPush(ctx, s.TherapistID, title, body, map[string]string{"sessionId": s.ID}); err != nil {
		utils.GetLogger().Warn("therapist push failed", zap.String("sessionID", s.ID), zap.Error(err))
	}
}

func (svc *DefaultSessionService) scheduleReminder(ctx context.Context, s *models.Session) {
	if svc.Reminders == nil {
		return
	}
	fireAt := s.ScheduledAt.Add(-JoinWindow)
	payload := models.ReminderPayload{
		ReminderID:  uuid.New().String(),
		SessionID:   s.ID,
		PatientID:   s.PatientID,
		TherapistID: s.TherapistID,
		Title:       "Your session starts soon",
		Body:        fmt.Sprintf("The meeting opens at %s", fireAt.Format("15:04")),
		FireDate:    fireAt.Format(time.RFC3339),
	}
	if err := svc.Reminders.Schedule(ctx, payload, fireAt); err != nil {
		utils.GetLogger().Warn("failed to schedule reminder", zap.String("sessionID", s.ID), zap.Error(err))
	}
}

func (svc *DefaultSessionService) cancelReminder(ctx context.Context, sessionID string) {
	if svc.Reminders == nil {
		return
	}
	if err := svc.Reminders.Cancel(ctx, sessionID); err != nil {
		utils.GetLogger().Warn("failed to cancel reminder", zap.String("sessionID", sessionID), zap.Error(err))
	}
}
