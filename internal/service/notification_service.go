package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/faikerkan/QuailtyHUB/internal/dto"
	"github.com/faikerkan/QuailtyHUB/internal/models"
	"github.com/faikerkan/QuailtyHUB/internal/repository"
)

// ErrNotificationNotFound indicates a notification could not be found.
var ErrNotificationNotFound = errors.New("notification not found")

// evaluationEvent is the message published to the bus when a call
// receives an evaluation.
type evaluationEvent struct {
	EvaluationID uint      `json:"evaluation_id"`
	CallID       uint      `json:"call_id"`
	AgentID      uint      `json:"agent_id"`
	EvaluatorID  uint      `json:"evaluator_id"`
	TotalScore   string    `json:"total_score"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// NotificationService records in-app notifications and fans
// evaluation events out over NATS.
type NotificationService interface {
	EvaluationCreated(ctx context.Context, evaluation models.Evaluation)
	ListForUser(ctx context.Context, userID uint, unreadOnly bool) ([]dto.NotificationResponse, error)
	MarkRead(ctx context.Context, id, userID uint) error
}

type notificationService struct {
	notifications repository.NotificationRepository
	bus           *nats.Conn
	subject       string
	logger        zerolog.Logger
	now           func() time.Time
}

// NewNotificationService constructs a NotificationService. The NATS
// connection may be nil; fan-out then degrades to stored
// notifications only.
func NewNotificationService(notifications repository.NotificationRepository, bus *nats.Conn, subject string, logger zerolog.Logger) NotificationService {
	if subject == "" {
		subject = "qualityhub.evaluations"
	}
	return &notificationService{
		notifications: notifications,
		bus:           bus,
		subject:       subject,
		logger:        logger.With().Str("component", "notification_service").Logger(),
		now:           time.Now,
	}
}

// EvaluationCreated stores a notification for the scored agent and
// publishes the event. Failures are logged, never propagated: the
// evaluation itself is already persisted and must not be rolled back
// over a messaging hiccup.
func (s *notificationService) EvaluationCreated(ctx context.Context, evaluation models.Evaluation) {
	notification := models.Notification{
		UserID: evaluation.Call.AgentID,
		Kind:   models.NotificationKindEvaluationCreated,
		Message: fmt.Sprintf("Your call from %s was evaluated: %s/100",
			evaluation.Call.CallDate.Format("2006-01-02"), evaluation.TotalScore.StringFixed(2)),
	}

	if err := s.notifications.Create(ctx, &notification); err != nil {
		s.logger.Error().Err(err).Uint("agent_id", notification.UserID).Msg("failed to store notification")
	}

	if s.bus == nil {
		return
	}

	payload, err := json.Marshal(evaluationEvent{
		EvaluationID: evaluation.ID,
		CallID:       evaluation.CallID,
		AgentID:      evaluation.Call.AgentID,
		EvaluatorID:  evaluation.EvaluatorID,
		TotalScore:   evaluation.TotalScore.StringFixed(2),
		OccurredAt:   s.now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode evaluation event")
		return
	}

	if err := s.bus.Publish(s.subject, payload); err != nil {
		s.logger.Error().Err(err).Str("subject", s.subject).Msg("failed to publish evaluation event")
	}
}

func (s *notificationService) ListForUser(ctx context.Context, userID uint, unreadOnly bool) ([]dto.NotificationResponse, error) {
	notifications, err := s.notifications.ListForUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, err
	}
	return dto.NewNotificationResponseSlice(notifications), nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID uint) error {
	if err := s.notifications.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}
