package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	"github.com/jwalitptl/patient-portal/internal/service/access"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
	"github.com/jwalitptl/patient-portal/pkg/messaging"
	"github.com/jwalitptl/patient-portal/pkg/metrics"
	"github.com/jwalitptl/patient-portal/pkg/validator"
)

// Notifier records a notification for a user as a side effect of another
// operation. Failures are logged and never returned.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, typ model.NotificationType, title, message string, link *string)
}

type Service interface {
	Notifier
	Create(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error)
	List(ctx context.Context, caller *access.Caller) ([]model.Notification, error)
	UnreadCount(ctx context.Context, caller *access.Caller) (*model.UnreadCount, error)
	MarkRead(ctx context.Context, caller *access.Caller, id uuid.UUID) error
	MarkAllRead(ctx context.Context, caller *access.Caller) error
}

type service struct {
	repo      repository.NotificationRepository
	users     repository.UserRepository
	broker    messaging.Broker
	validator validator.Validator
	metrics   *metrics.Metrics
}

func NewService(repo repository.NotificationRepository, users repository.UserRepository, broker messaging.Broker, v validator.Validator, m *metrics.Metrics) Service {
	return &service{
		repo:      repo,
		users:     users,
		broker:    broker,
		validator: v,
		metrics:   m,
	}
}

// Create stores a notification for any user. It is meant for internal and system use.
func (s *service) Create(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	typ := model.NotificationSystem
	if req.Type != "" {
		typ = model.NotificationType(req.Type)
		if !typ.Valid() {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid notification type %q", req.Type))
		}
	}

	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		return nil, apperrors.Internal(err)
	}

	n := &model.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    typ,
		Link:    req.Link,
	}
	if err := s.store(ctx, n); err != nil {
		return nil, apperrors.Internal(err)
	}
	return n, nil
}

func (s *service) Notify(ctx context.Context, userID uuid.UUID, typ model.NotificationType, title, message string, link *string) {
	n := &model.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    typ,
		Link:    link,
	}
	if err := s.store(ctx, n); err != nil {
		log.Warn().Err(err).
			Str("user_id", userID.String()).
			Str("type", string(typ)).
			Msg("failed to record notification")
	}
}

// store persists n and publishes it for out-of-band delivery
func (s *service) store(ctx context.Context, n *model.Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	s.metrics.NotificationsCreated.WithLabelValues(string(n.Type)).Inc()

	msg, err := messaging.NewMessage(messaging.EventNotificationCreated, n)
	if err == nil {
		err = s.broker.Publish(ctx, messaging.ChannelNotifications, msg)
	}
	if err != nil {
		log.Warn().Err(err).Str("notification_id", n.ID.String()).Msg("failed to publish notification")
	}
	return nil
}

func (s *service) List(ctx context.Context, caller *access.Caller) ([]model.Notification, error) {
	if err := access.Authenticated(caller); err != nil {
		return nil, err
	}
	list, err := s.repo.ListByUser(ctx, caller.User.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return list, nil
}

func (s *service) UnreadCount(ctx context.Context, caller *access.Caller) (*model.UnreadCount, error) {
	if err := access.Authenticated(caller); err != nil {
		return nil, err
	}
	count, err := s.repo.CountUnread(ctx, caller.User.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &model.UnreadCount{Count: count}, nil
}

func (s *service) MarkRead(ctx context.Context, caller *access.Caller, id uuid.UUID) error {
	if err := access.Authenticated(caller); err != nil {
		return err
	}
	err := s.repo.MarkRead(ctx, id, caller.User.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("Notification")
	}
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, caller *access.Caller) error {
	if err := access.Authenticated(caller); err != nil {
		return err
	}
	updated, err := s.repo.MarkAllRead(ctx, caller.User.ID)
	if err != nil {
		return apperrors.Internal(err)
	}
	log.Debug().Int64("count", updated).Str("user_id", caller.User.ID.String()).Msg("notifications marked read")
	return nil
}
