package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/patient-portal/internal/email"
	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	"github.com/jwalitptl/patient-portal/pkg/messaging"
	"github.com/jwalitptl/patient-portal/pkg/metrics"
)

type MailerConfig struct {
	PortalURL     string
	RetryAttempts int
	RetryDelay    time.Duration
}

// Mailer turns published notifications into emails for their recipients
type Mailer struct {
	broker  messaging.Broker
	users   repository.UserRepository
	sender  email.Service
	config  MailerConfig
	metrics *metrics.Metrics
}

func NewMailer(
	broker messaging.Broker,
	users repository.UserRepository,
	sender email.Service,
	config MailerConfig,
	metrics *metrics.Metrics,
) *Mailer {
	if config.RetryAttempts <= 0 {
		panic("RetryAttempts must be greater than 0")
	}
	if config.RetryDelay < 0 {
		panic("RetryDelay must not be negative")
	}

	return &Mailer{
		broker:  broker,
		users:   users,
		sender:  sender,
		config:  config,
		metrics: metrics,
	}
}

// Start consumes the notification channel until ctx is cancelled
func (w *Mailer) Start(ctx context.Context) error {
	msgs, err := w.broker.Subscribe(ctx, messaging.ChannelNotifications)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	log.Info().Str("channel", messaging.ChannelNotifications).Msg("starting notification mailer")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("shutting down notification mailer")
			return nil
		case raw, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := w.handle(ctx, raw); err != nil {
				log.Error().Err(err).Msg("failed to process notification")
			}
		}
	}
}

func (w *Mailer) handle(ctx context.Context, raw []byte) error {
	var msg messaging.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	if msg.Type != messaging.EventNotificationCreated {
		log.Debug().Str("type", msg.Type).Msg("ignoring message")
		return nil
	}

	var n model.Notification
	if err := json.Unmarshal(msg.Payload, &n); err != nil {
		return fmt.Errorf("failed to decode notification: %w", err)
	}

	user, err := w.users.GetByID(ctx, n.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn().Str("user_id", n.UserID.String()).Msg("recipient no longer exists")
			return nil
		}
		return fmt.Errorf("failed to load recipient: %w", err)
	}

	subject, body := email.NotificationEmail(user.Name, &n, w.config.PortalURL)
	err = retry(ctx, w.config.RetryAttempts, w.config.RetryDelay, func() error {
		return w.sender.Send(ctx, user.Email, subject, body)
	})
	if err != nil {
		w.metrics.EmailsFailed.Inc()
		return err
	}

	w.metrics.EmailsSent.Inc()
	log.Info().
		Str("notification_id", n.ID.String()).
		Str("type", string(n.Type)).
		Msg("notification email sent")
	return nil
}

func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return err
}
