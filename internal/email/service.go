package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/patient-portal/internal/model"
)

type Service interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

// NewService returns an SMTP sender, or a sender that only logs when no host is configured
func NewService(cfg SMTPConfig) Service {
	if cfg.Host == "" {
		return logService{}
	}
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

type logService struct{}

func (logService) Send(ctx context.Context, to, subject, body string) error {
	log.Info().Str("to", to).Str("subject", subject).Msg("smtp not configured, email not sent")
	return nil
}

// NotificationEmail renders the subject and plain text body for a notification
func NotificationEmail(name string, n *model.Notification, baseURL string) (string, string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Hallo %s,\n\n", name)
	b.WriteString(n.Message)
	b.WriteString("\n")
	if n.Link != nil && *n.Link != "" {
		fmt.Fprintf(&b, "\n%s%s\n", strings.TrimRight(baseURL, "/"), *n.Link)
	}
	b.WriteString("\nIhr Telemedizin-Portal\n")
	b.WriteString("Dies ist eine Lern-Demo und kein echtes medizinisches System.\n")
	return "[Telemedizin] " + n.Title, b.String()
}
