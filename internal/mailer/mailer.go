package mailer

import (
	"fmt"
	"log/slog"

	"github.com/aeronautica/backend/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer dispatches transactional account email.
type Mailer interface {
	SendPasswordReset(to, resetURL string) error
}

// New returns an SMTP-backed mailer, or a log-only one when SMTP_HOST is not
// configured (local development).
func New(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		return &logMailer{}
	}
	return &smtpMailer{cfg: cfg}
}

type smtpMailer struct {
	cfg *config.Config
}

func (m *smtpMailer) SendPasswordReset(to, resetURL string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.EmailFrom)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password reset")
	msg.SetBody("text/plain", fmt.Sprintf(
		"You requested a password reset.\n\nOpen the link below to choose a new password:\n\n%s\n\nIf you did not request this, ignore this message.\n", resetURL))

	dialer := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

type logMailer struct{}

func (m *logMailer) SendPasswordReset(to, resetURL string) error {
	slog.Info("password reset email (SMTP not configured)", "to", to, "url", resetURL)
	return nil
}
