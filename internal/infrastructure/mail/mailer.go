package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/aiagencydirectory/api/internal/config"
)

// SMTPMailer implements the admin invite mailer over plain SMTP.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer creates a mailer from the SMTP relay settings.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendInvite mails freshly generated credentials to an invited account.
func (m *SMTPMailer) SendInvite(ctx context.Context, email, username, password string) error {
	if m.cfg.Host == "" {
		return fmt.Errorf("smtp relay not configured")
	}

	subject := "Your AI Agency Directory account"
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\n"+
			"An account has been created for you on AI Agency Directory.\r\n\r\n"+
			"Login: %s\r\nTemporary password: %s\r\n\r\n"+
			"Please sign in and change your password.\r\n",
		username, email, password,
	)
	message := []byte(fmt.Sprintf(
		"To: %s\r\nFrom: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		email, m.cfg.From, subject, body,
	))

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{email}, message); err != nil {
		return fmt.Errorf("send invite mail: %w", err)
	}
	return nil
}
