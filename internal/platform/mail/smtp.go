// Package mail provides the SMTP transactional mail sender.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	identityusecase "company_backend/internal/feature/identity/usecase"
)

// SMTPSender delivers mail through a plain SMTP relay.
type SMTPSender struct {
	host string
	port string
	auth smtp.Auth
	from string
}

// Compile-time check to ensure SMTPSender implements MailSender.
var _ identityusecase.MailSender = (*SMTPSender)(nil)

// NewSMTPSender creates a new SMTPSender. user may be empty for relays that
// accept unauthenticated mail (local dev relays).
func NewSMTPSender(host, port, user, pass, from string) *SMTPSender {
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, pass, host)
	}
	return &SMTPSender{host: host, port: port, auth: auth, from: from}
}

// Send delivers a single plain-text message.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := strings.Join([]string{
		"From: " + s.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, s.auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
