// Package mailer is the outbound notification channel. Delivery is
// best-effort: callers decide whether a send failure matters.
package mailer

import (
	"context"
	"log/slog"

	"gopkg.in/gomail.v2"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// SMTPMailer sends through a plain SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}

	return m.dialer.DialAndSend(msg)
}

// NoopMailer logs instead of sending. Used when SMTP is not configured
// so local setups still work end to end.
type NoopMailer struct{}

func (NoopMailer) Send(_ context.Context, to, subject, _, _ string) error {
	slog.Info("email delivery skipped (no SMTP configured)", "to", to, "subject", subject)
	return nil
}
