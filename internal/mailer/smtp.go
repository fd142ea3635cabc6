// Package mailer delivers transactional mail over SMTP.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/truckhire/truckhire-server/internal/model"
)

var _ model.Mailer = (*SMTP)(nil)

// sendMail is a seam for testing smtp.SendMail.
var sendMail = smtp.SendMail

type Config struct {
	Host     string
	Port     int
	From     string
	Username string
	Password string
}

type SMTP struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTP builds a mailer for the given server. Auth is used only when a
// username is configured; plain relays stay unauthenticated.
func NewSMTP(conf Config) *SMTP {
	var auth smtp.Auth
	if conf.Username != "" {
		auth = smtp.PlainAuth("", conf.Username, conf.Password, conf.Host)
	}

	return &SMTP{
		addr: fmt.Sprintf("%s:%d", conf.Host, conf.Port),
		from: conf.From,
		auth: auth,
	}
}

// Send delivers a plain-text message to a single recipient. The context
// is honored up front only; net/smtp does not support cancellation
// mid-dialogue.
func (m *SMTP) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMessage(m.from, to, subject, body)

	if err := sendMail(m.addr, m.auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
