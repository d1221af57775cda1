// Package email implements the mail-delivery collaborator. The engine treats
// delivery as fire-and-forget; this package only reports the failure.
package email

import (
	"fmt"
	"net/smtp"

	"github.com/domodwyer/mailyak/v3"
)

// SMTPNotifier sends plain-text mail through an SMTP relay.
type SMTPNotifier struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPNotifier creates an SMTPNotifier. Auth is skipped when username is
// empty, which is common for local relays.
func NewSMTPNotifier(host string, port int, username, password, from string) *SMTPNotifier {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPNotifier{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
		auth: auth,
	}
}

// Send delivers one message to one recipient.
func (n *SMTPNotifier) Send(recipient, subject, body string) error {
	mail := mailyak.New(n.addr, n.auth)
	mail.From(n.from)
	mail.To(recipient)
	mail.Subject(subject)
	mail.Plain().Set(body)
	if err := mail.Send(); err != nil {
		return fmt.Errorf("send mail to %s: %w", recipient, err)
	}
	return nil
}
