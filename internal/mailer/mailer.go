// Package mailer dispatches transactional mail over SMTP.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer is the outbound-mail capability the auth service depends on.
type Mailer interface {
	SendPasswordReset(to, link string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTP(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) SendPasswordReset(to, link string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset your password")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>A password reset was requested for your account.</p>
<p><a href="%s">Reset password</a></p>
<p>The link expires in one hour. If you did not request this, ignore this mail.</p>`, link))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending reset mail: %w", err)
	}
	return nil
}
