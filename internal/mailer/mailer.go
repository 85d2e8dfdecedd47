package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"canvaclone/api/config"
)

// Mailer wraps the SMTP transport. A nil *Mailer is a valid no-op sender,
// which is what New returns when no SMTP host is configured.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(cfg config.SMTPConfig) *Mailer {
	if cfg.Host == "" {
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.User,
	}
}

// SendWelcome sends the post-registration greeting. Callers treat failure
// as non-fatal; registration never blocks on mail delivery.
func (m *Mailer) SendWelcome(to, name string) error {
	if m == nil {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Welcome!")
	msg.SetBody("text/plain", fmt.Sprintf("Hi %s, your account is ready. Happy designing!", name))

	return m.dialer.DialAndSend(msg)
}
