package notifications

import (
	"log"

	"ekinerja/config"

	gomail "gopkg.in/gomail.v2"
)

// Mailer sends notification emails fire-and-forget. Sending happens on a
// goroutine and is never awaited by request handling; failures are logged
// and dropped. A nil Mailer is safe to call.
type Mailer struct {
	dialer    *gomail.Dialer
	from      string
	recipient string
}

// NewMailer returns nil when SMTP is not configured, which disables
// notifications without any caller changes.
func NewMailer(cfg *config.Config) *Mailer {
	if !cfg.NotificationsEnabled() {
		return nil
	}

	return &Mailer{
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:      cfg.SMTPFrom,
		recipient: cfg.NotifyRecipient,
	}
}

func (m *Mailer) Notify(subject, body string) {
	if m == nil {
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	go func() {
		if err := m.dialer.DialAndSend(msg); err != nil {
			log.Printf("notification send failed: %v", err)
		}
	}()
}
