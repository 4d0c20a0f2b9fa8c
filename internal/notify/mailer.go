// Package notify implements the outbound notification gateway.
// All notifications are best-effort: callers log failures and move on, so a
// broken mail server can never block a check-in or a registration.
package notify

import (
	"fmt"
	"time"

	gomail "gopkg.in/gomail.v2"

	"github.com/dogukancykrn/ziyaretci-takip-api/internal/domain"
)

// SMTPConfig holds the connection settings for the SMTP mailer.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
	// NotifyEmail receives the new-visitor notifications.
	NotifyEmail string
}

// Mailer sends notification emails over SMTP via gomail.
type Mailer struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

// NewMailer constructs a Mailer from the given SMTP settings.
func NewMailer(cfg SMTPConfig) *Mailer {
	return &Mailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
	}
}

// VisitorCheckedIn emails the configured notification address about a new
// check-in.
func (m *Mailer) VisitorCheckedIn(v domain.Visitor) error {
	body := fmt.Sprintf(`
		<html><body>
		<h2>New visitor check-in</h2>
		<p><b>Name:</b> %s</p>
		<p><b>TC number:</b> %s</p>
		<p><b>Reason:</b> %s</p>
		<p><b>Entered at:</b> %s</p>
		<p>This is an automated notification.</p>
		</body></html>`,
		v.FullName, v.TcNumber, v.VisitReason, v.EnteredAt.Format(time.RFC3339))

	return m.send(m.cfg.NotifyEmail, "New visitor check-in", body)
}

// AdminRegistered emails the branch manager about a new admin account.
func (m *Mailer) AdminRegistered(a domain.Admin, managerEmail string) error {
	body := fmt.Sprintf(`
		<html><body>
		<h2>New admin registration</h2>
		<p><b>Name:</b> %s</p>
		<p><b>Email:</b> %s</p>
		<p><b>Registered at:</b> %s</p>
		<p>This is an automated notification.</p>
		</body></html>`,
		a.FullName(), a.Email, a.CreatedAt.Format(time.RFC3339))

	return m.send(managerEmail, "New admin registration", body)
}

func (m *Mailer) send(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("notify.Mailer: send to %s: %w", to, err)
	}
	return nil
}

// Noop is the notifier used when SMTP is not configured. It silently
// accepts every notification.
type Noop struct{}

// VisitorCheckedIn does nothing.
func (Noop) VisitorCheckedIn(domain.Visitor) error { return nil }

// AdminRegistered does nothing.
func (Noop) AdminRegistered(domain.Admin, string) error { return nil }
