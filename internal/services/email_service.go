package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/HariSeldon343/NexioSolution-sub000/internal/models"
)

// emailChannel delivers notification intents over SMTP.
type emailChannel struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailChannel(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) NotificationChannel {
	return &emailChannel{
		dialer: gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:   fromEmail,
	}
}

func (c *emailChannel) Name() string { return "email" }

func (c *emailChannel) Deliver(intent models.NotificationIntent, recipient *models.User) error {
	if !recipient.NotifyByEmail || recipient.Email == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", recipient.Email)
	m.SetHeader("Subject", notificationSubject(intent.Kind))

	body := fmt.Sprintf(`
		<h3>%s</h3>
		<p>%s: <strong>%s</strong> (#%d)</p>
		<p>Open the calendar for details.</p>
	`, notificationSubject(intent.Kind), intent.SubjectType, intent.Subject, intent.SubjectID)
	m.SetBody("text/html", body)

	if err := c.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send notification email: %w", err)
	}
	return nil
}
