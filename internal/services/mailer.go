package services

import (
	"fmt"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/loftmebel/backend/internal/config"
)

// Mailer sends transactional mail over SMTP. With no host configured it logs
// the message instead, which keeps local development working without a
// mail account.
type Mailer struct {
	cfg config.EmailConfig
}

func NewMailer(cfg config.EmailConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendOTPCode mails the verification code. The call blocks and failures
// propagate to the request; there is no retry.
func (m *Mailer) SendOTPCode(to, code string) error {
	subject := "OTP code"
	return m.send(to, subject, code)
}

func (m *Mailer) send(to, subject, body string) error {
	if m.cfg.SMTPHost == "" {
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("SMTP not configured, mail logged instead of sent")
		return nil
	}

	auth := smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\n\r\n%s", to, subject, body))
	addr := fmt.Sprintf("%s:%s", m.cfg.SMTPHost, m.cfg.SMTPPort)

	return smtp.SendMail(addr, auth, m.cfg.FromEmail, []string{to}, msg)
}
