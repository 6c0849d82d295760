package mailer

import (
	"fmt"
	"time"

	"github.com/BivekiGroup/bivekinew-sub000/internal/config"
	"gopkg.in/gomail.v2"
)

// SMTPMailer delivers one-time login codes over SMTP.
type SMTPMailer struct {
	cfg    config.EmailConfig
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg config.EmailConfig) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password)

	return &SMTPMailer{
		cfg:    cfg,
		dialer: dialer,
	}
}

func (m *SMTPMailer) SendLoginCode(to, code string, expiresAt time.Time) error {
	minutes := int(time.Until(expiresAt).Round(time.Minute).Minutes())

	subject := "Your login code"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Your login code</h2>
			<p style="font-size:28px;letter-spacing:6px;font-weight:bold">%s</p>
			<p>Enter this code to sign in to your account. It expires in %d minutes and can be used once.</p>
			<p>If you didn't request a code, you can ignore this email.</p>
		</body>
		</html>
	`, code, minutes)

	plainBody := fmt.Sprintf(`
Your login code: %s

Enter this code to sign in to your account. It expires in %d minutes and can be used once.

If you didn't request a code, you can ignore this email.
	`, code, minutes)

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.From, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plainBody)
	msg.AddAlternative("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
