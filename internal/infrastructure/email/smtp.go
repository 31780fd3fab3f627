package email

import (
	"fmt"
	"html"
	"time"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

// SendContactNotification forwards a contact-form submission to the site
// owner. The visitor's address goes into Reply-To so the owner can answer
// directly from their mail client.
func (s *SMTPEmailService) SendContactNotification(to, name, fromEmail, subject, body string, sentAt time.Time) error {
	mailSubject := fmt.Sprintf("[Contact] %s", subject)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>New contact form message</h2>
			<p><strong>From:</strong> %s &lt;%s&gt;</p>
			<p><strong>Subject:</strong> %s</p>
			<p><strong>Received:</strong> %s</p>
			<hr>
			<p>%s</p>
		</body>
		</html>
	`, html.EscapeString(name), html.EscapeString(fromEmail), html.EscapeString(subject),
		sentAt.Format(time.RFC1123), html.EscapeString(body))

	plainBody := fmt.Sprintf(`
New contact form message

From: %s <%s>
Subject: %s
Received: %s

%s
	`, name, fromEmail, subject, sentAt.Format(time.RFC1123), body)

	return s.sendEmail(to, fromEmail, mailSubject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, replyTo, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to)
	if replyTo != "" {
		m.SetHeader("Reply-To", replyTo)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
