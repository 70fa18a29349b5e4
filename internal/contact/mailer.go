package contact

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

var ErrSMTPNotConfigured = errors.New("SMTP credentials not configured")

type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// Mailer sends submissions as plain-text email through an SMTP server.
type Mailer struct {
	cfg      SMTPConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg SMTPConfig) *Mailer {
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	return &Mailer{cfg: cfg, sendMail: smtp.SendMail}
}

func (m *Mailer) Send(ctx context.Context, s Submission) error {
	if m.cfg.User == "" || m.cfg.Pass == "" || m.cfg.To == "" {
		return ErrSMTPNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	err := m.sendMail(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{m.cfg.To}, m.compose(s))
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (m *Mailer) compose(s Submission) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", oneLine(s.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Submission %s
`, s.Name, s.Email, s.Message, s.ID)

	return []byte("To: " + m.cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.cfg.User + "\r\n" +
		"Reply-To: " + oneLine(s.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// oneLine strips CR and LF so visitor input cannot add headers.
func oneLine(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
