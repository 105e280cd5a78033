// Package mail はアカウント宛のテンプレートメール送信を提供します。
package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"market_backend/internal/platform/config"
)

// Sender delivers a single templated message. Implemented by SMTPSender in
// production and by mocks in tests.
type Sender interface {
	Send(to, subject, templateName string, data any) error
}

// SMTPSender sends mail through a plain SMTP relay with PLAIN auth.
type SMTPSender struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewSMTPSender はSMTPSenderの新しいインスタンスを生成します。
func NewSMTPSender(cfg config.SMTPConfig) (*SMTPSender, error) {
	tpl, err := template.New("mail").Parse(mailTemplates)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail templates: %w", err)
	}
	return &SMTPSender{cfg: cfg, templates: tpl}, nil
}

// Send renders the named template and delivers the message.
func (s *SMTPSender) Send(to, subject, templateName string, data any) error {
	body, err := s.Render(templateName, data)
	if err != nil {
		return err
	}

	msg := bytes.Buffer{}
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg.Bytes()); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// Render renders the named template with the given data.
func (s *SMTPSender) Render(templateName string, data any) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", templateName, err)
	}
	return buf.String(), nil
}
