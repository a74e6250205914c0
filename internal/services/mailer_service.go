package services

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"text/template"

	"craftfolio/internal/common"
)

var contactMailTemplate = template.Must(template.New("contact").Parse(
	"From: {{.From}}\r\n" +
		"To: {{.To}}\r\n" +
		"Subject: {{.Subject}}\r\n" +
		"\r\n" +
		"Message from {{.Name}} <{{.ReplyTo}}>\r\n" +
		"\r\n" +
		"{{.Message}}\r\n"))

// MailerService relays contact-form messages to the portfolio owner.
type MailerService interface {
	SendContactMail(ctx context.Context, name, email, subject, message string) error
}

type smtpMailer struct {
	addr     string
	username string
	password string
	owner    string
}

// NewSMTPMailer sends through a plain SMTP relay. addr is host:port.
func NewSMTPMailer(addr, username, password, ownerEmail string) MailerService {
	return &smtpMailer{
		addr:     addr,
		username: username,
		password: password,
		owner:    ownerEmail,
	}
}

func (m *smtpMailer) SendContactMail(ctx context.Context, name, email, subject, message string) error {
	if err := common.ValidateRequiredString(email, "email"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(message, "message"); err != nil {
		return err
	}
	if subject == "" {
		subject = "Portfolio contact"
	}

	var body strings.Builder
	err := contactMailTemplate.Execute(&body, map[string]string{
		"From":    m.username,
		"To":      m.owner,
		"Subject": subject,
		"Name":    name,
		"ReplyTo": email,
		"Message": message,
	})
	if err != nil {
		return err
	}

	host := m.addr
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	auth := smtp.PlainAuth("", m.username, m.password, host)
	if err := smtp.SendMail(m.addr, auth, m.username, []string{m.owner}, []byte(body.String())); err != nil {
		return fmt.Errorf("%w: sending mail: %v", common.ErrUpstream, err)
	}
	return nil
}
