package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

type MailConfig struct {
	From        string
	Password    string
	SMTPHost    string
	SMTPAddress string
}

func (c MailConfig) Enabled() bool {
	return c.From != "" && c.SMTPAddress != ""
}

// RenderTemplate executes the HTML template at templatePath with data.
func RenderTemplate(templatePath string, data any) (string, error) {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("template parse error: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return body.String(), nil
}

func BuildMessage(from, subject, htmlBody string) []byte {
	return []byte(fmt.Sprintf(
		"From: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		from,
		subject,
		htmlBody,
	))
}

func SendEmail(cfg MailConfig, emailTo string, emailSubject string, templatePath string, data any) error {
	body, err := RenderTemplate(templatePath, data)
	if err != nil {
		return err
	}

	auth := smtp.PlainAuth("", cfg.From, cfg.Password, cfg.SMTPHost)
	message := BuildMessage(cfg.From, emailSubject, body)
	if err := smtp.SendMail(cfg.SMTPAddress, auth, cfg.From, []string{emailTo}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
