package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"os"
)

// SMTPSender delivers notifications as HTML email over SMTP.
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTPSenderFromEnv builds an SMTPSender from SMTP_HOST, SMTP_PORT,
// SMTP_USER, SMTP_PASS and SMTP_FROM. Returns an error naming the first
// missing variable so the caller can fall back to log-only delivery.
func NewSMTPSenderFromEnv() (*SMTPSender, error) {
	s := &SMTPSender{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASS"),
		from:     os.Getenv("SMTP_FROM"),
	}
	switch {
	case s.host == "":
		return nil, fmt.Errorf("SMTP_HOST not set")
	case s.port == "":
		return nil, fmt.Errorf("SMTP_PORT not set")
	case s.from == "":
		return nil, fmt.Errorf("SMTP_FROM not set")
	}
	return s, nil
}

// Send renders and emails the message. The context deadline is advisory
// only; net/smtp has no context support, so a hung server is bounded by
// the dispatcher's goroutine, not by cancellation.
func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	subject, body, err := Render(msg)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	addr := s.host + ":" + s.port
	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	data := []byte(
		"From: " + s.from + "\r\n" +
			"To: " + msg.To + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" +
			body,
	)

	if err := smtp.SendMail(addr, auth, s.from, []string{msg.To}, data); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// LogSender writes notifications to the log instead of delivering them.
// Used when SMTP is not configured, so every environment still exercises
// the dispatch path.
type LogSender struct{}

// Send logs the rendered message.
func (LogSender) Send(_ context.Context, msg *Message) error {
	subject, _, err := Render(msg)
	if err != nil {
		return err
	}
	slog.Info("notification (log only)", "kind", msg.Kind, "to", msg.To, "subject", subject)
	return nil
}
