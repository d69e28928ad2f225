// Package email sends admin and report email.
package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
)

// ErrNoContent is returned for messages with neither text nor HTML body.
var ErrNoContent = errors.New("email: message has no content")

// Message is a single outbound email to one recipient.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Validate checks the recipient address and content.
func (m Message) Validate() error {
	if _, err := mail.ParseAddress(m.To); err != nil {
		return fmt.Errorf("email: invalid recipient %q: %w", m.To, err)
	}
	if strings.TrimSpace(m.Subject) == "" {
		return errors.New("email: subject is required")
	}
	if strings.TrimSpace(m.Text) == "" && strings.TrimSpace(m.HTML) == "" {
		return ErrNoContent
	}
	return nil
}

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Result is the outcome for one recipient.
type Result struct {
	Recipient string `json:"recipient"`
	Sent      bool   `json:"sent"`
	Error     string `json:"error,omitempty"`
}

// SendEach sends the same content to every recipient independently; one
// failure does not stop the others.
func SendEach(ctx context.Context, sender Sender, logger *slog.Logger, recipients []string, subject, text, html string) []Result {
	results := make([]Result, 0, len(recipients))
	for _, to := range recipients {
		msg := Message{To: to, Subject: subject, Text: text, HTML: html}
		err := msg.Validate()
		if err == nil {
			err = sender.Send(ctx, msg)
		}
		if err != nil {
			logging.Warn(logger, "email send failed",
				slog.String(logging.FieldRecipient, to),
				slog.Any(logging.FieldError, err),
			)
			results = append(results, Result{Recipient: to, Error: err.Error()})
			continue
		}
		results = append(results, Result{Recipient: to, Sent: true})
	}
	return results
}

// CountSent returns how many results succeeded.
func CountSent(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Sent {
			n++
		}
	}
	return n
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender constructs a LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	logging.Info(s.logger, "email (log sender)",
		slog.String(logging.FieldRecipient, msg.To),
		slog.String("subject", msg.Subject),
		slog.Int("text_bytes", len(msg.Text)),
		slog.Int("html_bytes", len(msg.HTML)),
	)
	return nil
}
