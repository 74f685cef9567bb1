package mailer

import (
	"context"

	"github.com/rs/zerolog"
)

// ConsoleMailer logs messages instead of delivering them. It is the
// transport used in development when no SendGrid API key is configured.
type ConsoleMailer struct {
	log zerolog.Logger
}

var _ Mailer = (*ConsoleMailer)(nil)

// NewConsoleMailer creates a console-backed Mailer.
func NewConsoleMailer(log zerolog.Logger) *ConsoleMailer {
	return &ConsoleMailer{log: log}
}

// Send logs the message and always succeeds.
func (m *ConsoleMailer) Send(_ context.Context, msg Message) error {
	m.log.Info().
		Str("to", msg.To.String()).
		Str("subject", msg.Subject).
		Int("html_bytes", len(msg.HTMLContent)).
		Msg("Email (console transport)")
	return nil
}
