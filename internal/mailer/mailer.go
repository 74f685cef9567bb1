package mailer

import (
	"context"
	"net/mail"
)

// Message is a fully rendered outbound email.
type Message struct {
	To          mail.Address
	Subject     string
	TextContent string
	HTMLContent string
}

// Mailer is any transport that can deliver a single message.
// Implementations report delivery failure as an error and never panic;
// retry and delivery confirmation are out of scope.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
