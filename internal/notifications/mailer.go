// Package notifications integrates external delivery collaborators.
package notifications

import (
	"context"
	"log/slog"
)

// Message is an outbound notification email.
type Message struct {
	To      string
	Subject string
	Text    string
}

// Mailer delivers notification emails. Delivery itself is an external
// collaborator; the default implementation only records the intent.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewLogMailer returns a Mailer that logs outbound messages instead of
// delivering them.
func NewLogMailer(logger *slog.Logger) Mailer {
	return &logMailer{logger: logger}
}

type logMailer struct {
	logger *slog.Logger
}

func (m *logMailer) Send(ctx context.Context, msg Message) error {
	m.logger.InfoContext(ctx, "outbound email",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}
