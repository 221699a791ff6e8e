package notification

import (
	"context"
	"log/slog"
)

// LogTransport logs messages instead of sending them. Used in development.
type LogTransport struct{}

func NewLogTransport() *LogTransport {
	return &LogTransport{}
}

func (LogTransport) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "email delivery skipped (log transport)",
		"to", msg.To,
		"subject", msg.Subject,
		"text", msg.Text,
	)
	return nil
}
