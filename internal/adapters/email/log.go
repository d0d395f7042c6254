package email

import (
	"context"
	"log/slog"

	"eventuras/internal/domain"
)

type logSender struct {
	logger *slog.Logger
}

// NewLogSender returns an EmailSender that only logs outgoing messages.
// Useful in development and as a catch-all channel in tests.
func NewLogSender(logger *slog.Logger) domain.EmailSender {
	return &logSender{logger: logger}
}

func (s *logSender) Send(ctx context.Context, msg *domain.EmailMessage) error {
	s.logger.InfoContext(ctx, "email (log channel)", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (s *logSender) CheckHealth(ctx context.Context) error { return nil }
