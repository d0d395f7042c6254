package sms

import (
	"context"
	"log/slog"

	"eventuras/internal/domain"
)

type logSender struct {
	logger *slog.Logger
}

// NewLogSender returns an SmsSender that only logs outgoing messages.
func NewLogSender(logger *slog.Logger) domain.SmsSender {
	return &logSender{logger: logger}
}

func (s *logSender) Send(ctx context.Context, msg *domain.SmsMessage) error {
	s.logger.InfoContext(ctx, "sms (log channel)", "to", msg.To)
	return nil
}

func (s *logSender) CheckHealth(ctx context.Context) error { return nil }
