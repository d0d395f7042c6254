package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"eventuras/internal/domain"
	"eventuras/internal/observability"
)

// EmailChannel is one tagged email transport in the dispatch order. Factory
// builds a sender from an organization's settings row for this kind.
type EmailChannel struct {
	Kind    domain.ChannelKind
	Factory func(settings *domain.ChannelSettings) (domain.EmailSender, error)
}

// SmsChannel is one tagged SMS transport in the dispatch order.
type SmsChannel struct {
	Kind    domain.ChannelKind
	Factory func(settings *domain.ChannelSettings) (domain.SmsSender, error)
}

type notificationService struct {
	settingsRepo  domain.ChannelSettingsRepository
	emailChannels []EmailChannel
	smsChannels   []SmsChannel
	logger        *slog.Logger
}

// NewNotificationService creates the dispatch engine. Channel order is
// significant: the first channel whose settings row is enabled wins.
func NewNotificationService(
	settingsRepo domain.ChannelSettingsRepository,
	emailChannels []EmailChannel,
	smsChannels []SmsChannel,
	logger *slog.Logger,
) domain.NotificationService {
	return &notificationService{
		settingsRepo:  settingsRepo,
		emailChannels: emailChannels,
		smsChannels:   smsChannels,
		logger:        logger,
	}
}

func (s *notificationService) SendEmail(ctx context.Context, orgID int, msg *domain.EmailMessage) error {
	for _, ch := range s.emailChannels {
		settings, err := s.settingsRepo.GetByOrgAndKind(ctx, orgID, ch.Kind)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("load %s settings: %w", ch.Kind, err)
		}
		if !settings.Enabled {
			continue
		}

		sender, err := ch.Factory(settings)
		if err != nil {
			observability.NotificationSendsTotal.WithLabelValues(string(ch.Kind), "error").Inc()
			return &domain.EmailSenderError{Channel: ch.Kind, Err: err}
		}
		if err := sender.Send(ctx, msg); err != nil {
			observability.NotificationSendsTotal.WithLabelValues(string(ch.Kind), "error").Inc()
			return &domain.EmailSenderError{Channel: ch.Kind, Err: err}
		}
		observability.NotificationSendsTotal.WithLabelValues(string(ch.Kind), "ok").Inc()
		s.logger.InfoContext(ctx, "email sent", "channel", ch.Kind, "org_id", orgID, "to", msg.To)
		return nil
	}
	return domain.ErrNoSenderEnabled
}

func (s *notificationService) SendSms(ctx context.Context, orgID int, msg *domain.SmsMessage) error {
	for _, ch := range s.smsChannels {
		settings, err := s.settingsRepo.GetByOrgAndKind(ctx, orgID, ch.Kind)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("load %s settings: %w", ch.Kind, err)
		}
		if !settings.Enabled {
			continue
		}

		sender, err := ch.Factory(settings)
		if err != nil {
			observability.NotificationSendsTotal.WithLabelValues(string(ch.Kind), "error").Inc()
			return &domain.SmsSenderError{Channel: ch.Kind, Err: err}
		}
		if err := sender.Send(ctx, msg); err != nil {
			observability.NotificationSendsTotal.WithLabelValues(string(ch.Kind), "error").Inc()
			return &domain.SmsSenderError{Channel: ch.Kind, Err: err}
		}
		observability.NotificationSendsTotal.WithLabelValues(string(ch.Kind), "ok").Inc()
		s.logger.InfoContext(ctx, "sms sent", "channel", ch.Kind, "org_id", orgID, "to", msg.To)
		return nil
	}
	return domain.ErrNoSenderEnabled
}

// healthChecker is the common health surface of email and SMS senders.
type healthChecker interface {
	CheckHealth(ctx context.Context) error
}

func (s *notificationService) ChannelHealth(ctx context.Context, orgID int) []domain.ChannelHealth {
	var out []domain.ChannelHealth
	for _, ch := range s.emailChannels {
		factory := ch.Factory
		out = append(out, s.healthFor(ctx, orgID, ch.Kind, func(settings *domain.ChannelSettings) (healthChecker, error) {
			return factory(settings)
		}))
	}
	for _, ch := range s.smsChannels {
		factory := ch.Factory
		out = append(out, s.healthFor(ctx, orgID, ch.Kind, func(settings *domain.ChannelSettings) (healthChecker, error) {
			return factory(settings)
		}))
	}
	return out
}

func (s *notificationService) healthFor(ctx context.Context, orgID int, kind domain.ChannelKind, build func(*domain.ChannelSettings) (healthChecker, error)) domain.ChannelHealth {
	settings, err := s.settingsRepo.GetByOrgAndKind(ctx, orgID, kind)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ChannelHealth{Kind: kind, Enabled: false, Healthy: false, Error: "not configured"}
	}
	if err != nil {
		return domain.ChannelHealth{Kind: kind, Enabled: false, Healthy: false, Error: err.Error()}
	}
	if !settings.Enabled {
		return domain.ChannelHealth{Kind: kind, Enabled: false, Healthy: false}
	}
	sender, err := build(settings)
	if err != nil {
		return domain.ChannelHealth{Kind: kind, Enabled: true, Healthy: false, Error: err.Error()}
	}
	if err := sender.CheckHealth(ctx); err != nil {
		return domain.ChannelHealth{Kind: kind, Enabled: true, Healthy: false, Error: err.Error()}
	}
	return domain.ChannelHealth{Kind: kind, Enabled: true, Healthy: true}
}
