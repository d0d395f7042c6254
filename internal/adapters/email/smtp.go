package email

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"eventuras/internal/domain"
)

type smtpSender struct {
	addr        string
	auth        smtp.Auth
	fromAddress string
	fromName    string
}

// NewSMTPSender builds an EmailSender that delivers through a plain SMTP
// relay configured per organization.
func NewSMTPSender(settings *domain.ChannelSettings) (domain.EmailSender, error) {
	if settings.Host == "" || settings.Port == 0 {
		return nil, fmt.Errorf("smtp settings incomplete for organization %d", settings.OrganizationID)
	}
	var auth smtp.Auth
	if settings.Username != "" {
		auth = smtp.PlainAuth("", settings.Username, settings.Password, settings.Host)
	}
	return &smtpSender{
		addr:        net.JoinHostPort(settings.Host, strconv.Itoa(settings.Port)),
		auth:        auth,
		fromAddress: settings.FromAddress,
		fromName:    settings.FromName,
	}, nil
}

func (s *smtpSender) Send(ctx context.Context, msg *domain.EmailMessage) error {
	from := s.fromAddress
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	}
	body, err := buildMIME(from, msg)
	if err != nil {
		return err
	}
	if err := smtp.SendMail(s.addr, s.auth, s.fromAddress, []string{msg.To}, body); err != nil {
		return fmt.Errorf("failed to send email via smtp: %w", err)
	}
	return nil
}

func (s *smtpSender) CheckHealth(ctx context.Context) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("smtp dial failed: %w", err)
	}
	return conn.Close()
}
