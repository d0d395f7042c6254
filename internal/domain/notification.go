package domain

import (
	"context"
	"fmt"
)

// ChannelKind identifies one notification transport.
type ChannelKind string

const (
	ChannelSMTP     ChannelKind = "smtp"
	ChannelSES      ChannelKind = "ses"
	ChannelSendGrid ChannelKind = "sendgrid"
	ChannelTwilio   ChannelKind = "twilio"
	ChannelLog      ChannelKind = "log"
)

// ChannelSettings is one per-organization provider configuration row.
// Only the fields relevant to Kind are populated.
type ChannelSettings struct {
	OrganizationID int         `json:"organization_id"`
	Kind           ChannelKind `json:"kind"`
	Enabled        bool        `json:"enabled"`

	// smtp
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"-"`

	// sendgrid / ses / smtp from
	APIKey      string `json:"-"`
	FromAddress string `json:"from_address,omitempty"`
	FromName    string `json:"from_name,omitempty"`

	// ses
	Region          string `json:"region,omitempty"`
	AccessKeyID     string `json:"-"`
	SecretAccessKey string `json:"-"`

	// twilio
	AccountSID string `json:"-"`
	AuthToken  string `json:"-"`
	FromNumber string `json:"from_number,omitempty"`
}

// ChannelSettingsRepository reads per-organization channel configuration.
// The dispatch engine treats these rows as read-only input.
type ChannelSettingsRepository interface {
	GetByOrgAndKind(ctx context.Context, orgID int, kind ChannelKind) (*ChannelSettings, error)
}

// Attachment is an optional file attached to an outgoing email.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// EmailMessage is one outgoing email.
type EmailMessage struct {
	To         string
	Subject    string
	HTML       string
	Text       string
	Attachment *Attachment
}

// SmsMessage is one outgoing text message.
type SmsMessage struct {
	To   string
	Body string
}

// EmailSender sends a single email over one transport.
type EmailSender interface {
	Send(ctx context.Context, msg *EmailMessage) error
	CheckHealth(ctx context.Context) error
}

// SmsSender sends a single SMS over one transport.
type SmsSender interface {
	Send(ctx context.Context, msg *SmsMessage) error
	CheckHealth(ctx context.Context) error
}

// EmailSenderError wraps a transport-level email failure with its channel.
type EmailSenderError struct {
	Channel ChannelKind
	Err     error
}

func (e *EmailSenderError) Error() string {
	return fmt.Sprintf("email send via %s failed: %v", e.Channel, e.Err)
}

func (e *EmailSenderError) Unwrap() error { return e.Err }

// SmsSenderError wraps a transport-level SMS failure with its channel.
type SmsSenderError struct {
	Channel ChannelKind
	Err     error
}

func (e *SmsSenderError) Error() string {
	return fmt.Sprintf("sms send via %s failed: %v", e.Channel, e.Err)
}

func (e *SmsSenderError) Unwrap() error { return e.Err }

// ChannelHealth is one channel's readiness result.
type ChannelHealth struct {
	Kind    ChannelKind `json:"kind"`
	Enabled bool        `json:"enabled"`
	Healthy bool        `json:"healthy"`
	Error   string      `json:"error,omitempty"`
}

// NotificationService dispatches email and SMS through the first enabled
// channel of an organization's ordered channel list. Transport failures are
// surfaced, never retried internally; retry policy belongs to the caller.
type NotificationService interface {
	SendEmail(ctx context.Context, orgID int, msg *EmailMessage) error
	SendSms(ctx context.Context, orgID int, msg *SmsMessage) error
	// ChannelHealth reports per-channel health for the readiness probe,
	// independent of the send flow.
	ChannelHealth(ctx context.Context, orgID int) []ChannelHealth
}
