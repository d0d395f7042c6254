package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"eventuras/internal/domain"
)

const twilioBaseURL = "https://api.twilio.com/2010-04-01"

type twilioSender struct {
	client     *http.Client
	baseURL    string
	accountSID string
	authToken  string
	fromNumber string
}

// NewTwilioSender builds an SmsSender that calls the Twilio Messages API.
func NewTwilioSender(settings *domain.ChannelSettings) (domain.SmsSender, error) {
	return newTwilioSender(http.DefaultClient, twilioBaseURL, settings)
}

func newTwilioSender(client *http.Client, baseURL string, settings *domain.ChannelSettings) (domain.SmsSender, error) {
	if settings.AccountSID == "" || settings.AuthToken == "" || settings.FromNumber == "" {
		return nil, fmt.Errorf("twilio settings incomplete for organization %d", settings.OrganizationID)
	}
	return &twilioSender{
		client:     client,
		baseURL:    baseURL,
		accountSID: settings.AccountSID,
		authToken:  settings.AuthToken,
		fromNumber: settings.FromNumber,
	}, nil
}

func (s *twilioSender) Send(ctx context.Context, msg *domain.SmsMessage) error {
	form := url.Values{}
	form.Set("To", msg.To)
	form.Set("From", s.fromNumber)
	form.Set("Body", msg.Body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", s.baseURL, s.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call twilio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio api returned status %d: %s", resp.StatusCode, detail)
	}
	return nil
}

func (s *twilioSender) CheckHealth(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/Accounts/%s.json", s.baseURL, s.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio health check failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("twilio api returned status: %d", resp.StatusCode)
	}
	return nil
}
