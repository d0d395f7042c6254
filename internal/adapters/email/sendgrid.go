package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"eventuras/internal/domain"
)

const sendgridBaseURL = "https://api.sendgrid.com/v3"

type sendgridSender struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	fromAddress string
	fromName    string
}

// NewSendGridSender builds an EmailSender that calls the SendGrid v3 mail
// send API.
func NewSendGridSender(settings *domain.ChannelSettings) (domain.EmailSender, error) {
	return newSendGridSender(http.DefaultClient, sendgridBaseURL, settings)
}

func newSendGridSender(client *http.Client, baseURL string, settings *domain.ChannelSettings) (domain.EmailSender, error) {
	if settings.APIKey == "" {
		return nil, fmt.Errorf("sendgrid settings incomplete for organization %d", settings.OrganizationID)
	}
	return &sendgridSender{
		client:      client,
		baseURL:     baseURL,
		apiKey:      settings.APIKey,
		fromAddress: settings.FromAddress,
		fromName:    settings.FromName,
	}, nil
}

type sendgridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendgridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendgridAttachment struct {
	Content  string `json:"content"`
	Type     string `json:"type,omitempty"`
	Filename string `json:"filename"`
}

type sendgridPayload struct {
	Personalizations []struct {
		To []sendgridAddress `json:"to"`
	} `json:"personalizations"`
	From        sendgridAddress      `json:"from"`
	Subject     string               `json:"subject"`
	Content     []sendgridContent    `json:"content"`
	Attachments []sendgridAttachment `json:"attachments,omitempty"`
}

func (s *sendgridSender) Send(ctx context.Context, msg *domain.EmailMessage) error {
	payload := sendgridPayload{
		From:    sendgridAddress{Email: s.fromAddress, Name: s.fromName},
		Subject: msg.Subject,
	}
	payload.Personalizations = append(payload.Personalizations, struct {
		To []sendgridAddress `json:"to"`
	}{To: []sendgridAddress{{Email: msg.To}}})
	if msg.Text != "" {
		payload.Content = append(payload.Content, sendgridContent{Type: "text/plain", Value: msg.Text})
	}
	if msg.HTML != "" {
		payload.Content = append(payload.Content, sendgridContent{Type: "text/html", Value: msg.HTML})
	}
	if att := msg.Attachment; att != nil {
		payload.Attachments = append(payload.Attachments, sendgridAttachment{
			Content:  base64.StdEncoding.EncodeToString(att.Content),
			Type:     att.ContentType,
			Filename: att.Filename,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode sendgrid payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/mail/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call sendgrid: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sendgrid api returned status %d: %s", resp.StatusCode, detail)
	}
	return nil
}

func (s *sendgridSender) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/scopes", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sendgrid health check failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sendgrid api returned status: %d", resp.StatusCode)
	}
	return nil
}
