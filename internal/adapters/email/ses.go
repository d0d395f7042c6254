package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"eventuras/internal/domain"
)

type sesSender struct {
	client      *ses.Client
	fromAddress string
	fromName    string
}

// NewSESSender builds an EmailSender for AWS SES from an organization's
// channel settings row.
func NewSESSender(settings *domain.ChannelSettings) (domain.EmailSender, error) {
	if settings.Region == "" || settings.AccessKeyID == "" || settings.SecretAccessKey == "" {
		return nil, fmt.Errorf("ses settings incomplete for organization %d", settings.OrganizationID)
	}
	awsCfg := aws.Config{
		Region: settings.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				settings.AccessKeyID,
				settings.SecretAccessKey,
				"",
			),
		),
	}
	return &sesSender{
		client:      ses.NewFromConfig(awsCfg),
		fromAddress: settings.FromAddress,
		fromName:    settings.FromName,
	}, nil
}

func (s *sesSender) Send(ctx context.Context, msg *domain.EmailMessage) error {
	source := s.fromAddress
	if s.fromName != "" {
		source = fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	}
	input := &ses.SendEmailInput{
		Source: aws.String(source),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(msg.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}
	if msg.HTML != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(msg.HTML),
			Charset: aws.String("UTF-8"),
		}
	}
	if msg.Text != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(msg.Text),
			Charset: aws.String("UTF-8"),
		}
	}
	if msg.Attachment != nil {
		// The simple SendEmail API has no attachment support; fall back to a
		// raw MIME message.
		raw, err := buildMIME(source, msg)
		if err != nil {
			return err
		}
		_, err = s.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
			RawMessage: &types.RawMessage{Data: raw},
		})
		if err != nil {
			return fmt.Errorf("failed to send raw email via SES: %w", err)
		}
		return nil
	}
	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email via SES: %w", err)
	}
	return nil
}

func (s *sesSender) CheckHealth(ctx context.Context) error {
	if _, err := s.client.GetSendQuota(ctx, &ses.GetSendQuotaInput{}); err != nil {
		return fmt.Errorf("ses quota check failed: %w", err)
	}
	return nil
}
