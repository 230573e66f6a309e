package provider

import (
	"context"

	"github.com/kursadbilgin/notification-dispatch/internal/domain"
	"go.uber.org/zap"
)

var _ EmailProvider = (*SendGridEmailProvider)(nil)

// SendGridEmailProvider simulates SendGrid. No HTTP request is made.
type SendGridEmailProvider struct {
	apiKey string
	logger *zap.Logger
}

func NewSendGridEmailProvider(apiKey string, logger *zap.Logger) *SendGridEmailProvider {
	return &SendGridEmailProvider{
		apiKey: apiKey,
		logger: nopIfNil(logger),
	}
}

func (p *SendGridEmailProvider) Name() string { return "SendGrid" }

func (p *SendGridEmailProvider) SendEmail(ctx context.Context, notification domain.EmailNotification) (bool, error) {
	if p.apiKey == "" {
		return false, ErrSendGridAPIKeyMissing
	}

	p.logger.Info("sendgrid email simulated",
		zap.String("apiKey", maskSecret(p.apiKey)),
		zap.String("to", notification.To()),
		zap.String("subject", notification.Subject()),
		zap.Int("bodyLength", len(notification.Body())),
		zap.Int("attachments", len(notification.Attachments())),
	)

	return true, nil
}
