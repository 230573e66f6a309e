package provider

import (
	"context"

	"github.com/kursadbilgin/notification-dispatch/internal/domain"
	"go.uber.org/zap"
)

var _ SlackProvider = (*SlackWebhookStub)(nil)

// SlackWebhookStub simulates posting to a Slack incoming webhook. Use
// WebhookSlackProvider for real delivery.
type SlackWebhookStub struct {
	webhookURL string
	logger     *zap.Logger
}

func NewSlackWebhookStub(webhookURL string, logger *zap.Logger) *SlackWebhookStub {
	return &SlackWebhookStub{
		webhookURL: webhookURL,
		logger:     nopIfNil(logger),
	}
}

func (p *SlackWebhookStub) Name() string { return "Slack" }

func (p *SlackWebhookStub) SendSlackMessage(ctx context.Context, notification domain.SlackNotification) (bool, error) {
	if p.webhookURL == "" {
		return false, ErrSlackWebhookURLMissing
	}

	fields := []zap.Field{
		zap.String("webhook", maskWebhookURL(p.webhookURL)),
		zap.String("slackChannel", notification.SlackChannel()),
		zap.Int("textLength", len(notification.Text())),
	}
	if username := notification.Username(); username != "" {
		fields = append(fields, zap.String("username", username))
	}
	if icon := notification.IconEmoji(); icon != "" {
		fields = append(fields, zap.String("iconEmoji", icon))
	}
	p.logger.Info("slack message simulated", fields...)

	return true, nil
}
