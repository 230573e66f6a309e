package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kursadbilgin/notification-dispatch/internal/domain"
	"go.uber.org/zap"
)

const defaultWebhookTimeout = 10 * time.Second

var _ SlackProvider = (*WebhookSlackProvider)(nil)

type slackWebhookRequest struct {
	Channel   string `json:"channel"`
	Text      string `json:"text"`
	Username  string `json:"username,omitempty"`
	IconEmoji string `json:"icon_emoji,omitempty"`
}

// WebhookSlackProvider posts chat messages to a Slack incoming webhook.
type WebhookSlackProvider struct {
	client   *resty.Client
	endpoint string
	logger   *zap.Logger
}

func NewWebhookSlackProvider(endpoint string, logger *zap.Logger) (*WebhookSlackProvider, error) {
	client := resty.New()
	client.SetTimeout(defaultWebhookTimeout)
	client.SetRetryCount(0)

	return NewWebhookSlackProviderWithClient(endpoint, client, logger)
}

func NewWebhookSlackProviderWithClient(endpoint string, client *resty.Client, logger *zap.Logger) (*WebhookSlackProvider, error) {
	trimmedEndpoint := strings.TrimSpace(endpoint)
	if trimmedEndpoint == "" {
		return nil, ErrSlackWebhookURLMissing
	}
	if _, err := url.ParseRequestURI(trimmedEndpoint); err != nil {
		return nil, fmt.Errorf("invalid webhook endpoint: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("resty client is required")
	}

	if client.GetClient().Timeout == 0 {
		client.SetTimeout(defaultWebhookTimeout)
	}
	client.SetRetryCount(0)

	return &WebhookSlackProvider{
		client:   client,
		endpoint: trimmedEndpoint,
		logger:   nopIfNil(logger),
	}, nil
}

func (p *WebhookSlackProvider) Name() string { return "Slack" }

// SendSlackMessage returns false on a non-2xx answer and a *ProviderError
// when the request itself could not be completed.
func (p *WebhookSlackProvider) SendSlackMessage(ctx context.Context, notification domain.SlackNotification) (bool, error) {
	if p == nil || p.client == nil {
		return false, fmt.Errorf("provider is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	reqBody := slackWebhookRequest{
		Channel:   notification.SlackChannel(),
		Text:      notification.Text(),
		Username:  notification.Username(),
		IconEmoji: notification.IconEmoji(),
	}

	response, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post(p.endpoint)
	if err != nil {
		msg := "provider request failed"
		if errors.Is(err, context.Canceled) {
			msg = "provider request canceled"
		}
		return false, &ProviderError{
			Message: msg,
			Cause:   err,
		}
	}
	if response == nil {
		return false, &ProviderError{Message: "provider returned empty response"}
	}

	statusCode := response.StatusCode()
	if statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
		return true, nil
	}

	p.logger.Warn("slack webhook rejected message",
		zap.String("webhook", maskWebhookURL(p.endpoint)),
		zap.Int("status", statusCode),
		zap.String("body", strings.TrimSpace(response.String())),
	)
	return false, nil
}
