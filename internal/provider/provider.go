package provider

import (
	"context"

	"github.com/kursadbilgin/notification-dispatch/internal/domain"
)

// EmailProvider is the outbound port for email delivery vendors.
// SendEmail returns false when the vendor rejects the message and an error
// when it could not attempt delivery at all.
type EmailProvider interface {
	SendEmail(ctx context.Context, notification domain.EmailNotification) (bool, error)
	Name() string
}

// SMSProvider is the outbound port for SMS vendors.
type SMSProvider interface {
	SendSMS(ctx context.Context, notification domain.SMSNotification) (bool, error)
	Name() string
}

// PushProvider is the outbound port for mobile push vendors.
type PushProvider interface {
	SendPush(ctx context.Context, notification domain.PushNotification) (bool, error)
	Name() string
}

// SlackProvider is the outbound port for chat (Slack-style) integrations.
type SlackProvider interface {
	SendSlackMessage(ctx context.Context, notification domain.SlackNotification) (bool, error)
	Name() string
}
