package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Netflix/go-env"
)

// Slack delivery modes.
const (
	SlackDeliveryStub    = "stub"
	SlackDeliveryWebhook = "webhook"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds provider credentials and runtime settings. Credentials are
// optional here; providers report missing values when a send is attempted.
type Config struct {
	SendGridAPIKey    string        `env:"SENDGRID_API_KEY"`
	TwilioAccountSID  string        `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string        `env:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber  string        `env:"TWILIO_FROM_NUMBER"`
	FirebaseProjectID string        `env:"FIREBASE_PROJECT_ID"`
	FirebaseKeyPath   string        `env:"FIREBASE_KEY_PATH"`
	SlackWebhookURL   string        `env:"SLACK_WEBHOOK_URL"`
	SlackDelivery     string        `env:"SLACK_DELIVERY,default=stub"`
	AsyncConcurrency  int           `env:"ASYNC_CONCURRENCY,default=16"`
	SendTimeout       time.Duration `env:"SEND_TIMEOUT,default=10s"`
	APIPort           int           `env:"API_PORT,default=8080"`
	LogLevel          string        `env:"LOG_LEVEL,default=info"`
}

func Load() (*Config, error) {
	var cfg Config
	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.SlackDelivery = strings.ToLower(strings.TrimSpace(cfg.SlackDelivery))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.SlackDelivery {
	case SlackDeliveryStub, SlackDeliveryWebhook:
	default:
		return fmt.Errorf("%w: SLACK_DELIVERY must be %q or %q, got %q",
			ErrInvalidConfig, SlackDeliveryStub, SlackDeliveryWebhook, c.SlackDelivery)
	}
	if c.AsyncConcurrency <= 0 {
		return fmt.Errorf("%w: ASYNC_CONCURRENCY must be positive, got %d", ErrInvalidConfig, c.AsyncConcurrency)
	}
	if c.SendTimeout <= 0 {
		return fmt.Errorf("%w: SEND_TIMEOUT must be positive, got %s", ErrInvalidConfig, c.SendTimeout)
	}
	return nil
}
