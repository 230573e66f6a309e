package provider

import (
	"errors"
	"fmt"
	"strings"
)

// Missing-credential errors returned by the stub providers.
var (
	ErrSendGridAPIKeyMissing      = errors.New("SendGrid API Key is missing")
	ErrTwilioCredentialsMissing   = errors.New("Twilio credentials are missing")
	ErrFirebaseCredentialsMissing = errors.New("Firebase credentials are missing")
	ErrSlackWebhookURLMissing     = errors.New("Slack webhook URL is missing")
)

// ProviderError describes a failed call to a remote provider endpoint.
type ProviderError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *ProviderError) Error() string {
	if e == nil {
		return "<nil>"
	}

	parts := make([]string, 0, 4)
	parts = append(parts, "provider error")

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		parts = append(parts, msg)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *ProviderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
