package provider

import (
	"context"

	"github.com/kursadbilgin/notification-dispatch/internal/domain"
	"go.uber.org/zap"
)

var _ SMSProvider = (*TwilioSMSProvider)(nil)

// TwilioSMSProvider simulates Twilio. No HTTP request is made.
type TwilioSMSProvider struct {
	accountSID string
	authToken  string
	fromNumber string
	logger     *zap.Logger
}

func NewTwilioSMSProvider(accountSID, authToken, fromNumber string, logger *zap.Logger) *TwilioSMSProvider {
	return &TwilioSMSProvider{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		logger:     nopIfNil(logger),
	}
}

func (p *TwilioSMSProvider) Name() string { return "Twilio" }

func (p *TwilioSMSProvider) SendSMS(ctx context.Context, notification domain.SMSNotification) (bool, error) {
	if p.accountSID == "" || p.authToken == "" {
		return false, ErrTwilioCredentialsMissing
	}

	p.logger.Info("twilio sms simulated",
		zap.String("accountSid", maskSecret(p.accountSID)),
		zap.String("from", p.fromNumber),
		zap.String("to", notification.PhoneNumber()),
		zap.Int("messageLength", len(notification.Message())),
	)

	return true, nil
}
