package provider

import (
	"context"

	"github.com/kursadbilgin/notification-dispatch/internal/domain"
	"go.uber.org/zap"
)

var _ PushProvider = (*FirebasePushProvider)(nil)

// FirebasePushProvider simulates Firebase Cloud Messaging. No HTTP request is made.
type FirebasePushProvider struct {
	projectID             string
	serviceAccountKeyPath string
	logger                *zap.Logger
}

func NewFirebasePushProvider(projectID, serviceAccountKeyPath string, logger *zap.Logger) *FirebasePushProvider {
	return &FirebasePushProvider{
		projectID:             projectID,
		serviceAccountKeyPath: serviceAccountKeyPath,
		logger:                nopIfNil(logger),
	}
}

func (p *FirebasePushProvider) Name() string { return "Firebase" }

func (p *FirebasePushProvider) SendPush(ctx context.Context, notification domain.PushNotification) (bool, error) {
	if p.projectID == "" || p.serviceAccountKeyPath == "" {
		return false, ErrFirebaseCredentialsMissing
	}

	p.logger.Info("firebase push simulated",
		zap.String("projectId", p.projectID),
		zap.String("keyPath", p.serviceAccountKeyPath),
		zap.String("token", notification.Token()),
		zap.String("title", notification.Title()),
		zap.Int("dataKeys", len(notification.Data())),
	)

	return true, nil
}
