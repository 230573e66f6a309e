package provider

import "go.uber.org/zap"

const (
	maskSuffix        = "****"
	visibleSecretLen  = 4
	visibleWebhookLen = 30
	minWebhookLen     = 20
)

// maskSecret keeps the first few characters of a credential for log lines.
func maskSecret(secret string) string {
	if len(secret) < visibleSecretLen {
		return maskSuffix
	}
	return secret[:visibleSecretLen] + maskSuffix
}

func maskWebhookURL(url string) string {
	if len(url) < minWebhookLen {
		return "https://hooks.slack.com/" + maskSuffix
	}
	return url[:min(len(url), visibleWebhookLen)] + maskSuffix
}

func nopIfNil(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
