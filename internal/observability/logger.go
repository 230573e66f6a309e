package observability

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "notification-dispatch"

// Log field keys shared by senders, providers and the HTTP surface.
const (
	FieldCorrelationID = "correlationId"
	FieldChannel       = "channel"
	FieldProviderName  = "providerName"
)

type correlationIDKey struct{}

// NewLogger builds the JSON production logger tagged with the service name.
// An empty level means info; "warning" is accepted as an alias of warn.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	cfg.InitialFields = map[string]any{"service": serviceName}

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

func parseLevel(level string) (zapcore.Level, error) {
	switch name := strings.ToLower(strings.TrimSpace(level)); name {
	case "":
		return zapcore.InfoLevel, nil
	case "warning":
		return zapcore.WarnLevel, nil
	default:
		lvl, err := zapcore.ParseLevel(name)
		if err != nil {
			return 0, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		return lvl, nil
	}
}

// WithCorrelationID tags ctx so sender log lines can be tied to the caller's
// request. A blank id leaves ctx untouched.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if correlationID = strings.TrimSpace(correlationID); correlationID == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

func CorrelationIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(correlationIDKey{}).(string)
	return id, ok && id != ""
}

// SenderLogger scopes a logger to one channel sender and its bound provider.
// A nil logger yields a no-op logger.
func SenderLogger(logger *zap.Logger, channel string, providerName string) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	return logger.With(
		zap.String(FieldChannel, strings.ToUpper(strings.TrimSpace(channel))),
		zap.String(FieldProviderName, providerName),
	)
}

// RequestLogger adds the correlation id carried by ctx, if any, to a sender
// scoped logger. A nil logger yields a no-op logger.
func RequestLogger(ctx context.Context, logger *zap.Logger) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if id, ok := CorrelationIDFromContext(ctx); ok {
		return logger.With(zap.String(FieldCorrelationID, id))
	}
	return logger
}
