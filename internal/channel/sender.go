// Package channel binds a provider to the generic send contract: variant
// check, field validation, a single provider call and result normalization.
package channel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kursadbilgin/notification-dispatch/internal/domain"
	"github.com/kursadbilgin/notification-dispatch/internal/observability"
	"go.uber.org/zap"
)

const providerRejectedMessage = "Provider returned failure."

// Sender is the channel-agnostic send contract shared by every channel kind.
// Expected failures are reported inside the SendResult; a non-nil error is
// either a *domain.NotificationError or the context's error.
type Sender interface {
	Send(ctx context.Context, notification domain.Notification) (domain.SendResult, error)
	SendAsync(ctx context.Context, notification domain.Notification) *Future
	SendAsyncOn(ctx context.Context, notification domain.Notification, executor Executor) *Future
	Channel() domain.Channel
	ProviderName() string
}

// ValidationPolicy controls whether a sender runs the variant's field checks
// before calling its provider.
type ValidationPolicy int

const (
	ValidateFields ValidationPolicy = iota
	SkipFieldValidation
)

func (p ValidationPolicy) String() string {
	switch p {
	case ValidateFields:
		return "validate_fields"
	case SkipFieldValidation:
		return "skip_field_validation"
	}
	return fmt.Sprintf("ValidationPolicy(%d)", int(p))
}

// IDGenerator produces the message identifier attached to successful results.
type IDGenerator func() string

type options struct {
	logger   *zap.Logger
	metrics  *observability.Metrics
	newID    IDGenerator
	policy   ValidationPolicy
	executor Executor
}

type Option func(*options)

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func WithMetrics(metrics *observability.Metrics) Option {
	return func(o *options) { o.metrics = metrics }
}

func WithIDGenerator(gen IDGenerator) Option {
	return func(o *options) { o.newID = gen }
}

func WithValidationPolicy(policy ValidationPolicy) Option {
	return func(o *options) { o.policy = policy }
}

// WithExecutor sets the executor SendAsync schedules on.
func WithExecutor(executor Executor) Option {
	return func(o *options) { o.executor = executor }
}

// ChannelSender is the single implementation behind every channel kind; T is
// the notification variant it accepts.
type ChannelSender[T domain.Notification] struct {
	channel      domain.Channel
	variant      string
	noun         string
	providerName string
	deliver      func(ctx context.Context, notification T) (bool, error)
	destination  func(notification T) string

	logger   *zap.Logger
	metrics  *observability.Metrics
	newID    IDGenerator
	policy   ValidationPolicy
	executor Executor
}

type channelSpec[T domain.Notification] struct {
	channel     domain.Channel
	variant     string
	noun        string
	destination func(notification T) string
}

func newChannelSender[T domain.Notification](
	spec channelSpec[T],
	providerName string,
	deliver func(ctx context.Context, notification T) (bool, error),
	opts []Option,
) *ChannelSender[T] {
	o := options{policy: ValidateFields}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.newID == nil {
		o.newID = uuid.NewString
	}
	if o.executor == nil {
		o.executor = DefaultExecutor()
	}

	return &ChannelSender[T]{
		channel:      spec.channel,
		variant:      spec.variant,
		noun:         spec.noun,
		providerName: providerName,
		deliver:      deliver,
		destination:  spec.destination,
		logger:       observability.SenderLogger(o.logger, spec.channel.String(), providerName),
		metrics:      o.metrics,
		newID:        o.newID,
		policy:       o.policy,
		executor:     o.executor,
	}
}

func (s *ChannelSender[T]) Channel() domain.Channel { return s.channel }

func (s *ChannelSender[T]) ProviderName() string { return s.providerName }

func (s *ChannelSender[T]) ValidationPolicy() ValidationPolicy { return s.policy }

// Send performs one delivery attempt. It returns a failure result for a
// wrong variant, invalid fields or a provider answering false, and a
// *domain.NotificationError when the provider itself fails.
func (s *ChannelSender[T]) Send(ctx context.Context, notification domain.Notification) (domain.SendResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := observability.RequestLogger(ctx, s.logger)

	typed, ok := notification.(T)
	if !ok {
		logger.Warn("notification type mismatch",
			zap.String("expected", s.variant),
			zap.String("got", fmt.Sprintf("%T", notification)),
		)
		return s.fail(observability.ReasonInvalidType, fmt.Sprintf("Invalid notification type. Expected %s.", s.variant)), nil
	}

	if s.policy == ValidateFields {
		if validation := typed.Validate(); !validation.IsValid() {
			logger.Warn("notification validation failed", zap.Strings("errors", validation.Errors()))
			return s.fail(observability.ReasonValidationFailed, "Validation failed: "+validation.Summary()), nil
		}
	}

	if err := ctx.Err(); err != nil {
		return domain.SendResult{}, err
	}

	destination := s.destination(typed)
	logger.Info("sending notification", zap.String("destination", destination))

	start := time.Now()
	sent, err := s.call(ctx, typed)
	s.metrics.ObserveProviderCall(s.channel.String(), time.Since(start))

	if err != nil {
		logger.Error("provider failed to send notification",
			zap.String("destination", destination),
			zap.Error(err),
		)
		s.metrics.IncNotificationFailed(s.channel.String(), s.providerName, observability.ReasonProviderError)
		return domain.SendResult{}, &domain.NotificationError{
			Channel:  s.channel,
			Provider: s.providerName,
			Message:  fmt.Sprintf("Failed to send %s via %s", s.noun, s.providerName),
			Cause:    err,
		}
	}

	if !sent {
		logger.Warn("provider rejected notification", zap.String("destination", destination))
		return s.fail(observability.ReasonProviderRejected, providerRejectedMessage), nil
	}

	messageID := s.messageID()
	logger.Info("notification sent",
		zap.String("destination", destination),
		zap.String("messageId", messageID),
	)
	s.metrics.IncNotificationSent(s.channel.String(), s.providerName)

	return domain.SendSuccess(s.channel, s.providerName, messageID), nil
}

func (s *ChannelSender[T]) fail(reason string, message string) domain.SendResult {
	s.metrics.IncNotificationFailed(s.channel.String(), s.providerName, reason)
	return domain.SendFailure(s.channel, s.providerName, message)
}

// call invokes the provider, converting a panic into an error so it surfaces
// as a NotificationError like any other provider failure.
func (s *ChannelSender[T]) call(ctx context.Context, notification T) (sent bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			sent = false
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()

	return s.deliver(ctx, notification)
}

func (s *ChannelSender[T]) messageID() string {
	if id := strings.TrimSpace(s.newID()); id != "" {
		return id
	}
	return uuid.NewString()
}
