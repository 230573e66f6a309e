package domain

import (
	"errors"
	"strings"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrUnsupportedChannel = errors.New("unsupported channel")
)

// NotificationError is raised when a provider fails while delivering a
// notification. Expected failures (wrong variant, invalid fields, provider
// returning false) are reported through SendResult instead.
type NotificationError struct {
	Channel  Channel
	Provider string
	Message  string
	Cause    error
}

func (e *NotificationError) Error() string {
	if e == nil {
		return "<nil>"
	}

	parts := make([]string, 0, 2)
	if msg := strings.TrimSpace(e.Message); msg != "" {
		parts = append(parts, msg)
	} else {
		parts = append(parts, "notification error")
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *NotificationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// IsNotificationError reports whether err carries a NotificationError.
func IsNotificationError(err error) bool {
	var notificationErr *NotificationError
	return errors.As(err, &notificationErr)
}
