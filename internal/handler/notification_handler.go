package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kursadbilgin/notification-dispatch/internal/channel"
	"github.com/kursadbilgin/notification-dispatch/internal/domain"
	"github.com/kursadbilgin/notification-dispatch/internal/observability"
)

const defaultSendTimeout = 10 * time.Second

type NotificationHandler struct {
	senders     map[domain.Channel]channel.Sender
	sendTimeout time.Duration
}

func NewNotificationHandler(senders map[domain.Channel]channel.Sender, sendTimeout time.Duration) (*NotificationHandler, error) {
	if len(senders) == 0 {
		return nil, fmt.Errorf("at least one sender is required")
	}
	for ch, sender := range senders {
		if sender == nil {
			return nil, fmt.Errorf("sender for channel %s is nil", ch)
		}
	}
	if sendTimeout <= 0 {
		sendTimeout = defaultSendTimeout
	}

	copied := make(map[domain.Channel]channel.Sender, len(senders))
	for ch, sender := range senders {
		copied[ch] = sender
	}

	return &NotificationHandler{senders: copied, sendTimeout: sendTimeout}, nil
}

func RegisterNotificationRoutes(router fiber.Router, senders map[domain.Channel]channel.Sender, sendTimeout time.Duration) error {
	h, err := NewNotificationHandler(senders, sendTimeout)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Post("/notifications/:channel", h.SendNotification)

	return nil
}

// sendNotificationRequest carries the fields of every variant. Kind selects
// the variant to build and defaults to the route channel.
type sendNotificationRequest struct {
	Kind string `json:"kind"`

	To          string   `json:"to"`
	Subject     string   `json:"subject"`
	Body        string   `json:"body"`
	From        string   `json:"from"`
	CC          []string `json:"cc"`
	BCC         []string `json:"bcc"`
	Attachments []string `json:"attachments"`

	PhoneNumber string `json:"phoneNumber"`
	Message     string `json:"message"`

	Token string            `json:"token"`
	Title string            `json:"title"`
	Data  map[string]string `json:"data"`

	SlackChannel string `json:"slackChannel"`
	Text         string `json:"text"`
	Username     string `json:"username"`
	IconEmoji    string `json:"iconEmoji"`
}

type sendResultResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Channel   string `json:"channel"`
	Provider  string `json:"provider"`
	MessageID string `json:"messageId,omitempty"`
}

func (h *NotificationHandler) SendNotification(c *fiber.Ctx) error {
	ch, err := domain.ParseChannelFromString(c.Params("channel"))
	if err != nil {
		return toHTTPError(err)
	}

	sender, ok := h.senders[ch]
	if !ok {
		return toHTTPError(fmt.Errorf("%w: %s", domain.ErrUnsupportedChannel, ch))
	}

	var req sendNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	notification, err := requestToNotification(req, ch)
	if err != nil {
		return toHTTPError(err)
	}

	ctx := c.UserContext()
	if correlationID := requestCorrelationID(c); correlationID != "" {
		ctx = observability.WithCorrelationID(ctx, correlationID)
	}
	ctx, cancel := context.WithTimeout(ctx, h.sendTimeout)
	defer cancel()

	var result domain.SendResult
	if c.QueryBool("async", false) {
		result, err = sender.SendAsync(ctx, notification).Await(ctx)
	} else {
		result, err = sender.Send(ctx, notification)
	}
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	if !result.Success() {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(toSendResultResponse(result))
}

func requestToNotification(req sendNotificationRequest, routeChannel domain.Channel) (domain.Notification, error) {
	kind := routeChannel
	if strings.TrimSpace(req.Kind) != "" {
		parsed, err := domain.ParseChannelFromString(req.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid kind %q", domain.ErrValidation, req.Kind)
		}
		kind = parsed
	}

	switch kind {
	case domain.ChannelEmail:
		opts := []domain.EmailOption{
			domain.WithCC(req.CC...),
			domain.WithBCC(req.BCC...),
			domain.WithAttachments(req.Attachments...),
		}
		if req.From != "" {
			opts = append(opts, domain.WithFrom(req.From))
		}
		return domain.NewEmail(req.To, req.Subject, req.Body, opts...), nil
	case domain.ChannelSMS:
		return domain.NewSMS(req.PhoneNumber, req.Message), nil
	case domain.ChannelPush:
		return domain.NewPush(req.Token, req.Title, req.Body, domain.WithData(req.Data)), nil
	case domain.ChannelSlack:
		var opts []domain.SlackOption
		if req.Username != "" {
			opts = append(opts, domain.WithUsername(req.Username))
		}
		if req.IconEmoji != "" {
			opts = append(opts, domain.WithIconEmoji(req.IconEmoji))
		}
		return domain.NewSlack(req.SlackChannel, req.Text, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedChannel, kind)
	}
}

func toSendResultResponse(result domain.SendResult) sendResultResponse {
	resp := sendResultResponse{
		Success:  result.Success(),
		Message:  result.Message(),
		Channel:  result.ChannelName(),
		Provider: result.ProviderName(),
	}
	if id, ok := result.MessageID(); ok {
		resp.MessageID = id
	}
	return resp
}

func requestCorrelationID(c *fiber.Ctx) string {
	if value := strings.TrimSpace(c.Get(fiber.HeaderXRequestID)); value != "" {
		return value
	}
	if value, ok := c.Locals("requestid").(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUnsupportedChannel):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}
