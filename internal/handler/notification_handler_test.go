package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kursadbilgin/notification-dispatch/internal/channel"
	"github.com/kursadbilgin/notification-dispatch/internal/domain"
	"github.com/kursadbilgin/notification-dispatch/internal/provider"
	"github.com/kursadbilgin/notification-dispatch/internal/transport"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type blockingSlackProvider struct{}

func (blockingSlackProvider) Name() string { return "Slack" }

func (blockingSlackProvider) SendSlackMessage(ctx context.Context, n domain.SlackNotification) (bool, error) {
	<-ctx.Done()
	return false, ctx.Err()
}

func stubSenders(logger *zap.Logger) map[domain.Channel]channel.Sender {
	opts := []channel.Option{
		channel.WithLogger(logger),
		channel.WithIDGenerator(func() string { return "msg-1" }),
	}

	return map[domain.Channel]channel.Sender{
		domain.ChannelEmail: channel.NewEmailSender(provider.NewSendGridEmailProvider("SG.test-key", logger), opts...),
		domain.ChannelSMS:   channel.NewSMSSender(provider.NewTwilioSMSProvider("", "", "", logger), opts...),
		domain.ChannelPush:  channel.NewPushSender(provider.NewFirebasePushProvider("demo-project", "/tmp/key.json", logger), opts...),
		domain.ChannelSlack: channel.NewSlackSender(provider.NewSlackWebhookStub("https://hooks.slack.com/services/T000/B000/XXXX", logger), opts...),
	}
}

func newNotificationTestApp(t *testing.T, senders map[domain.Channel]channel.Sender, sendTimeout time.Duration) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: transport.ErrorHandler(zap.NewNop()),
	})

	RegisterHealthRoutes(app)
	if err := RegisterNotificationRoutes(app, senders, sendTimeout); err != nil {
		t.Fatalf("RegisterNotificationRoutes() error = %v", err)
	}

	return app
}

func performRequest(t *testing.T, app *fiber.App, method string, path string, body string, headers ...string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	_ = resp.Body.Close()

	return resp, respBody
}

func decodeBody(t *testing.T, body []byte) map[string]any {
	t.Helper()

	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("json unmarshal error = %v, body=%s", err, string(body))
	}
	return parsed
}

func TestSendNotification_Success(t *testing.T) {
	t.Parallel()

	app := newNotificationTestApp(t, stubSenders(zap.NewNop()), time.Second)

	tests := []struct {
		name     string
		path     string
		body     string
		channel  string
		provider string
	}{
		{
			name:     "email",
			path:     "/v1/notifications/email",
			body:     `{"to":"user@example.com","subject":"Welcome!","body":"Hello","cc":["cc@example.com"]}`,
			channel:  "EMAIL",
			provider: "SendGrid",
		},
		{
			name:     "push",
			path:     "/v1/notifications/push",
			body:     `{"token":"device_token_xyz","title":"New Alert","body":"You have a new message","data":{"k":"v"}}`,
			channel:  "PUSH",
			provider: "Firebase",
		},
		{
			name:     "slack async",
			path:     "/v1/notifications/SLACK?async=true",
			body:     `{"slackChannel":"#general","text":"Deployment successful","username":"bot"}`,
			channel:  "SLACK",
			provider: "Slack",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			resp, body := performRequest(t, app, http.MethodPost, tc.path, tc.body)
			if resp.StatusCode != fiber.StatusOK {
				t.Fatalf("status = %d, want 200, body=%s", resp.StatusCode, string(body))
			}

			parsed := decodeBody(t, body)
			if parsed["success"] != true {
				t.Fatalf("success = %v, want true", parsed["success"])
			}
			if parsed["message"] != "Success" {
				t.Fatalf("message = %v, want Success", parsed["message"])
			}
			if parsed["channel"] != tc.channel {
				t.Fatalf("channel = %v, want %s", parsed["channel"], tc.channel)
			}
			if parsed["provider"] != tc.provider {
				t.Fatalf("provider = %v, want %s", parsed["provider"], tc.provider)
			}
			if parsed["messageId"] != "msg-1" {
				t.Fatalf("messageId = %v, want msg-1", parsed["messageId"])
			}
		})
	}
}

func TestSendNotification_FailureResults(t *testing.T) {
	t.Parallel()

	app := newNotificationTestApp(t, stubSenders(zap.NewNop()), time.Second)

	tests := []struct {
		name    string
		path    string
		body    string
		message string
	}{
		{
			name:    "invalid email",
			path:    "/v1/notifications/email",
			body:    `{"to":"not-an-address","subject":"s","body":"b"}`,
			message: "Validation failed: Invalid recipient email: not-an-address",
		},
		{
			name:    "empty slack text",
			path:    "/v1/notifications/slack?async=true",
			body:    `{"slackChannel":"#general"}`,
			message: "Validation failed: Slack message text cannot be empty",
		},
		{
			name:    "kind mismatch",
			path:    "/v1/notifications/email",
			body:    `{"kind":"sms","phoneNumber":"+19876543210","message":"hi"}`,
			message: "Invalid notification type. Expected EmailNotification.",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			resp, body := performRequest(t, app, http.MethodPost, tc.path, tc.body)
			if resp.StatusCode != fiber.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422, body=%s", resp.StatusCode, string(body))
			}

			parsed := decodeBody(t, body)
			if parsed["success"] != false {
				t.Fatalf("success = %v, want false", parsed["success"])
			}
			if parsed["message"] != tc.message {
				t.Fatalf("message = %v, want %q", parsed["message"], tc.message)
			}
			if _, ok := parsed["messageId"]; ok {
				t.Fatalf("messageId should be omitted on failure, body=%s", string(body))
			}
		})
	}
}

func TestSendNotification_Errors(t *testing.T) {
	t.Parallel()

	senders := stubSenders(zap.NewNop())
	senders[domain.ChannelSlack] = channel.NewSlackSender(blockingSlackProvider{})
	app := newNotificationTestApp(t, senders, 50*time.Millisecond)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		substr string
	}{
		{
			name:   "provider error",
			path:   "/v1/notifications/sms",
			body:   `{"phoneNumber":"+19876543210","message":"code 1234"}`,
			status: fiber.StatusBadGateway,
			substr: "Failed to send SMS via Twilio: Twilio credentials are missing",
		},
		{
			name:   "unknown channel",
			path:   "/v1/notifications/fax",
			body:   `{}`,
			status: fiber.StatusBadRequest,
			substr: "invalid channel",
		},
		{
			name:   "unknown kind",
			path:   "/v1/notifications/email",
			body:   `{"kind":"pigeon"}`,
			status: fiber.StatusBadRequest,
			substr: "invalid kind",
		},
		{
			name:   "malformed body",
			path:   "/v1/notifications/email",
			body:   `{"to":`,
			status: fiber.StatusBadRequest,
			substr: "invalid request body",
		},
		{
			name:   "sync timeout",
			path:   "/v1/notifications/slack",
			body:   `{"slackChannel":"#general","text":"hi"}`,
			status: fiber.StatusGatewayTimeout,
		},
		{
			name:   "async timeout",
			path:   "/v1/notifications/slack?async=true",
			body:   `{"slackChannel":"#general","text":"hi"}`,
			status: fiber.StatusGatewayTimeout,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			resp, body := performRequest(t, app, http.MethodPost, tc.path, tc.body)
			if resp.StatusCode != tc.status {
				t.Fatalf("status = %d, want %d, body=%s", resp.StatusCode, tc.status, string(body))
			}
			if tc.substr != "" && !strings.Contains(string(body), tc.substr) {
				t.Fatalf("body = %s, want substring %q", string(body), tc.substr)
			}
		})
	}
}

func TestSendNotification_UnregisteredChannel(t *testing.T) {
	t.Parallel()

	senders := stubSenders(zap.NewNop())
	delete(senders, domain.ChannelPush)
	app := newNotificationTestApp(t, senders, time.Second)

	resp, body := performRequest(t, app, http.MethodPost, "/v1/notifications/push", `{"token":"t","title":"t","body":"b"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body=%s", resp.StatusCode, string(body))
	}
	if !strings.Contains(string(body), "unsupported channel") {
		t.Fatalf("body = %s, want unsupported channel", string(body))
	}
}

func TestSendNotification_CorrelationIDReachesSenderLogs(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	app := newNotificationTestApp(t, stubSenders(zap.New(core)), time.Second)

	resp, body := performRequest(t, app, http.MethodPost, "/v1/notifications/email",
		`{"to":"user@example.com","subject":"s","body":"b"}`,
		fiber.HeaderXRequestID, "req-42",
	)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", resp.StatusCode, string(body))
	}

	entries := logs.FilterMessage("notification sent").All()
	if len(entries) != 1 {
		t.Fatalf("notification sent logs = %d, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["correlationId"]; got != "req-42" {
		t.Fatalf("correlationId = %v, want req-42", got)
	}
}

func TestNewNotificationHandler_RequiresSenders(t *testing.T) {
	t.Parallel()

	if _, err := NewNotificationHandler(nil, time.Second); err == nil {
		t.Fatal("expected error for empty sender map")
	}
	if _, err := NewNotificationHandler(map[domain.Channel]channel.Sender{domain.ChannelSMS: nil}, time.Second); err == nil {
		t.Fatal("expected error for nil sender")
	}
}

func TestLivez(t *testing.T) {
	t.Parallel()

	app := newNotificationTestApp(t, stubSenders(zap.NewNop()), time.Second)

	resp, body := performRequest(t, app, http.MethodGet, "/livez", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if decodeBody(t, body)["status"] != "ok" {
		t.Fatalf("body = %s, want status ok", string(body))
	}
}
