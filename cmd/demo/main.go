package main

import (
	"context"
	"log"
	"time"

	"github.com/kursadbilgin/notification-dispatch/internal/channel"
	"github.com/kursadbilgin/notification-dispatch/internal/domain"
	"github.com/kursadbilgin/notification-dispatch/internal/observability"
	"github.com/kursadbilgin/notification-dispatch/internal/provider"
	"go.uber.org/zap"
)

const demoTimeout = 5 * time.Second

type delivery struct {
	sender       channel.Sender
	notification domain.Notification
}

func main() {
	logger, err := observability.NewLogger("info")
	if err != nil {
		log.Fatal("failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync() //nolint:errcheck

	executor := channel.NewPoolExecutor(4)
	opts := []channel.Option{channel.WithLogger(logger), channel.WithExecutor(executor)}

	deliveries := []delivery{
		{
			sender:       channel.NewEmailSender(provider.NewSendGridEmailProvider("SG.1234567890", logger), opts...),
			notification: domain.NewEmail("user@example.com", "Welcome!", "Hello from the notification dispatcher"),
		},
		{
			sender:       channel.NewSMSSender(provider.NewTwilioSMSProvider("AC12345", "auth_token_xyz", "+15551234567", logger), opts...),
			notification: domain.NewSMS("+19876543210", "Your verification code is 1234"),
		},
		{
			sender:       channel.NewPushSender(provider.NewFirebasePushProvider("my-project-id", "/path/to/service-account.json", logger), opts...),
			notification: domain.NewPush("device_token_xyz", "New Alert", "You have a new message"),
		},
		{
			sender: channel.NewSlackSender(
				provider.NewSlackWebhookStub("https://hooks.slack.com/services/T00000000/B00000000/XXXXXXXXXXXX", logger),
				opts...,
			),
			notification: domain.NewSlack("#general", "Deployment successful! Version 1.0.0 is now live.",
				domain.WithUsername("Deploy Bot"),
				domain.WithIconEmoji(":rocket:"),
			),
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), demoTimeout)
	defer cancel()

	futures := make([]*channel.Future, 0, len(deliveries))
	for _, d := range deliveries {
		futures = append(futures, d.sender.SendAsync(ctx, d.notification))
	}

	for i, future := range futures {
		fields := []zap.Field{zap.String("channel", deliveries[i].sender.Channel().String())}

		result, err := future.Await(ctx)
		switch {
		case err != nil:
			logger.Error("notification raised an error", append(fields, zap.Error(err))...)
		case result.Success():
			id, _ := result.MessageID()
			logger.Info("notification sent", append(fields, zap.String("messageId", id))...)
		default:
			logger.Error("notification failed", append(fields, zap.String("reason", result.Message()))...)
		}
	}

	executor.Wait()
}
