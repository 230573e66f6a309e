package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/kursadbilgin/notification-dispatch/internal/channel"
	"github.com/kursadbilgin/notification-dispatch/internal/config"
	"github.com/kursadbilgin/notification-dispatch/internal/domain"
	"github.com/kursadbilgin/notification-dispatch/internal/handler"
	"github.com/kursadbilgin/notification-dispatch/internal/observability"
	"github.com/kursadbilgin/notification-dispatch/internal/provider"
	"github.com/kursadbilgin/notification-dispatch/internal/transport"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()
	executor := channel.NewPoolExecutor(cfg.AsyncConcurrency)

	senders, err := buildSenders(cfg, logger, metrics, executor)
	if err != nil {
		logger.Fatal("sender initialization failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:               "notification-dispatch",
		DisableStartupMessage: true,
		ErrorHandler:          transport.ErrorHandler(logger),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(metrics.HTTPMiddleware())

	handler.RegisterHealthRoutes(app)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	if err := handler.RegisterNotificationRoutes(app, senders, cfg.SendTimeout); err != nil {
		logger.Fatal("route registration failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("notification-dispatch api started",
			zap.Int("port", cfg.APIPort),
			zap.String("slackDelivery", cfg.SlackDelivery),
			zap.Int("asyncConcurrency", cfg.AsyncConcurrency),
		)
		return app.Listen(fmt.Sprintf(":%d", cfg.APIPort))
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		executor.Wait()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
	logger.Info("notification-dispatch api stopped")
}

func buildSenders(cfg *config.Config, logger *zap.Logger, metrics *observability.Metrics, executor channel.Executor) (map[domain.Channel]channel.Sender, error) {
	opts := []channel.Option{
		channel.WithLogger(logger),
		channel.WithMetrics(metrics),
		channel.WithExecutor(executor),
	}

	var slackProvider provider.SlackProvider = provider.NewSlackWebhookStub(cfg.SlackWebhookURL, logger)
	if cfg.SlackDelivery == config.SlackDeliveryWebhook {
		webhook, err := provider.NewWebhookSlackProvider(cfg.SlackWebhookURL, logger)
		if err != nil {
			return nil, fmt.Errorf("slack webhook provider: %w", err)
		}
		slackProvider = webhook
	}

	return map[domain.Channel]channel.Sender{
		domain.ChannelEmail: channel.NewEmailSender(provider.NewSendGridEmailProvider(cfg.SendGridAPIKey, logger), opts...),
		domain.ChannelSMS: channel.NewSMSSender(
			provider.NewTwilioSMSProvider(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, logger),
			opts...,
		),
		domain.ChannelPush: channel.NewPushSender(
			provider.NewFirebasePushProvider(cfg.FirebaseProjectID, cfg.FirebaseKeyPath, logger),
			opts...,
		),
		domain.ChannelSlack: channel.NewSlackSender(slackProvider, opts...),
	}, nil
}
