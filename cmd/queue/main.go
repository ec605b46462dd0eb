package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"meetapp/config"
	"meetapp/internal/adapters/email"
	"meetapp/internal/adapters/queue"
	"meetapp/internal/domain"
	"meetapp/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailProvider,
		FromAddress: cfg.MailFromAddress,
		FromName:    cfg.MailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkip,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	redisClient := queue.NewRedisClient(cfg.RedisURL)
	defer redisClient.Close()
	jobs := queue.NewRedisQueue(redisClient, cfg.QueuePrefix, logger)

	handlers := map[string]domain.JobHandler{
		domain.SubscriptionMailJobKey: services.NewSubscriptionMailHandler(emailService),
	}

	var wg sync.WaitGroup
	for key, handler := range handlers {
		wg.Go(func() {
			if err := jobs.Process(ctx, key, handler); err != nil {
				logger.Error("consumer stopped", "job", key, "err", err)
			}
		})
	}
	wg.Wait()
	logger.Info("queue worker stopped")
}
