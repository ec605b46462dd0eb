package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"meetapp/config"
	_ "meetapp/docs"
	"meetapp/internal/adapters/auth"
	"meetapp/internal/adapters/queue"
	"meetapp/internal/adapters/storage"
	httpdelivery "meetapp/internal/delivery/http"
	"meetapp/internal/delivery/http/controllers"
	"meetapp/internal/repository/postgres"
	"meetapp/internal/services"
)

// @title Meetapp API
// @version 1.0
// @description Meetup scheduling API: organizers publish meetups, attendees subscribe to them.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return err
	}
	if err := postgres.RunMigrations(cfg.DBUrl, cfg.MigrationsPath, logger); err != nil {
		return err
	}

	redisClient := queue.NewRedisClient(cfg.RedisURL)
	defer redisClient.Close()
	jobs := queue.NewRedisQueue(redisClient, cfg.QueuePrefix, logger)

	fileStorage, err := storage.New(ctx, storage.Config{
		Provider:  cfg.StorageProvider,
		UploadDir: cfg.UploadDir,
		BaseURL:   cfg.FilesURL(),
		S3: storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Prefix:          "banners/",
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			PublicURL:       cfg.S3PublicURL,
		},
	})
	if err != nil {
		return err
	}

	userRepo := postgres.NewUserRepository(db)
	meetupRepo := postgres.NewMeetupRepository(db)
	subscriptionRepo := postgres.NewSubscriptionRepository(db)
	fileRepo := postgres.NewFileRepository(db)

	userService := services.NewUserService(userRepo, auth.NewBcryptHasher(0), auth.NewJWTIssuer(cfg.JWTSecret), cfg.JWTExpiry, cfg.RequestTimeout)
	meetupService := services.NewMeetupService(meetupRepo, cfg.RequestTimeout)
	subscriptionService := services.NewSubscriptionService(meetupRepo, subscriptionRepo, userRepo, jobs, logger, cfg.RequestTimeout)
	fileService := services.NewFileService(fileRepo, fileStorage, cfg.RequestTimeout)

	router := httpdelivery.NewRouter(logger, auth.NewJWTVerifier(cfg.JWTSecret), httpdelivery.Controllers{
		User:         controllers.NewUserController(logger, userService),
		Meetup:       controllers.NewMeetupController(logger, meetupService),
		Subscription: controllers.NewSubscriptionController(logger, subscriptionService),
		File:         controllers.NewFileController(logger, fileService),
	}, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
