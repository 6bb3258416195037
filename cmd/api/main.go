package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/az-solve/shop-support/internal/api/http"
	"github.com/az-solve/shop-support/internal/api/http/handlers"
	"github.com/az-solve/shop-support/internal/auth"
	"github.com/az-solve/shop-support/internal/config"
	"github.com/az-solve/shop-support/internal/events"
	"github.com/az-solve/shop-support/internal/mailer"
	"github.com/az-solve/shop-support/internal/observability"
	"github.com/az-solve/shop-support/internal/persistence"
	"github.com/az-solve/shop-support/internal/repository"
	"github.com/az-solve/shop-support/internal/service"
	"github.com/az-solve/shop-support/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	ticketRepo := repository.NewTicketRepository(pg.PoolHandle())
	ticketRepo = repository.NewCachedTicketRepository(ticketRepo, redis.Client, cfg.Redis.ListCacheTTL, logger)

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP, logger)
	notificationWorker := worker.NewNotificationWorker(
		smtpMailer,
		cfg.Notification.Workers,
		cfg.Notification.QueueSize,
		logger,
		metrics,
	)
	notificationWorker.Start()

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, notificationWorker, logger, cfg.Support)
	notificationService.RegisterHandlers()

	ticketService := service.NewTicketService(ticketRepo, dispatcher, logger)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewMiddleware(tokenManager)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Auth:           handlers.NewAuthHandler(tokenManager, cfg.Auth),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	notificationWorker.Stop()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
