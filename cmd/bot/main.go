package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/support-bot/internal/api/http"
	"github.com/spec-kit/support-bot/internal/api/http/handlers"
	"github.com/spec-kit/support-bot/internal/config"
	"github.com/spec-kit/support-bot/internal/core"
	"github.com/spec-kit/support-bot/internal/events"
	"github.com/spec-kit/support-bot/internal/observability"
	"github.com/spec-kit/support-bot/internal/persistence"
	"github.com/spec-kit/support-bot/internal/service"
	"github.com/spec-kit/support-bot/internal/transport/telegram"
	"github.com/spec-kit/support-bot/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Telegram.BotToken == "" {
		log.Fatal("BOT_TOKEN is not set")
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	state := core.New(core.Options{})
	store := persistence.NewSnapshotStore(cfg.Snapshot.DataFile, logger)
	state.Restore(store.Load())
	state.SeedRoster(cfg.Roster.AdminID, cfg.Roster.OperatorIDs)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	snapshots := worker.NewSnapshotWorker(state, store, metrics, logger)
	if err := snapshots.Start(cfg.Snapshot.IntervalMinutes); err != nil {
		logger.Fatal("failed to start snapshot worker", zap.Error(err))
	}

	bot, err := telegram.NewBot(cfg.Telegram.BotToken, cfg.Telegram.PollTimeoutSeconds, logger)
	if err != nil {
		logger.Fatal("failed to connect telegram", zap.Error(err))
	}

	supportService := service.NewSupportService(service.SupportDependencies{
		Core:       state,
		Dispatcher: dispatcher,
		Snapshots:  snapshots,
		Metrics:    metrics,
		Logger:     logger,
	})
	operatorService := service.NewOperatorService(service.OperatorDependencies{
		Core:       state,
		Notifier:   bot,
		Dispatcher: dispatcher,
		Snapshots:  snapshots,
		Logger:     logger,
	})
	adminService := service.NewAdminService(service.AdminDependencies{
		Core:       state,
		Notifier:   bot,
		Dispatcher: dispatcher,
		Snapshots:  snapshots,
		Metrics:    metrics,
		Logger:     logger,
	})
	notificationService := service.NewNotificationService(service.NotificationDependencies{
		Core:       state,
		Notifier:   bot,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	notificationService.RegisterHandlers()
	notificationService.AnnounceRestart()

	router := telegram.NewRouter(telegram.RouterDependencies{
		Bot:       bot,
		Core:      state,
		Support:   supportService,
		Operators: operatorService,
		Admin:     adminService,
		Snapshots: snapshots,
		Logger:    logger,
	})
	go bot.Run(ctx, router)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, 10*time.Second)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store),
		Ops:    handlers.NewOpsHandler(state, metrics),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	snapshots.Stop()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
