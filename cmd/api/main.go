package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/campus-desk/internal/api/http"
	"github.com/spec-kit/campus-desk/internal/api/http/handlers"
	"github.com/spec-kit/campus-desk/internal/auth"
	"github.com/spec-kit/campus-desk/internal/config"
	"github.com/spec-kit/campus-desk/internal/directory"
	"github.com/spec-kit/campus-desk/internal/events"
	"github.com/spec-kit/campus-desk/internal/feed"
	"github.com/spec-kit/campus-desk/internal/observability"
	"github.com/spec-kit/campus-desk/internal/persistence"
	"github.com/spec-kit/campus-desk/internal/service"
	"github.com/spec-kit/campus-desk/internal/store"
	"github.com/spec-kit/campus-desk/internal/worker"
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

	storage, err := persistence.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open durable storage", zap.Error(err))
	}
	defer storage.Close()

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	sessionStore := store.NewSessionStore(ctx, storage, logger)
	domainStore := store.NewDomainStore(ctx, storage, logger, cfg.App.SeedData)

	var verifier auth.Verifier = auth.AllowAll{}
	if cfg.Auth.Mode == "local" {
		verifier = auth.NewLocal(func(_ context.Context, email string) string {
			emp, ok := domainStore.EmployeeByEmail(email)
			if !ok {
				return ""
			}
			return emp.PasswordHash
		})
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	sessionService := service.NewSessionService(sessionStore, verifier, tokens, dispatcher)
	workspaceService := service.NewWorkspaceService(domainStore, dispatcher)

	var directoryClient directory.Client
	if cfg.Directory.EndpointURL != "" {
		directoryClient = directory.NewHTTPClient(cfg.Directory.EndpointURL, cfg.Directory.Timeout())
	}
	directoryService := service.NewDirectoryService(domainStore, directoryClient, dispatcher, cfg.Auth.BcryptCost)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	if cfg.Feed.Enabled {
		worker.StartFeed(ctx, feed.NewSimulator(workspaceService, dispatcher, logger, cfg.Feed))
	}

	authMiddleware := auth.NewAuthMiddleware(tokens, sessionStore)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, storage, metrics),
		Session:        handlers.NewSessionHandler(sessionService),
		Workspace:      handlers.NewWorkspaceHandler(workspaceService),
		Employees:      handlers.NewEmployeesHandler(directoryService, workspaceService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
