package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/onestep-labs/urban-solve/internal/api/http"
	"github.com/onestep-labs/urban-solve/internal/api/http/handlers"
	"github.com/onestep-labs/urban-solve/internal/auth"
	"github.com/onestep-labs/urban-solve/internal/config"
	"github.com/onestep-labs/urban-solve/internal/events"
	"github.com/onestep-labs/urban-solve/internal/observability"
	"github.com/onestep-labs/urban-solve/internal/persistence"
	"github.com/onestep-labs/urban-solve/internal/repository"
	"github.com/onestep-labs/urban-solve/internal/service"
	"github.com/onestep-labs/urban-solve/internal/worker"
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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	locationRepo := repository.NewLocationRepository(pool)
	problemRepo := repository.NewProblemRepository(pool)
	complaintRepo := repository.NewComplaintRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, userRepo)
	complaintService := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo: complaintRepo,
		LocationRepo:  locationRepo,
		ProblemRepo:   problemRepo,
		Dispatcher:    dispatcher,
	})
	statsService := service.NewStatsService(complaintService, service.NewRedisStatsCache(redis), cfg.RateLimit.StatsCacheTTL(), logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:              handlers.NewAuthHandler(authService),
		Complaints:        handlers.NewComplaintsHandler(complaintService, statsService),
		Admin:             handlers.NewAdminHandler(complaintService, statsService),
		Reference:         handlers.NewReferenceHandler(complaintService),
		AuthMiddleware:    authMiddleware,
		SubmissionLimiter: httptransport.SubmissionRateLimiter(httptransport.NewRedisRateLimitStore(redis), cfg.RateLimit.SubmissionsPerDay, logger),
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
