package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/leafscan-service/internal/api/http"
	"github.com/spec-kit/leafscan-service/internal/api/http/handlers"
	"github.com/spec-kit/leafscan-service/internal/auth"
	"github.com/spec-kit/leafscan-service/internal/classifier"
	"github.com/spec-kit/leafscan-service/internal/config"
	"github.com/spec-kit/leafscan-service/internal/events"
	"github.com/spec-kit/leafscan-service/internal/notify"
	"github.com/spec-kit/leafscan-service/internal/observability"
	"github.com/spec-kit/leafscan-service/internal/persistence"
	"github.com/spec-kit/leafscan-service/internal/ratelimit"
	"github.com/spec-kit/leafscan-service/internal/repository"
	"github.com/spec-kit/leafscan-service/internal/service"
	"github.com/spec-kit/leafscan-service/internal/worker"
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
	otpRepo := repository.NewOTPRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	ledger := service.NewOTPLedger(otpRepo, cfg.OTP.CodeLength, cfg.OTP.TTL())
	mailer := notify.NewSMTPMailer(cfg.SMTP, logger)
	limiter := ratelimit.NewSendLimiter(redis.Client, cfg.OTP.MaxSendsPerWindow, cfg.OTP.SendWindow())

	dispatcher := events.NewInMemoryDispatcher(logger)
	service.RegisterAuditSubscribers(dispatcher, logger)

	identityService := service.NewIdentityService(*cfg, service.IdentityDependencies{
		UserRepo:   userRepo,
		Ledger:     ledger,
		Mailer:     mailer,
		Limiter:    limiter,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	reportService := service.NewReportService(reportRepo, dispatcher)
	diagnosisService := service.NewDiagnosisService(classifier.NewHTTPClassifier(cfg.Classifier))

	authMiddleware := auth.NewAuthMiddleware(identityService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(identityService),
		Users:          handlers.NewUsersHandler(identityService),
		Reports:        handlers.NewReportsHandler(reportService),
		Diagnosis:      handlers.NewDiagnosisHandler(diagnosisService),
		AuthMiddleware: authMiddleware,
	})

	janitor := worker.NewJanitor(ledger, cfg.Janitor.Interval(), logger)
	go janitor.Run(ctx)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
