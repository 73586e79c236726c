package main

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thiagodifaria/Begriff/internal/application/usecase"
	"github.com/thiagodifaria/Begriff/internal/domain/fraud"
	"github.com/thiagodifaria/Begriff/internal/domain/port"
	"github.com/thiagodifaria/Begriff/internal/infrastructure/blockchain"
	"github.com/thiagodifaria/Begriff/internal/infrastructure/config"
	"github.com/thiagodifaria/Begriff/internal/infrastructure/gateway"
	"github.com/thiagodifaria/Begriff/internal/infrastructure/generative"
	"github.com/thiagodifaria/Begriff/internal/infrastructure/messaging"
	"github.com/thiagodifaria/Begriff/internal/infrastructure/openbanking"
	"github.com/thiagodifaria/Begriff/internal/infrastructure/postgres"
	"github.com/thiagodifaria/Begriff/internal/presentation/rest"
	"github.com/thiagodifaria/Begriff/pkg/auth"
	pkgkafka "github.com/thiagodifaria/Begriff/pkg/kafka"
	"github.com/thiagodifaria/Begriff/pkg/observability"
	pkgpostgres "github.com/thiagodifaria/Begriff/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slog.SetDefault(logger)

	logger.Info("starting begriff", "http_port", cfg.HTTPPort, "environment", cfg.Environment)

	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: "begriff",
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer shutdown(ctx)
		}
	}

	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: "begriff"})
	if err != nil {
		logger.Warn("failed to initialize metrics, continuing without metrics", "error", err)
		metricsHandler = nil
	}

	// The pre-trained scoring artifacts are mandatory; without them the
	// service cannot fulfil its purpose.
	scoringCtx, err := fraud.LoadScoringContext(cfg.ModelDir)
	if err != nil {
		logger.Error("failed to load scoring artifacts", "dir", cfg.ModelDir, "error", err)
		os.Exit(1)
	}
	logger.Info("scoring artifacts loaded", "dir", cfg.ModelDir, "detectors", len(scoringCtx.Detectors()))

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, pkgpostgres.Config{URL: cfg.DatabaseURL})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Messaging.
	producer := pkgkafka.NewProducer(pkgkafka.Config{Brokers: cfg.KafkaBrokers})
	defer producer.Close()
	publisher := messaging.NewKafkaPublisher(producer, cfg.KafkaTopic, logger)

	// Auth.
	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		Expiration: cfg.JWTExpiration,
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// Infrastructure adapters.
	analysisRepo := postgres.NewAnalysisRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	twinRepo := postgres.NewTwinRepository(pool)
	legacyClient := gateway.NewLegacyClient(cfg.LegacyGatewayURL)
	auditor := blockchain.NewHashAuditor(logger)
	provider := openbanking.NewMockProvider(logger)

	var narrator port.NarrativeGenerator
	if cfg.NarrativeAPIURL != "" {
		narrator = generative.NewNarrativeClient(cfg.NarrativeAPIURL, cfg.NarrativeAPIKey)
	} else {
		logger.Info("no narrative API configured, using stub narrator")
		narrator = generative.NewStubNarrator(logger)
	}

	// Domain services and use cases.
	pipeline := fraud.NewPipeline(scoringCtx, logger)
	runAnalysisUC := usecase.NewRunAnalysis(analysisRepo, transactionRepo, publisher, pipeline, narrator, legacyClient, auditor, logger)
	getHistoryUC := usecase.NewGetHistory(analysisRepo)
	getAnalysisUC := usecase.NewGetAnalysis(analysisRepo)
	registerUC := usecase.NewRegisterUser(userRepo, publisher)
	authenticateUC := usecase.NewAuthenticateUser(userRepo, jwtService)
	syncUC := usecase.NewSyncBankData(provider, transactionRepo)
	simulateUC := usecase.NewSimulateTwin(twinRepo, func() *rand.Rand {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	})
	listTwinsUC := usecase.NewListTwins(twinRepo)

	// HTTP surface.
	handler := rest.NewRouter(rest.RouterConfig{
		Auth:     rest.NewAuthHandler(registerUC, authenticateUC, logger),
		Analysis: rest.NewAnalysisHandler(runAnalysisUC, getHistoryUC, getAnalysisUC, logger),
		OpenBanking: rest.NewOpenBankingHandler(syncUC, logger),
		Twins:    rest.NewTwinHandler(simulateUC, listTwinsUC, logger),
		Health: rest.NewHealthHandler(logger, func(ctx context.Context) error {
			return pkgpostgres.HealthCheck(ctx, pool)
		}),
		MetricsHandler: metricsHandler,
		JWTService:     jwtService,
		RateLimiter:    rest.NewRateLimiter(cfg.RateLimitPerMin),
		Logger:         logger,
	})

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("HTTP server error", "error", err)
	}

	logger.Info("shutting down begriff")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("begriff stopped")
}
