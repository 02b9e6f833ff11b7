package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/fundflow/internal/adapter/http"
	"github.com/iho/fundflow/internal/adapter/http/handler"
	apimiddleware "github.com/iho/fundflow/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/fundflow/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/fundflow/internal/adapter/repository/redis"
	"github.com/iho/fundflow/internal/infrastructure/auth"
	"github.com/iho/fundflow/internal/infrastructure/config"
	"github.com/iho/fundflow/internal/infrastructure/eventpublisher"
	"github.com/iho/fundflow/internal/infrastructure/logger"
	"github.com/iho/fundflow/internal/infrastructure/logging"
	"github.com/iho/fundflow/internal/infrastructure/metrics"
	"github.com/iho/fundflow/internal/infrastructure/postgres"
	"github.com/iho/fundflow/internal/infrastructure/redis"
	"github.com/iho/fundflow/internal/usecase"
)

func main() {
	// Bootstrap logger until config is loaded
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Run database migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Metrics
	m := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	walletRepo := postgresRepo.NewWalletRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	projectRepo := postgresRepo.NewProjectRepository(pool)
	investmentRepo := postgresRepo.NewInvestmentRepository(pool)
	distributionRepo := postgresRepo.NewDistributionRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	retrier := postgresRepo.NewRetrier()
	idGen := postgresRepo.NewULIDGenerator()

	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Initialize use cases
	ledgerUC := usecase.NewLedgerUseCase(txManager, walletRepo, txnRepo, outboxRepo, idGen, m)
	fundingUC := usecase.NewFundingUseCase(txManager, walletRepo, txnRepo, outboxRepo, auditRepo, ledgerUC, idGen, m)
	projectUC := usecase.NewProjectUseCase(txManager, projectRepo, idGen)
	investmentUC := usecase.NewInvestmentUseCase(txManager, walletRepo, txnRepo, projectRepo, investmentRepo, outboxRepo, auditRepo, idGen, m)
	profitUC := usecase.NewProfitUseCase(projectRepo, cache)
	distributionUC := usecase.NewDistributionUseCase(projectRepo, investmentRepo, distributionRepo, auditRepo, ledgerUC, retrier, idGen, m)
	reconciliationUC := usecase.NewReconciliationUseCase(walletRepo, txnRepo, projectRepo, investmentRepo)

	// Initialize handlers
	walletHandler := handler.NewWalletHandler(ledgerUC)
	fundingHandler := handler.NewFundingHandler(fundingUC)
	investmentHandler := handler.NewInvestmentHandler(investmentUC)
	projectHandler := handler.NewProjectHandler(projectUC, profitUC)
	distributionHandler := handler.NewDistributionHandler(distributionUC)
	reconciliationHandler := handler.NewReconciliationHandler(reconciliationUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Outbox publisher drains settlement events in the background.
	eventLog := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(eventLog.Logger),
		Logger:     eventLog.Logger,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
	})
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && publisherCtx.Err() == nil {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		WalletHandler:         walletHandler,
		FundingHandler:        fundingHandler,
		InvestmentHandler:     investmentHandler,
		ProjectHandler:        projectHandler,
		DistributionHandler:   distributionHandler,
		ReconciliationHandler: reconciliationHandler,
		HealthHandler:         healthHandler,
		IdempotencyStore:      idempotencyStore,
		JWTManager:            jwtManager,
		AuthEnabled:           cfg.AuthEnabled,
		Metrics:               m,
		RateLimiter:           apimiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m),
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
