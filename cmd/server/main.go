package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	httpAdapter "github.com/knishioka/simple-bookkeeping-sub007/internal/adapter/http"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/adapter/http/handler"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/adapter/http/middleware"
	postgresRepo "github.com/knishioka/simple-bookkeeping-sub007/internal/adapter/repository/postgres"
	redisRepo "github.com/knishioka/simple-bookkeeping-sub007/internal/adapter/repository/redis"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/classify"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/infrastructure/config"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/infrastructure/logger"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/infrastructure/metrics"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/infrastructure/postgres"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/infrastructure/redis"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if cfg.MigrationsPath != "" {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	ruleRepo := postgresRepo.NewRuleRepository(pool)
	templateRepo := postgresRepo.NewTemplateRepository(pool)
	journalRepo := postgresRepo.NewJournalRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()
	appMetrics := metrics.New()

	// Initialize classification pipeline
	var suggester classify.Suggester
	if cfg.AIEnabled {
		gemini, err := classify.NewGeminiSuggester(ctx, cfg.GeminiModel, cfg.AITimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize gemini suggester")
		}
		suggester = gemini
		log.Info().Str("model", cfg.GeminiModel).Msg("ai classification enabled")
	}
	classifier := classify.New(suggester)

	tolerance, err := decimal.NewFromString(cfg.DuplicateTolerance)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.DuplicateTolerance).Msg("invalid duplicate tolerance")
	}
	detector := &classify.DuplicateDetector{Tolerance: tolerance}

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen, cache, cfg.ChartCacheTTL)
	journalUC := usecase.NewJournalUseCase(journalRepo, txManager, idGen)
	ruleUC := usecase.NewRuleUseCase(ruleRepo, idGen)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo, accountRepo, cfg.PaymentTermDays, appMetrics)
	importUC := usecase.NewImportUseCase(
		accountRepo, ruleRepo, templateRepo, journalRepo,
		txManager, classifier, detector, idGen, retrier, appMetrics,
		log, cfg.ImportMaxRows,
	)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	journalHandler := handler.NewJournalHandler(journalUC)
	importHandler := handler.NewImportHandler(importUC, cfg.ImportDateFormat)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	ruleHandler := handler.NewRuleHandler(ruleUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Rate limiter with background eviction of idle client buckets
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst, cfg.RateLimitIdleTTL)
	rateLimiter.Start()
	defer rateLimiter.Stop()

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   accountHandler,
		JournalHandler:   journalHandler,
		ImportHandler:    importHandler,
		LedgerHandler:    ledgerHandler,
		RuleHandler:      ruleHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      rateLimiter,
		Logger:           log,
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

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
