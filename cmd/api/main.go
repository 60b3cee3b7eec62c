package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/port/core"
	accountUseCase "github.com/amirhossein-jamali/banking-ledger/internal/domain/usecase/account"
	transactionUseCase "github.com/amirhossein-jamali/banking-ledger/internal/domain/usecase/transaction"

	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/repository"
	timeProvider "github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger, err := logger.NewZapLogger(logger.Config{
		Level:       cfg.Logger.Level,
		Format:      cfg.Logger.Format,
		ServiceName: cfg.Logger.ServiceName,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = appLogger.Flush() }()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("Service stopped with error", map[string]any{"error": err.Error()})
		_ = appLogger.Flush()
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLogger core.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Setup database configuration
	dbConfig, err := database.NewConfig(cfg)
	if err != nil {
		return err
	}

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			appLogger.Warn("Failed to close database", map[string]any{"error": err.Error()})
		}
	}()

	// Run migrations
	if cfg.Database.AutoMigrate {
		migrationMgr := migration.NewMigrationManager(dbManager.DB(), appLogger, tp)
		if err := migrationMgr.MigrateAll(ctx); err != nil {
			return err
		}
	}

	// Metrics
	var recorder core.MetricsRecorder = metrics.NewNoopRecorder()
	var httpRecorder middleware.HTTPRecorder
	var gatherer prometheus.Gatherer
	if cfg.Metrics.Enabled {
		promRecorder := metrics.NewPrometheusRecorder()
		if err := promRecorder.RegisterDBStats(dbManager.SQLDB(), cfg.Database.Database); err != nil {
			return err
		}
		recorder, httpRecorder, gatherer = promRecorder, promRecorder, promRecorder.Registry()
	}

	// The store doubles as the unit of work; repositories join its context-scoped transaction
	store := dbManager.Store()

	// Initialize repositories
	userRepo := repository.NewUserRepository(store, appLogger)
	accountRepo := repository.NewAccountRepository(store, appLogger)
	transactionRepo := repository.NewTransactionRepository(store, appLogger)
	idempotencyRepo := repository.NewIdempotencyRepository(store)

	// Initialize use cases
	accountUseCaseImpl := accountUseCase.NewAccountUseCase(store, userRepo, accountRepo, tp, appLogger)
	transactionUseCaseImpl := transactionUseCase.NewTransactionService(
		store,
		accountRepo,
		transactionRepo,
		idempotencyRepo,
		tp,
		recorder,
		appLogger,
	)

	// Create demo users
	if cfg.Seed.Enabled {
		seeder := migration.NewSeeder(accountUseCaseImpl, transactionUseCaseImpl, appLogger)
		if err := seeder.SeedUsers(ctx, cfg.Seed.Users); err != nil {
			appLogger.Error("Failed to seed users", map[string]any{"error": err.Error()})
		}
	}

	// Initialize API handlers
	handlers := routes.Handlers{
		Transaction: handler.NewTransactionHandler(transactionUseCaseImpl, cfg.Transaction.DefaultPageSize, appLogger),
		Account:     handler.NewAccountHandler(accountUseCaseImpl, appLogger),
		Health:      handler.NewHealthHandler(dbManager, appLogger),
	}

	// Initialize Gin router
	router := gin.New()
	routes.SetupMiddlewares(router, routes.MiddlewareOptions{
		Logger:         appLogger,
		TimeProvider:   tp,
		Recorder:       httpRecorder,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})
	routes.SetupRoutes(router, handlers, routes.MetricsEndpoint{Path: cfg.Metrics.Path, Gatherer: gatherer})

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"address": server.Addr,
			"env":     cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for interrupt signal or a listener failure
	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down server...", nil)

	// Create a deadline to wait for
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
	return nil
}
