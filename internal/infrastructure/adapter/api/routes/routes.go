package routes

import (
	coreport "github.com/amirhossein-jamali/banking-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the HTTP handlers served by the API
type Handlers struct {
	Transaction *handler.TransactionHandler
	Account     *handler.AccountHandler
	Health      *handler.HealthHandler
}

// MetricsEndpoint exposes a Prometheus registry. A nil Gatherer disables the endpoint.
type MetricsEndpoint struct {
	Path     string
	Gatherer prometheus.Gatherer
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, handlers Handlers, metrics MetricsEndpoint) {
	router.GET("/health", handlers.Health.Health)

	if metrics.Gatherer != nil && metrics.Path != "" {
		router.GET(metrics.Path, gin.WrapH(promhttp.HandlerFor(metrics.Gatherer, promhttp.HandlerOpts{})))
	}

	// Every /api route acts on behalf of the caller
	api := router.Group("/api", middleware.Identity())
	{
		// GET /api/account
		api.GET("/account", handlers.Account.GetAccount)

		// POST /api/transactions
		api.POST("/transactions", handlers.Transaction.CreateTransaction)

		// GET /api/transactions?page=&limit=
		api.GET("/transactions", handlers.Transaction.ListTransactions)
	}
}

// MiddlewareOptions carries the collaborators of the global middlewares
type MiddlewareOptions struct {
	Logger         coreport.Logger
	TimeProvider   coreport.TimeProvider
	Recorder       middleware.HTTPRecorder
	AllowedOrigins []string
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, opts MiddlewareOptions) {
	// Apply middlewares in the correct order
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.ErrorHandler(opts.Logger))
	router.Use(middleware.Logger(opts.Logger, opts.TimeProvider))
	if opts.Recorder != nil {
		router.Use(middleware.Metrics(opts.Recorder, opts.TimeProvider))
	}
	router.Use(middleware.CORS(opts.AllowedOrigins))
}
