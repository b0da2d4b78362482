// Package http assembles the gin router and HTTP server for the
// ledger API.
//
// The router is the composition point: middleware chain, probe and
// metrics endpoints, and the versioned API group.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gametech/walletledger/internal/adapters/http/common"
	"github.com/gametech/walletledger/internal/adapters/http/handlers"
	"github.com/gametech/walletledger/internal/adapters/http/middleware"
)

// RouterConfig configures the router assembly.
type RouterConfig struct {
	Logger           *slog.Logger
	Pool             *pgxpool.Pool // for readiness checks
	Version          string
	Environment      string // development, production
	APIPrefix        string // e.g. "/api/v1"
	AllowedOrigins   []string
	RateLimitEnabled bool
	RateLimit        int // requests per minute per client
}

// DefaultRouterConfig is a development configuration.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		Logger:           slog.Default(),
		Version:          "dev",
		Environment:      "development",
		APIPrefix:        "/api/v1",
		AllowedOrigins:   []string{"*"},
		RateLimitEnabled: true,
		RateLimit:        100,
	}
}

// TransactionUseCases bundles the use cases of the transaction handler.
type TransactionUseCases struct {
	Topup            handlers.MovementUseCase
	Bonus            handlers.MovementUseCase
	Spend            handlers.MovementUseCase
	GetTransaction   handlers.GetTransactionUseCase
	GetByKey         handlers.GetTransactionByKeyUseCase
	ListEntries      handlers.ListEntriesUseCase
	ListTransactions handlers.ListTransactionsUseCase
}

// WalletUseCases bundles the use cases of the wallet handler.
type WalletUseCases struct {
	GetBalance     handlers.GetBalanceUseCase
	ListAssetTypes handlers.ListAssetTypesUseCase
}

// RouterBuilder assembles a gin.Engine step by step.
type RouterBuilder struct {
	config       *RouterConfig
	transactions *TransactionUseCases
	wallets      *WalletUseCases
}

// NewRouterBuilder creates a builder with the given config.
func NewRouterBuilder(config *RouterConfig) *RouterBuilder {
	if config == nil {
		config = DefaultRouterConfig()
	}
	return &RouterBuilder{config: config}
}

// WithTransactionUseCases adds the transaction use cases.
func (b *RouterBuilder) WithTransactionUseCases(useCases *TransactionUseCases) *RouterBuilder {
	b.transactions = useCases
	return b
}

// WithWalletUseCases adds the wallet use cases.
func (b *RouterBuilder) WithWalletUseCases(useCases *WalletUseCases) *RouterBuilder {
	b.wallets = useCases
	return b
}

// Build creates the configured gin.Engine.
func (b *RouterBuilder) Build() *gin.Engine {
	if b.config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupValidator()

	// Middleware order: recovery first, then request id so every later
	// stage logs with it.
	router.Use(middleware.Recovery(&middleware.RecoveryConfig{
		Logger:           b.config.Logger,
		EnableStackTrace: b.config.Environment != "production",
	}))
	router.Use(middleware.RequestID())

	corsConfig := middleware.DefaultCORSConfig()
	if b.config.Environment == "production" {
		corsConfig.AllowOrigins = b.config.AllowedOrigins
		corsConfig.AllowCredentials = true
	}
	router.Use(middleware.CORS(corsConfig))

	router.Use(middleware.Logging(&middleware.LoggingConfig{
		Logger:    b.config.Logger,
		SkipPaths: []string{"/health", "/health/live", "/health/ready", "/metrics"},
	}))

	if b.config.RateLimitEnabled {
		limit := b.config.RateLimit
		if limit <= 0 {
			limit = 100
		}
		rateLimitConfig := middleware.DefaultRateLimitConfig()
		rateLimitConfig.Limit = limit
		router.Use(middleware.RateLimit(rateLimitConfig))
	}

	router.Use(middleware.Metrics())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	healthHandler := handlers.NewHealthHandler(b.config.Pool, b.config.Version)
	healthHandler.RegisterRoutes(router)

	prefix := b.config.APIPrefix
	if prefix == "" {
		prefix = "/api/v1"
	}
	v1 := router.Group(prefix)

	var txHandler *handlers.TransactionHandler
	if b.transactions != nil {
		txHandler = handlers.NewTransactionHandler(
			b.transactions.Topup,
			b.transactions.Bonus,
			b.transactions.Spend,
			b.transactions.GetTransaction,
			b.transactions.GetByKey,
			b.transactions.ListEntries,
			b.transactions.ListTransactions,
		)

		var movementLimiter gin.HandlerFunc
		if b.config.RateLimitEnabled {
			movementLimiter = middleware.MovementRateLimit()
		}
		txHandler.RegisterRoutes(v1, movementLimiter)
	}

	if b.wallets != nil {
		walletHandler := handlers.NewWalletHandler(
			b.wallets.GetBalance,
			b.wallets.ListAssetTypes,
		)
		walletRoutes := walletHandler.RegisterRoutes(v1)

		if txHandler != nil {
			txHandler.RegisterUserTransactionsRoute(walletRoutes)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		common.ErrorWithDetails(c, http.StatusNotFound, common.CodeNotFound,
			"endpoint not found", map[string]any{
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			})
	})

	return router
}

// NewRouter builds a router in one call.
func NewRouter(config *RouterConfig) *gin.Engine {
	return NewRouterBuilder(config).Build()
}
