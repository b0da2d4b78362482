// Package container wires the application together.
//
// The container is the composition root: configuration, logger, database
// pool, repositories, unit of work, event publisher, use cases and the
// HTTP server are created here and nowhere else.
package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gametech/walletledger/internal/adapters/http"
	"github.com/gametech/walletledger/internal/application/ports"
	"github.com/gametech/walletledger/internal/application/usecases/movement"
	"github.com/gametech/walletledger/internal/application/usecases/transaction"
	"github.com/gametech/walletledger/internal/application/usecases/wallet"
	"github.com/gametech/walletledger/internal/config"
	"github.com/gametech/walletledger/internal/infrastructure/events"
	"github.com/gametech/walletledger/internal/infrastructure/persistence/postgres"
	"github.com/gametech/walletledger/internal/pkg/logger"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Container holds the application's wired components.
type Container struct {
	config *config.Config
	logger *slog.Logger

	pool *pgxpool.Pool

	assetRepo  ports.AssetTypeRepository
	walletRepo ports.WalletRepository
	txRepo     ports.TransactionRepository
	ledgerRepo ports.LedgerRepository

	uow       ports.UnitOfWork
	publisher ports.EventPublisher

	engine *movement.Engine

	topupUC            *movement.TopupUseCase
	bonusUC            *movement.BonusUseCase
	spendUC            *movement.SpendUseCase
	getTransactionUC   *transaction.GetTransactionUseCase
	getByKeyUC         *transaction.GetByIdempotencyKeyUseCase
	listEntriesUC      *transaction.ListEntriesUseCase
	listTransactionsUC *transaction.ListTransactionsUseCase
	getBalanceUC       *wallet.GetBalanceUseCase
	listAssetTypesUC   *wallet.ListAssetTypesUseCase

	httpServer *http.Server
}

// New creates an uninitialized container for the given configuration.
func New(cfg *config.Config) *Container {
	return &Container{config: cfg}
}

// Initialize builds every component in dependency order.
func (c *Container) Initialize(ctx context.Context) error {
	c.initLogger()
	c.logger.Info("initializing container",
		slog.String("environment", c.config.App.Environment))

	if err := c.initDatabase(ctx); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	c.logger.Info("database connected")

	if err := c.initEventPublisher(); err != nil {
		return fmt.Errorf("initialize event publisher: %w", err)
	}

	c.initRepositories()
	c.initUseCases()
	c.initHTTPServer()

	c.logger.Info("container initialization complete")
	return nil
}

func (c *Container) initLogger() {
	c.logger = logger.New(&logger.Config{
		Level:  c.config.Log.Level,
		Format: c.config.Log.Format,
	})
	slog.SetDefault(c.logger)
}

func (c *Container) initDatabase(ctx context.Context) error {
	pool, err := postgres.NewConnectionPool(ctx, c.config.Database.URL, postgres.PoolConfig{
		MaxConns:        c.config.Database.MaxConnections,
		MinConns:        c.config.Database.MinConnections,
		MaxConnLifetime: c.config.Database.MaxConnLifetime,
		MaxConnIdleTime: c.config.Database.MaxConnIdleTime,
	})
	if err != nil {
		return err
	}
	c.pool = pool
	return nil
}

func (c *Container) initEventPublisher() error {
	if !c.config.NATS.Enabled {
		c.publisher = events.NoopPublisher{}
		c.logger.Info("event publishing disabled, using noop publisher")
		return nil
	}

	publisher, err := events.NewNATSPublisher(
		c.config.NATS.URL, c.config.NATS.SubjectPrefix, c.logger)
	if err != nil {
		return err
	}
	c.publisher = publisher
	c.logger.Info("nats publisher connected", slog.String("url", c.config.NATS.URL))
	return nil
}

func (c *Container) initRepositories() {
	c.assetRepo = postgres.NewAssetTypeRepository(c.pool)
	c.walletRepo = postgres.NewWalletRepository(c.pool)
	c.txRepo = postgres.NewTransactionRepository(c.pool)
	c.ledgerRepo = postgres.NewLedgerRepository(c.pool)
	c.uow = postgres.NewUnitOfWork(c.pool)
}

func (c *Container) initUseCases() {
	c.engine = movement.NewEngine(
		c.assetRepo,
		c.walletRepo,
		c.txRepo,
		c.ledgerRepo,
		c.uow,
		c.publisher,
		c.logger,
	)

	c.topupUC = movement.NewTopupUseCase(c.engine)
	c.bonusUC = movement.NewBonusUseCase(c.engine)
	c.spendUC = movement.NewSpendUseCase(c.engine)

	c.getTransactionUC = transaction.NewGetTransactionUseCase(c.txRepo)
	c.getByKeyUC = transaction.NewGetByIdempotencyKeyUseCase(c.txRepo)
	c.listEntriesUC = transaction.NewListEntriesUseCase(c.txRepo, c.ledgerRepo)
	c.listTransactionsUC = transaction.NewListTransactionsUseCase(c.txRepo)

	c.getBalanceUC = wallet.NewGetBalanceUseCase(c.walletRepo, c.assetRepo)
	c.listAssetTypesUC = wallet.NewListAssetTypesUseCase(c.assetRepo)
}

func (c *Container) initHTTPServer() {
	routerConfig := &http.RouterConfig{
		Logger:           c.logger,
		Pool:             c.pool,
		Version:          Version,
		Environment:      c.config.App.Environment,
		APIPrefix:        c.config.App.APIV1Prefix,
		AllowedOrigins:   c.config.CORS.AllowedOrigins,
		RateLimitEnabled: c.config.RateLimit.Enabled,
		RateLimit:        c.config.RateLimit.RequestsPerMinute,
	}

	router := http.NewRouterBuilder(routerConfig).
		WithTransactionUseCases(&http.TransactionUseCases{
			Topup:            c.topupUC,
			Bonus:            c.bonusUC,
			Spend:            c.spendUC,
			GetTransaction:   c.getTransactionUC,
			GetByKey:         c.getByKeyUC,
			ListEntries:      c.listEntriesUC,
			ListTransactions: c.listTransactionsUC,
		}).
		WithWalletUseCases(&http.WalletUseCases{
			GetBalance:     c.getBalanceUC,
			ListAssetTypes: c.listAssetTypesUC,
		}).
		Build()

	serverConfig := &http.ServerConfig{
		Address:         c.config.Server.Address(),
		ReadTimeout:     c.config.Server.ReadTimeout,
		WriteTimeout:    c.config.Server.WriteTimeout,
		IdleTimeout:     c.config.Server.IdleTimeout,
		ShutdownTimeout: c.config.Server.ShutdownTimeout,
		Logger:          c.logger,
	}

	c.httpServer = http.NewServer(serverConfig, router)
}

// Config returns the configuration.
func (c *Container) Config() *config.Config { return c.config }

// Logger returns the application logger.
func (c *Container) Logger() *slog.Logger { return c.logger }

// Pool returns the database connection pool.
func (c *Container) Pool() *pgxpool.Pool { return c.pool }

// HTTPServer returns the HTTP server.
func (c *Container) HTTPServer() *http.Server { return c.httpServer }

// WalletRepository returns the wallet repository.
func (c *Container) WalletRepository() ports.WalletRepository { return c.walletRepo }

// TransactionRepository returns the transaction repository.
func (c *Container) TransactionRepository() ports.TransactionRepository { return c.txRepo }

// UnitOfWork returns the unit of work.
func (c *Container) UnitOfWork() ports.UnitOfWork { return c.uow }

// Run starts the HTTP server and blocks until shutdown.
func (c *Container) Run() error {
	c.logger.Info("starting api server",
		slog.String("version", Version),
		slog.String("environment", c.config.App.Environment),
		slog.String("address", c.config.Server.Address()),
	)

	return c.httpServer.Run()
}

// Shutdown closes every component in reverse dependency order.
func (c *Container) Shutdown(ctx context.Context) error {
	c.logger.Info("shutting down container")

	var errs []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("event publisher close: %w", err))
		}
	}

	if c.pool != nil {
		done := make(chan struct{})
		go func() {
			c.pool.Close()
			close(done)
		}()

		select {
		case <-done:
			c.logger.Info("database connection closed")
		case <-ctx.Done():
			c.logger.Warn("database close timed out")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}

	c.logger.Info("container shutdown complete")
	return nil
}
