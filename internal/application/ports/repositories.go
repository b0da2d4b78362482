// Package ports defines the interfaces the application layer depends
// on. Implementations live in the infrastructure layer.
//
// Pattern: Repository Pattern + Ports & Adapters (Hexagonal Architecture)
package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/gametech/walletledger/internal/domain/entities"
)

// AssetTypeRepository resolves asset codes to asset types.
type AssetTypeRepository interface {
	// FindByCode loads an asset type by its unique code (case-sensitive).
	// Returns errors.ErrAssetUnknown when no row matches.
	FindByCode(ctx context.Context, code string) (*entities.AssetType, error)

	// FindByID loads an asset type by its numeric id.
	FindByID(ctx context.Context, id int) (*entities.AssetType, error)

	// List returns all asset types, active and inactive.
	List(ctx context.Context) ([]*entities.AssetType, error)
}

// WalletRepository stores (owner, asset) balances.
//
// The locking methods only make sense inside a unit of work: the row
// locks they take live until the surrounding transaction commits or
// rolls back.
type WalletRepository interface {
	// Find loads a wallet without locking it. Returns
	// errors.ErrWalletNotFound when no row matches.
	Find(ctx context.Context, userID int64, assetTypeID int) (*entities.Wallet, error)

	// FindForUpdate loads a wallet with SELECT ... FOR UPDATE, blocking
	// until any conflicting row lock is released. Must be called inside
	// a unit of work.
	FindForUpdate(ctx context.Context, userID int64, assetTypeID int) (*entities.Wallet, error)

	// Create inserts a new wallet row and fills in its generated fields.
	// A unique violation on (user_id, asset_type_id) surfaces as
	// errors.ErrIntegrityViolation.
	Create(ctx context.Context, wallet *entities.Wallet) error

	// SetBalance writes the wallet's new balance. The caller must hold
	// the row lock via FindForUpdate.
	SetBalance(ctx context.Context, walletID int64, balance decimal.Decimal) error

	// ListByUser returns all wallets owned by a user.
	ListByUser(ctx context.Context, userID int64) ([]*entities.Wallet, error)
}

// TransactionRepository stores movement transactions.
type TransactionRepository interface {
	// Create inserts a new transaction row. Unique violations on
	// transaction_id or idempotency_key surface as
	// errors.ErrIntegrityViolation.
	Create(ctx context.Context, tx *entities.Transaction) error

	// FindByTransactionID loads a transaction by its external UUID.
	// Returns errors.ErrTransactionNotFound when no row matches.
	FindByTransactionID(ctx context.Context, transactionID string) (*entities.Transaction, error)

	// FindByIdempotencyKey loads a transaction by its idempotency key.
	// Returns errors.ErrTransactionNotFound when no row matches.
	FindByIdempotencyKey(ctx context.Context, key string) (*entities.Transaction, error)

	// MarkCompleted transitions a transaction to COMPLETED and stamps
	// completed_at.
	MarkCompleted(ctx context.Context, transactionID string) error

	// MarkFailed transitions a transaction to FAILED and records the
	// failure reason.
	MarkFailed(ctx context.Context, transactionID string, reason string) error

	// ListByUser returns a user's transactions, newest first.
	ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*entities.Transaction, error)
}

// LedgerRepository stores the append-only double-entry journal.
type LedgerRepository interface {
	// Append inserts both entries of a posting in order. Entries are
	// never updated or deleted afterwards.
	Append(ctx context.Context, entries []*entities.LedgerEntry) error

	// ListByTransaction returns the entries of one transaction in
	// insertion order (debit first).
	ListByTransaction(ctx context.Context, transactionID string) ([]*entities.LedgerEntry, error)

	// ListByWallet returns a wallet's entries, newest first.
	ListByWallet(ctx context.Context, walletID int64, offset, limit int) ([]*entities.LedgerEntry, error)
}
