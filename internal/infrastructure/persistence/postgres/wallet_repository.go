package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gametech/walletledger/internal/application/ports"
	"github.com/gametech/walletledger/internal/domain/entities"
	domainErrors "github.com/gametech/walletledger/internal/domain/errors"
)

// Compile-time check
var _ ports.WalletRepository = (*WalletRepository)(nil)

// WalletRepository implements ports.WalletRepository. Balances are
// stored as NUMERIC(20,8) and scanned into shopspring decimals, never
// floats.
type WalletRepository struct {
	pool *pgxpool.Pool
}

// NewWalletRepository creates the repository.
func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{pool: pool}
}

func (r *WalletRepository) getQuerier(ctx context.Context) querier {
	if tx := extractTx(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const walletColumns = `id, user_id, asset_type_id, balance, is_system_wallet, system_wallet_kind, created_at, updated_at`

// Find loads a wallet without locking.
func (r *WalletRepository) Find(ctx context.Context, userID int64, assetTypeID int) (*entities.Wallet, error) {
	q := r.getQuerier(ctx)
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 AND asset_type_id = $2`
	return r.scanWallet(q.QueryRow(ctx, query, userID, assetTypeID))
}

// FindForUpdate loads a wallet under SELECT ... FOR UPDATE. The lock
// blocks until a conflicting holder commits or rolls back; there is
// deliberately no NOWAIT.
func (r *WalletRepository) FindForUpdate(ctx context.Context, userID int64, assetTypeID int) (*entities.Wallet, error) {
	q := r.getQuerier(ctx)
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 AND asset_type_id = $2 FOR UPDATE`
	return r.scanWallet(q.QueryRow(ctx, query, userID, assetTypeID))
}

// Create inserts a wallet and fills in the generated id and
// timestamps. System wallet fields default to false/null for user
// wallets.
func (r *WalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	q := r.getQuerier(ctx)
	query := `
		INSERT INTO wallets (user_id, asset_type_id, balance, is_system_wallet, system_wallet_kind)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	var kind *string
	if wallet.SystemKind != nil {
		s := string(*wallet.SystemKind)
		kind = &s
	}

	err := q.QueryRow(ctx, query,
		wallet.UserID,
		wallet.AssetTypeID,
		wallet.Balance,
		wallet.IsSystemWallet,
		kind,
	).Scan(&wallet.ID, &wallet.CreatedAt, &wallet.UpdatedAt)
	if err != nil {
		return mapWriteError("insert wallet", err)
	}
	return nil
}

// SetBalance writes a wallet's balance. The caller must hold the row
// lock; a check-constraint violation (user wallet driven negative)
// surfaces as an integrity violation.
func (r *WalletRepository) SetBalance(ctx context.Context, walletID int64, balance decimal.Decimal) error {
	q := r.getQuerier(ctx)
	query := `UPDATE wallets SET balance = $2, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, walletID, balance)
	if err != nil {
		return mapWriteError("update wallet balance", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrWalletNotFound
	}
	return nil
}

// ListByUser returns all wallets of one owner ordered by asset type.
func (r *WalletRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.Wallet, error) {
	q := r.getQuerier(ctx)
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 ORDER BY asset_type_id`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query wallets: %w", err)
	}
	defer rows.Close()

	var result []*entities.Wallet
	for rows.Next() {
		w, err := r.scanWallet(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

func (r *WalletRepository) scanWallet(row pgx.Row) (*entities.Wallet, error) {
	var (
		w    entities.Wallet
		kind *string
	)

	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.AssetTypeID,
		&w.Balance,
		&w.IsSystemWallet,
		&kind,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("scan wallet: %w", err)
	}

	if kind != nil {
		k := entities.SystemWalletKind(*kind)
		w.SystemKind = &k
	}
	return &w, nil
}
