package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gametech/walletledger/internal/application/ports"
	"github.com/gametech/walletledger/internal/domain/entities"
)

// Compile-time check
var _ ports.LedgerRepository = (*LedgerRepository)(nil)

// LedgerRepository implements ports.LedgerRepository. The journal is
// append-only; there are no update or delete statements here on
// purpose.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates the repository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

func (r *LedgerRepository) getQuerier(ctx context.Context) querier {
	if tx := extractTx(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const ledgerColumns = `id, transaction_id, wallet_id, entry_type, amount, balance_before, balance_after, description, created_at`

// Append inserts the entries of a posting in order.
func (r *LedgerRepository) Append(ctx context.Context, entries []*entities.LedgerEntry) error {
	q := r.getQuerier(ctx)
	query := `
		INSERT INTO ledger_entries (transaction_id, wallet_id, entry_type, amount, balance_before, balance_after, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	for _, e := range entries {
		err := q.QueryRow(ctx, query,
			e.TransactionID,
			e.WalletID,
			string(e.EntryType),
			e.Amount,
			e.BalanceBefore,
			e.BalanceAfter,
			e.Description,
		).Scan(&e.ID, &e.CreatedAt)
		if err != nil {
			return mapWriteError("insert ledger entry", err)
		}
	}
	return nil
}

// ListByTransaction returns the entries of one transaction in
// insertion order (debit first).
func (r *LedgerRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*entities.LedgerEntry, error) {
	q := r.getQuerier(ctx)
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE transaction_id = $1 ORDER BY id`

	rows, err := q.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("query ledger entries: %w", err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// ListByWallet returns a wallet's entries, newest first.
func (r *LedgerRepository) ListByWallet(ctx context.Context, walletID int64, offset, limit int) ([]*entities.LedgerEntry, error) {
	q := r.getQuerier(ctx)
	query := `
		SELECT ` + ledgerColumns + ` FROM ledger_entries
		WHERE wallet_id = $1
		ORDER BY created_at DESC, id DESC
		OFFSET $2 LIMIT $3
	`

	rows, err := q.Query(ctx, query, walletID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("query ledger entries: %w", err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

func (r *LedgerRepository) scanEntries(rows pgx.Rows) ([]*entities.LedgerEntry, error) {
	var result []*entities.LedgerEntry
	for rows.Next() {
		var (
			e         entities.LedgerEntry
			entryType string
		)
		err := rows.Scan(
			&e.ID,
			&e.TransactionID,
			&e.WalletID,
			&entryType,
			&e.Amount,
			&e.BalanceBefore,
			&e.BalanceAfter,
			&e.Description,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.EntryType = entities.EntryType(entryType)
		result = append(result, &e)
	}
	return result, rows.Err()
}
