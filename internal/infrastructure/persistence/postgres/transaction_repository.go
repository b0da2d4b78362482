package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gametech/walletledger/internal/application/ports"
	"github.com/gametech/walletledger/internal/domain/entities"
	domainErrors "github.com/gametech/walletledger/internal/domain/errors"
)

// Compile-time check
var _ ports.TransactionRepository = (*TransactionRepository)(nil)

// TransactionRepository implements ports.TransactionRepository.
// Metadata round-trips through a JSONB column.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates the repository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

func (r *TransactionRepository) getQuerier(ctx context.Context) querier {
	if tx := extractTx(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const transactionColumns = `id, transaction_id, idempotency_key, transaction_type, user_id,
	asset_type_id, amount, status, metadata, error_message, created_at, completed_at`

// Create inserts a PENDING transaction and fills in the generated id
// and created_at. The unique constraints on transaction_id and
// idempotency_key are the authoritative idempotency guard; violations
// surface as ErrIntegrityViolation.
func (r *TransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	q := r.getQuerier(ctx)
	query := `
		INSERT INTO transactions (transaction_id, idempotency_key, transaction_type, user_id, asset_type_id, amount, status, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		tx.TransactionID,
		tx.IdempotencyKey,
		string(tx.Type),
		tx.UserID,
		tx.AssetTypeID,
		tx.Amount,
		string(tx.Status),
		tx.Metadata,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return mapWriteError("insert transaction", err)
	}
	return nil
}

// FindByTransactionID loads a transaction by its external UUID.
func (r *TransactionRepository) FindByTransactionID(ctx context.Context, transactionID string) (*entities.Transaction, error) {
	q := r.getQuerier(ctx)
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1`
	return r.scanTransaction(q.QueryRow(ctx, query, transactionID))
}

// FindByIdempotencyKey loads a transaction by its idempotency key.
func (r *TransactionRepository) FindByIdempotencyKey(ctx context.Context, key string) (*entities.Transaction, error) {
	q := r.getQuerier(ctx)
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE idempotency_key = $1`
	return r.scanTransaction(q.QueryRow(ctx, query, key))
}

// MarkCompleted transitions the transaction to COMPLETED and stamps
// completed_at.
func (r *TransactionRepository) MarkCompleted(ctx context.Context, transactionID string) error {
	q := r.getQuerier(ctx)
	query := `
		UPDATE transactions SET status = $2, completed_at = NOW()
		WHERE transaction_id = $1 AND status = $3
	`

	tag, err := q.Exec(ctx, query, transactionID,
		string(entities.TransactionStatusCompleted),
		string(entities.TransactionStatusPending))
	if err != nil {
		return mapWriteError("complete transaction", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrTransactionNotFound
	}
	return nil
}

// MarkFailed transitions the transaction to FAILED with the reason.
// Used best effort after a rollback, so a missing row is reported but
// not fatal to the caller.
func (r *TransactionRepository) MarkFailed(ctx context.Context, transactionID string, reason string) error {
	q := r.getQuerier(ctx)
	query := `
		UPDATE transactions SET status = $2, error_message = $3
		WHERE transaction_id = $1 AND status = $4
	`

	tag, err := q.Exec(ctx, query, transactionID,
		string(entities.TransactionStatusFailed),
		reason,
		string(entities.TransactionStatusPending))
	if err != nil {
		return mapWriteError("fail transaction", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrTransactionNotFound
	}
	return nil
}

// ListByUser returns a user's transactions, newest first.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*entities.Transaction, error) {
	q := r.getQuerier(ctx)
	query := `
		SELECT ` + transactionColumns + ` FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		OFFSET $2 LIMIT $3
	`

	rows, err := q.Query(ctx, query, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var result []*entities.Transaction
	for rows.Next() {
		tx, err := r.scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	return result, rows.Err()
}

func (r *TransactionRepository) scanTransaction(row pgx.Row) (*entities.Transaction, error) {
	var (
		tx         entities.Transaction
		txType     string
		status     string
	)

	err := row.Scan(
		&tx.ID,
		&tx.TransactionID,
		&tx.IdempotencyKey,
		&txType,
		&tx.UserID,
		&tx.AssetTypeID,
		&tx.Amount,
		&status,
		&tx.Metadata,
		&tx.ErrorMessage,
		&tx.CreatedAt,
		&tx.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}

	tx.Type = entities.TransactionType(txType)
	tx.Status = entities.TransactionStatus(status)
	return &tx, nil
}
