package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/gametech/walletledger/internal/domain/errors"
)

// txKey keys the open transaction in a context.
type txKey struct{}

// injectTx stores a transaction in the context. Used by UnitOfWork to
// hand the transaction to repositories.
func injectTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// extractTx returns the transaction from the context, or nil.
func extractTx(ctx context.Context) pgx.Tx {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	if !ok {
		return nil
	}
	return tx
}

// hasTx reports whether the context carries a transaction.
func hasTx(ctx context.Context) bool {
	return extractTx(ctx) != nil
}

// querier abstracts over pool and transaction so repositories work in
// both modes.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgreSQL error codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"

	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// isPgError reports whether err is a PostgreSQL error with the code.
func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == code
}

// isUniqueViolation reports whether err is a UNIQUE constraint
// violation, optionally on a specific constraint.
func isUniqueViolation(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != pgUniqueViolation {
		return false
	}
	if constraintName != "" {
		return strings.Contains(pgErr.ConstraintName, constraintName)
	}
	return true
}

// isIntegrityError reports whether err is any constraint violation
// (unique, foreign key, check, not-null).
func isIntegrityError(err error) bool {
	return isPgError(err, pgUniqueViolation) ||
		isPgError(err, pgForeignKeyViolation) ||
		isPgError(err, pgCheckViolation) ||
		isPgError(err, pgNotNullViolation)
}

// isSerializationFailure reports a serialization failure or deadlock.
func isSerializationFailure(err error) bool {
	return isPgError(err, pgSerializationFailure) || isPgError(err, pgDeadlockDetected)
}

// isRetryableError reports whether the operation may be retried:
// serialization failures, deadlocks and connection errors.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if isSerializationFailure(err) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08 - Connection Exception
		return strings.HasPrefix(pgErr.Code, "08")
	}
	return false
}

// mapWriteError translates a store write error to the domain taxonomy:
// constraint violations become ErrIntegrityViolation so the engine can
// run its duplicate-resolution path; everything else becomes ErrStore.
func mapWriteError(op string, err error) error {
	if isIntegrityError(err) {
		return fmt.Errorf("%s: %v: %w", op, err, domainErrors.ErrIntegrityViolation)
	}
	return fmt.Errorf("%s: %v: %w", op, err, domainErrors.ErrStore)
}
