// Package errors defines the typed errors the ledger core raises.
// Using typed errors (instead of strings) allows the boundary to map
// each kind to a stable HTTP status without string matching.
//
// Pattern: Sentinel Errors + Custom Error Types
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the movement protocol and wallet queries.
var (
	// ErrAssetUnknown - the requested asset code does not exist.
	ErrAssetUnknown = errors.New("unknown asset type")

	// ErrSystemWalletMissing - a required system wallet (treasury,
	// marketing, revenue) has not been provisioned for the asset.
	ErrSystemWalletMissing = errors.New("system wallet missing")

	// ErrInsufficientFunds - the source wallet balance is below the
	// requested amount.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrWalletNotFound - balance query on a wallet that does not exist.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrTransactionNotFound - lookup of a transaction that does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrDuplicateTransaction - the idempotency key collided with a
	// concurrent insert and no prior transaction row is visible.
	ErrDuplicateTransaction = errors.New("duplicate transaction")

	// ErrIntegrityViolation - the store rejected a write because of a
	// unique or check constraint. The engine decides whether this is a
	// benign idempotency race or a real duplicate.
	ErrIntegrityViolation = errors.New("integrity violation")

	// ErrStore - any other persistence failure.
	ErrStore = errors.New("store error")
)

// DomainError wraps an error with a machine-readable code and a
// human-readable message while preserving the error chain.
type DomainError struct {
	Code    string // e.g. "INSUFFICIENT_FUNDS"
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{Code: code, Message: message, Err: err}
}

// Convenience constructors for the protocol error kinds. Each carries
// the matching sentinel so callers can branch with errors.Is.

// NewAssetUnknown builds the error for an unresolvable asset code.
func NewAssetUnknown(code string) *DomainError {
	return NewDomainError("ASSET_UNKNOWN",
		fmt.Sprintf("asset type %s not found", code), ErrAssetUnknown)
}

// NewSystemWalletMissing builds the error for an unprovisioned system wallet.
func NewSystemWalletMissing(kind, assetCode string) *DomainError {
	return NewDomainError("SYSTEM_WALLET_MISSING",
		fmt.Sprintf("%s wallet not found for asset %s", kind, assetCode), ErrSystemWalletMissing)
}

// NewInsufficientFunds builds the error for a failed balance check.
func NewInsufficientFunds(balance, required string) *DomainError {
	return NewDomainError("INSUFFICIENT_FUNDS",
		fmt.Sprintf("insufficient funds: balance %s, required %s", balance, required), ErrInsufficientFunds)
}

// NewDuplicateTransaction builds the error for an idempotency key conflict.
func NewDuplicateTransaction(key string) *DomainError {
	return NewDomainError("DUPLICATE_TRANSACTION",
		fmt.Sprintf("transaction with idempotency key %s already exists", key), ErrDuplicateTransaction)
}

// ValidationError represents a request-shape failure detected before the
// engine runs.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
}

// Helper predicates for boundary mapping.

// IsAssetUnknown reports whether err is an unknown-asset error.
func IsAssetUnknown(err error) bool { return errors.Is(err, ErrAssetUnknown) }

// IsSystemWalletMissing reports whether err is a missing-system-wallet error.
func IsSystemWalletMissing(err error) bool { return errors.Is(err, ErrSystemWalletMissing) }

// IsInsufficientFunds reports whether err is an insufficient-funds error.
func IsInsufficientFunds(err error) bool { return errors.Is(err, ErrInsufficientFunds) }

// IsNotFound reports whether err is a wallet or transaction lookup miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrWalletNotFound) || errors.Is(err, ErrTransactionNotFound)
}

// IsDuplicateTransaction reports whether err is a duplicate idempotency key.
func IsDuplicateTransaction(err error) bool { return errors.Is(err, ErrDuplicateTransaction) }

// IsIntegrityViolation reports whether err originated from a store
// constraint violation.
func IsIntegrityViolation(err error) bool { return errors.Is(err, ErrIntegrityViolation) }

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}
