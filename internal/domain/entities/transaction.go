package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the kind of a monetary movement.
type TransactionType string

const (
	TransactionTypeTopup TransactionType = "TOPUP" // treasury -> user
	TransactionTypeSpend TransactionType = "SPEND" // user -> revenue
	TransactionTypeBonus TransactionType = "BONUS" // marketing -> user
)

// IsValid checks if the transaction type is one of the implemented kinds.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeTopup, TransactionTypeSpend, TransactionTypeBonus:
		return true
	default:
		return false
	}
}

// TransactionStatus is the lifecycle state of a movement.
//
// State machine:
//
//	create(PENDING) ──┬──► COMPLETED  (terminal)
//	                  └──► FAILED     (terminal)
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// IsValid checks if the status is in the allowed set.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status permits no further transitions.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed
}

// Transaction is a single movement event and the unit of idempotency.
// TransactionID is the externally visible identifier (a UUID);
// IdempotencyKey is the caller-supplied deduplication key. Both are
// globally unique.
type Transaction struct {
	ID             int64
	TransactionID  string
	IdempotencyKey string
	Type           TransactionType
	UserID         int64
	AssetTypeID    int
	Amount         decimal.Decimal // strictly > 0
	Status         TransactionStatus
	Metadata       map[string]any // optional, opaque to the engine
	ErrorMessage   *string        // set iff Status == FAILED
	CreatedAt      time.Time
	CompletedAt    *time.Time // set iff Status == COMPLETED
}

// IsCompleted reports whether the movement committed.
func (t *Transaction) IsCompleted() bool {
	return t.Status == TransactionStatusCompleted
}
