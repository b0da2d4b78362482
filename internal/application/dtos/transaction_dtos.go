// Package dtos holds the request and response shapes exchanged with the
// HTTP boundary. Amounts cross the boundary as decimal strings; they are
// parsed exactly once, at the edge of the application layer.
package dtos

import "time"

// ============================================
// Commands (write operations)
// ============================================

// MovementCommand is the shared request body of the three movement
// endpoints (topup, bonus, spend).
type MovementCommand struct {
	IdempotencyKey string         `json:"idempotency_key" validate:"required,min=1,max=100"`
	UserID         int64          `json:"user_id" validate:"required,gt=0"`
	AssetType      string         `json:"asset_type" validate:"required,min=1,max=50"`
	Amount         string         `json:"amount" validate:"required"` // decimal string: "100.50000000"
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// ============================================
// Queries (read operations)
// ============================================

// GetTransactionQuery fetches a transaction by its external id.
type GetTransactionQuery struct {
	TransactionID string `json:"transaction_id" validate:"required,uuid"`
}

// GetTransactionByKeyQuery fetches a transaction by idempotency key.
type GetTransactionByKeyQuery struct {
	IdempotencyKey string `json:"idempotency_key" validate:"required,min=1,max=100"`
}

// ListTransactionsQuery lists a user's transactions with pagination.
type ListTransactionsQuery struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
	Offset int   `json:"offset" validate:"min=0"`
	Limit  int   `json:"limit" validate:"min=1,max=100"`
}

// ============================================
// Response DTOs
// ============================================

// TransactionDTO is the movement response shape.
type TransactionDTO struct {
	TransactionID   string         `json:"transaction_id"`
	IdempotencyKey  string         `json:"idempotency_key"`
	TransactionType string         `json:"transaction_type"`
	UserID          int64          `json:"user_id"`
	AssetTypeID     int            `json:"asset_type_id"`
	Amount          string         `json:"amount"`
	Status          string         `json:"status"`
	Metadata        map[string]any `json:"metadata"`
	CreatedAt       time.Time      `json:"created_at"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty"`
}

// TransactionListDTO is the paginated list response.
type TransactionListDTO struct {
	Transactions []TransactionDTO `json:"transactions"`
	Offset       int              `json:"offset"`
	Limit        int              `json:"limit"`
}

// LedgerEntryDTO is one half of a posting in API form.
type LedgerEntryDTO struct {
	ID            int64     `json:"id"`
	TransactionID string    `json:"transaction_id"`
	WalletID      int64     `json:"wallet_id"`
	EntryType     string    `json:"entry_type"`
	Amount        string    `json:"amount"`
	BalanceBefore string    `json:"balance_before"`
	BalanceAfter  string    `json:"balance_after"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}
