// Package events defines the domain events emitted by the ledger.
// Events are published after commit, best effort: a publish failure
// never fails the movement that produced it.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/gametech/walletledger/internal/domain/entities"
)

// DomainEvent is the contract every event satisfies.
type DomainEvent interface {
	// EventID is the unique id of this event instance.
	EventID() string
	// EventType is the routing key, e.g. "movement.completed".
	EventType() string
	// OccurredAt is when the event was produced.
	OccurredAt() time.Time
}

// BaseEvent carries the fields shared by all events.
type BaseEvent struct {
	ID   string    `json:"event_id"`
	Type string    `json:"event_type"`
	At   time.Time `json:"occurred_at"`
}

func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) OccurredAt() time.Time { return e.At }

func newBase(eventType string) BaseEvent {
	return BaseEvent{
		ID:   uuid.NewString(),
		Type: eventType,
		At:   time.Now().UTC(),
	}
}

// MovementCompleted is emitted when a movement transaction commits.
type MovementCompleted struct {
	BaseEvent
	TransactionID  string `json:"transaction_id"`
	IdempotencyKey string `json:"idempotency_key"`
	Kind           string `json:"transaction_type"`
	UserID         int64  `json:"user_id"`
	AssetTypeID    int    `json:"asset_type_id"`
	Amount         string `json:"amount"` // decimal string, scale 8
}

// NewMovementCompleted builds the event from a committed transaction.
func NewMovementCompleted(tx *entities.Transaction) MovementCompleted {
	return MovementCompleted{
		BaseEvent:      newBase("movement.completed"),
		TransactionID:  tx.TransactionID,
		IdempotencyKey: tx.IdempotencyKey,
		Kind:           string(tx.Type),
		UserID:         tx.UserID,
		AssetTypeID:    tx.AssetTypeID,
		Amount:         tx.Amount.String(),
	}
}

// WalletCreated is emitted when a user wallet is lazily created by a
// movement.
type WalletCreated struct {
	BaseEvent
	WalletID    int64 `json:"wallet_id"`
	UserID      int64 `json:"user_id"`
	AssetTypeID int   `json:"asset_type_id"`
}

// NewWalletCreated builds the event for a freshly created wallet.
func NewWalletCreated(w *entities.Wallet) WalletCreated {
	return WalletCreated{
		BaseEvent:   newBase("wallet.created"),
		WalletID:    w.ID,
		UserID:      w.UserID,
		AssetTypeID: w.AssetTypeID,
	}
}
