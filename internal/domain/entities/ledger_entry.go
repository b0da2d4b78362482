package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType marks which half of a double-entry posting an entry is.
type EntryType string

const (
	EntryTypeDebit  EntryType = "DEBIT"  // source wallet, signed amount -A
	EntryTypeCredit EntryType = "CREDIT" // destination wallet, signed amount +A
)

// IsValid checks if the entry type is DEBIT or CREDIT.
func (t EntryType) IsValid() bool {
	return t == EntryTypeDebit || t == EntryTypeCredit
}

// LedgerEntry is one half of a double-entry posting. Entries are
// append-only: never updated or deleted. For every completed transaction
// exactly two entries exist whose signed amounts sum to zero, and for
// each entry BalanceAfter = BalanceBefore + Amount exactly.
type LedgerEntry struct {
	ID            int64
	TransactionID string // external transaction id
	WalletID      int64
	EntryType     EntryType
	Amount        decimal.Decimal // signed: negative for DEBIT, positive for CREDIT
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Description   string // <= 255 chars
	CreatedAt     time.Time
}

// Balanced verifies the per-entry arithmetic invariant.
func (e *LedgerEntry) Balanced() bool {
	return e.BalanceAfter.Equal(e.BalanceBefore.Add(e.Amount))
}
