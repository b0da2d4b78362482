// Package entities holds the ledger domain model: asset types, wallets,
// transactions and ledger entries. Monetary amounts are fixed-point
// decimals (precision 20, scale 8) and are never represented as floats.
package entities

import "time"

// AssetType identifies a kind of virtual asset (e.g. COINS, GEMS).
// Asset types are provisioned out of band and never deleted while
// referenced.
type AssetType struct {
	ID          int
	Code        string // unique, case-sensitive, <= 50 chars
	DisplayName string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
