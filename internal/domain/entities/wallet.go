package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemWalletKind names a bookkeeping pool owned by the platform.
type SystemWalletKind string

const (
	SystemWalletTreasury  SystemWalletKind = "TREASURY"  // funds top-ups, may run negative
	SystemWalletMarketing SystemWalletKind = "MARKETING" // funds bonuses
	SystemWalletRevenue   SystemWalletKind = "REVENUE"   // receives spends
)

// Reserved owner ids for system wallets. User ids are strictly positive,
// so ordering wallet locks by ascending (asset, owner) always places the
// system wallet first.
const (
	TreasuryUserID  int64 = -1
	MarketingUserID int64 = -2
	RevenueUserID   int64 = -3
)

// SystemUserID returns the reserved owner id for a system wallet kind.
func (k SystemWalletKind) SystemUserID() int64 {
	switch k {
	case SystemWalletTreasury:
		return TreasuryUserID
	case SystemWalletMarketing:
		return MarketingUserID
	case SystemWalletRevenue:
		return RevenueUserID
	default:
		return 0
	}
}

// IsValid checks if the system wallet kind is one of the known pools.
func (k SystemWalletKind) IsValid() bool {
	switch k {
	case SystemWalletTreasury, SystemWalletMarketing, SystemWalletRevenue:
		return true
	default:
		return false
	}
}

// Wallet is a (owner, asset) balance. User wallets are created lazily on
// the first movement that credits them; system wallets are provisioned
// out of band and must exist for every asset before any movement.
type Wallet struct {
	ID             int64
	UserID         int64 // negative for system wallets
	AssetTypeID    int
	Balance        decimal.Decimal // NUMERIC(20,8)
	IsSystemWallet bool
	SystemKind     *SystemWalletKind // nil for user wallets
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsSystem reports whether this wallet is a platform bookkeeping pool.
func (w *Wallet) IsSystem() bool {
	return w.IsSystemWallet
}

// CanCover reports whether the wallet balance covers the given amount.
// The check is exact decimal comparison, no rounding.
func (w *Wallet) CanCover(amount decimal.Decimal) bool {
	return w.Balance.GreaterThanOrEqual(amount)
}

// MayGoNegative reports whether the wallet is allowed to hold a negative
// balance. Only system wallets may: the treasury funds top-ups by running
// negative.
func (w *Wallet) MayGoNegative() bool {
	return w.IsSystemWallet
}
