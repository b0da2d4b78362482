package dtos

// ============================================
// Queries (read operations)
// ============================================

// GetBalanceQuery fetches one wallet balance.
type GetBalanceQuery struct {
	UserID      int64 `json:"user_id" validate:"required,gt=0"`
	AssetTypeID int   `json:"asset_type_id" validate:"required,gt=0"`
}

// ============================================
// Response DTOs
// ============================================

// WalletBalanceDTO is the balance query response shape.
type WalletBalanceDTO struct {
	UserID        int64  `json:"user_id"`
	AssetTypeID   int    `json:"asset_type_id"`
	AssetTypeCode string `json:"asset_type_code"`
	Balance       string `json:"balance"`
}

// AssetTypeDTO is an asset type in API form.
type AssetTypeDTO struct {
	ID          int    `json:"id"`
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
	IsActive    bool   `json:"is_active"`
}
