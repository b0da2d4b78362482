package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gametech/walletledger/internal/adapters/http/common"
	"github.com/gametech/walletledger/internal/application/dtos"
)

// GetBalanceUseCase fetches one wallet balance.
type GetBalanceUseCase interface {
	Execute(ctx context.Context, query dtos.GetBalanceQuery) (*dtos.WalletBalanceDTO, error)
}

// ListAssetTypesUseCase lists the known asset types.
type ListAssetTypesUseCase interface {
	Execute(ctx context.Context) ([]dtos.AssetTypeDTO, error)
}

// WalletHandler serves wallet balance and asset type lookups.
type WalletHandler struct {
	getBalance GetBalanceUseCase
	listAssets ListAssetTypesUseCase
}

// NewWalletHandler creates a WalletHandler.
func NewWalletHandler(getBalance GetBalanceUseCase, listAssets ListAssetTypesUseCase) *WalletHandler {
	return &WalletHandler{
		getBalance: getBalance,
		listAssets: listAssets,
	}
}

// UserIDParam is the user id path parameter.
type UserIDParam struct {
	UserID int64 `uri:"user_id" json:"user_id" binding:"required,gt=0"`
}

// BalanceQueryParams is the required asset selector of the balance
// endpoint.
type BalanceQueryParams struct {
	AssetTypeID int `form:"asset_type_id" json:"asset_type_id" binding:"required,gt=0"`
}

// GetBalance returns the balance of one user wallet. A wallet that was
// never credited answers 404, not a zero balance.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	var params UserIDParam
	if !BindURI(c, &params) {
		return
	}

	var query BalanceQueryParams
	if !BindQuery(c, &query) {
		return
	}

	result, err := h.getBalance.Execute(c.Request.Context(), dtos.GetBalanceQuery{
		UserID:      params.UserID,
		AssetTypeID: query.AssetTypeID,
	})
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListAssetTypes returns the active asset types.
func (h *WalletHandler) ListAssetTypes(c *gin.Context) {
	result, err := h.listAssets.Execute(c.Request.Context())
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset_types": result})
}

// RegisterRoutes registers the wallet and asset routes.
//
// Routes:
//   - GET /wallets/:user_id/balance?asset_type_id=N
//   - GET /assets
func (h *WalletHandler) RegisterRoutes(router *gin.RouterGroup) *gin.RouterGroup {
	wallets := router.Group("/wallets")
	wallets.GET("/:user_id/balance", h.GetBalance)

	router.GET("/assets", h.ListAssetTypes)

	return wallets
}
