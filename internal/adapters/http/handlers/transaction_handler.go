package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gametech/walletledger/internal/adapters/http/common"
	"github.com/gametech/walletledger/internal/adapters/http/middleware"
	"github.com/gametech/walletledger/internal/application/dtos"
	domainerrors "github.com/gametech/walletledger/internal/domain/errors"
)

// MovementUseCase executes one movement kind (topup, bonus or spend).
type MovementUseCase interface {
	Execute(ctx context.Context, cmd dtos.MovementCommand) (*dtos.TransactionDTO, error)
}

// GetTransactionUseCase fetches a transaction by external id.
type GetTransactionUseCase interface {
	Execute(ctx context.Context, query dtos.GetTransactionQuery) (*dtos.TransactionDTO, error)
}

// GetTransactionByKeyUseCase fetches a transaction by idempotency key.
type GetTransactionByKeyUseCase interface {
	Execute(ctx context.Context, query dtos.GetTransactionByKeyQuery) (*dtos.TransactionDTO, error)
}

// ListEntriesUseCase fetches the ledger entries of a transaction.
type ListEntriesUseCase interface {
	Execute(ctx context.Context, query dtos.GetTransactionQuery) ([]dtos.LedgerEntryDTO, error)
}

// ListTransactionsUseCase lists a user's transactions.
type ListTransactionsUseCase interface {
	Execute(ctx context.Context, query dtos.ListTransactionsQuery) (*dtos.TransactionListDTO, error)
}

// TransactionHandler serves the movement endpoints and transaction
// lookups.
type TransactionHandler struct {
	topup            MovementUseCase
	bonus            MovementUseCase
	spend            MovementUseCase
	getTransaction   GetTransactionUseCase
	getByKey         GetTransactionByKeyUseCase
	listEntries      ListEntriesUseCase
	listTransactions ListTransactionsUseCase
}

// NewTransactionHandler creates a TransactionHandler.
func NewTransactionHandler(
	topup MovementUseCase,
	bonus MovementUseCase,
	spend MovementUseCase,
	getTransaction GetTransactionUseCase,
	getByKey GetTransactionByKeyUseCase,
	listEntries ListEntriesUseCase,
	listTransactions ListTransactionsUseCase,
) *TransactionHandler {
	return &TransactionHandler{
		topup:            topup,
		bonus:            bonus,
		spend:            spend,
		getTransaction:   getTransaction,
		getByKey:         getByKey,
		listEntries:      listEntries,
		listTransactions: listTransactions,
	}
}

// MovementRequest is the shared body of the three movement endpoints.
type MovementRequest struct {
	IdempotencyKey string         `json:"idempotency_key" binding:"required,min=1,max=100"`
	UserID         int64          `json:"user_id" binding:"required,gt=0"`
	AssetType      string         `json:"asset_type" binding:"required,asset_code"`
	Amount         string         `json:"amount" binding:"required,money_amount"`
	Metadata       map[string]any `json:"metadata"`
}

// TransactionIDParam is the transaction id path parameter.
type TransactionIDParam struct {
	ID string `uri:"id" json:"id" binding:"required,uuid"`
}

// Topup credits a user wallet from the treasury.
func (h *TransactionHandler) Topup(c *gin.Context) {
	h.movement(c, h.topup, "TOPUP")
}

// Bonus grants funds from the marketing wallet.
func (h *TransactionHandler) Bonus(c *gin.Context) {
	h.movement(c, h.bonus, "BONUS")
}

// Spend moves funds from the user wallet to revenue.
func (h *TransactionHandler) Spend(c *gin.Context) {
	h.movement(c, h.spend, "SPEND")
}

func (h *TransactionHandler) movement(c *gin.Context, uc MovementUseCase, movementType string) {
	var req MovementRequest
	if !BindJSON(c, &req) {
		middleware.RecordMovement(movementType, "rejected")
		return
	}

	cmd := dtos.MovementCommand{
		IdempotencyKey: req.IdempotencyKey,
		UserID:         req.UserID,
		AssetType:      req.AssetType,
		Amount:         req.Amount,
		Metadata:       req.Metadata,
	}

	result, err := uc.Execute(c.Request.Context(), cmd)
	if err != nil {
		middleware.RecordMovement(movementType, movementOutcome(err))
		common.HandleDomainError(c, err)
		return
	}

	middleware.RecordMovement(movementType, "completed")
	c.JSON(http.StatusOK, result)
}

// movementOutcome classifies a movement failure for metrics: caller
// mistakes are "rejected", everything else "failed".
func movementOutcome(err error) string {
	switch {
	case domainerrors.IsValidation(err),
		domainerrors.IsAssetUnknown(err),
		domainerrors.IsInsufficientFunds(err),
		domainerrors.IsDuplicateTransaction(err):
		return "rejected"
	default:
		return "failed"
	}
}

// GetTransaction returns a transaction by external id.
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	var params TransactionIDParam
	if !BindURI(c, &params) {
		return
	}

	result, err := h.getTransaction.Execute(c.Request.Context(),
		dtos.GetTransactionQuery{TransactionID: params.ID})
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionByKey returns a transaction by idempotency key.
func (h *TransactionHandler) GetTransactionByKey(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		common.ValidationError(c, "key", "idempotency key is required")
		return
	}

	result, err := h.getByKey.Execute(c.Request.Context(),
		dtos.GetTransactionByKeyQuery{IdempotencyKey: key})
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionEntries returns the two ledger entries of a completed
// transaction (empty list for PENDING/FAILED).
func (h *TransactionHandler) GetTransactionEntries(c *gin.Context) {
	var params TransactionIDParam
	if !BindURI(c, &params) {
		return
	}

	entries, err := h.listEntries.Execute(c.Request.Context(),
		dtos.GetTransactionQuery{TransactionID: params.ID})
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction_id": params.ID, "entries": entries})
}

// ListUserTransactions lists a user's transactions, newest first.
func (h *TransactionHandler) ListUserTransactions(c *gin.Context) {
	var params UserIDParam
	if !BindURI(c, &params) {
		return
	}

	var pagination PaginationParams
	if !BindQuery(c, &pagination) {
		return
	}

	result, err := h.listTransactions.Execute(c.Request.Context(), dtos.ListTransactionsQuery{
		UserID: params.UserID,
		Offset: pagination.Offset,
		Limit:  pagination.Limit,
	})
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RegisterRoutes registers the transaction routes.
//
// Routes:
//   - POST /transactions/topup
//   - POST /transactions/bonus
//   - POST /transactions/spend
//   - GET  /transactions/:id
//   - GET  /transactions/:id/entries
//   - GET  /transactions/by-key/:key
//
// The movement limiter, when non-nil, guards only the POST endpoints.
func (h *TransactionHandler) RegisterRoutes(router *gin.RouterGroup, movementLimiter gin.HandlerFunc) {
	transactions := router.Group("/transactions")

	movements := transactions.Group("")
	if movementLimiter != nil {
		movements.Use(movementLimiter)
	}
	movements.POST("/topup", h.Topup)
	movements.POST("/bonus", h.Bonus)
	movements.POST("/spend", h.Spend)

	transactions.GET("/:id", h.GetTransaction)
	transactions.GET("/:id/entries", h.GetTransactionEntries)
	transactions.GET("/by-key/:key", h.GetTransactionByKey)
}

// RegisterUserTransactionsRoute registers the per-user transaction list
// under the wallets group.
func (h *TransactionHandler) RegisterUserTransactionsRoute(walletRoutes *gin.RouterGroup) {
	walletRoutes.GET("/:user_id/transactions", h.ListUserTransactions)
}
