package transaction

import (
	"context"
	"fmt"

	"github.com/gametech/walletledger/internal/application/dtos"
	"github.com/gametech/walletledger/internal/application/ports"
)

// GetByIdempotencyKeyUseCase fetches a transaction by the caller's
// deduplication key. Clients use it to recover the outcome of a
// movement whose response was lost.
type GetByIdempotencyKeyUseCase struct {
	txRepo ports.TransactionRepository
}

// NewGetByIdempotencyKeyUseCase creates the use case.
func NewGetByIdempotencyKeyUseCase(txRepo ports.TransactionRepository) *GetByIdempotencyKeyUseCase {
	return &GetByIdempotencyKeyUseCase{txRepo: txRepo}
}

// Execute loads the transaction for the key.
func (uc *GetByIdempotencyKeyUseCase) Execute(ctx context.Context, query dtos.GetTransactionByKeyQuery) (*dtos.TransactionDTO, error) {
	tx, err := uc.txRepo.FindByIdempotencyKey(ctx, query.IdempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("find transaction by key: %w", err)
	}
	dto := dtos.ToTransactionDTO(tx)
	return &dto, nil
}
