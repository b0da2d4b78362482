// Package transaction holds the read-side use cases over movement
// transactions and their ledger entries.
package transaction

import (
	"context"
	"fmt"

	"github.com/gametech/walletledger/internal/application/dtos"
	"github.com/gametech/walletledger/internal/application/ports"
)

// GetTransactionUseCase fetches a transaction by its external id.
type GetTransactionUseCase struct {
	txRepo ports.TransactionRepository
}

// NewGetTransactionUseCase creates the use case.
func NewGetTransactionUseCase(txRepo ports.TransactionRepository) *GetTransactionUseCase {
	return &GetTransactionUseCase{txRepo: txRepo}
}

// Execute loads the transaction. Not-found propagates as
// errors.ErrTransactionNotFound.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, query dtos.GetTransactionQuery) (*dtos.TransactionDTO, error) {
	tx, err := uc.txRepo.FindByTransactionID(ctx, query.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("find transaction %s: %w", query.TransactionID, err)
	}
	dto := dtos.ToTransactionDTO(tx)
	return &dto, nil
}
