package transaction

import (
	"context"
	"fmt"

	"github.com/gametech/walletledger/internal/application/dtos"
	"github.com/gametech/walletledger/internal/application/ports"
)

// ListTransactionsUseCase returns a user's movement history.
type ListTransactionsUseCase struct {
	txRepo ports.TransactionRepository
}

// NewListTransactionsUseCase creates the use case.
func NewListTransactionsUseCase(txRepo ports.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{txRepo: txRepo}
}

// Execute lists transactions for the user, newest first.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, query dtos.ListTransactionsQuery) (*dtos.TransactionListDTO, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}

	txs, err := uc.txRepo.ListByUser(ctx, query.UserID, query.Offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions for user %d: %w", query.UserID, err)
	}

	return &dtos.TransactionListDTO{
		Transactions: dtos.ToTransactionDTOList(txs),
		Offset:       query.Offset,
		Limit:        limit,
	}, nil
}
