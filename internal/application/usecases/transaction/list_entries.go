package transaction

import (
	"context"
	"fmt"

	"github.com/gametech/walletledger/internal/application/dtos"
	"github.com/gametech/walletledger/internal/application/ports"
)

// ListEntriesUseCase returns the double-entry posting of a transaction.
type ListEntriesUseCase struct {
	txRepo     ports.TransactionRepository
	ledgerRepo ports.LedgerRepository
}

// NewListEntriesUseCase creates the use case.
func NewListEntriesUseCase(txRepo ports.TransactionRepository, ledgerRepo ports.LedgerRepository) *ListEntriesUseCase {
	return &ListEntriesUseCase{txRepo: txRepo, ledgerRepo: ledgerRepo}
}

// Execute loads the entries of one transaction in posting order
// (debit first). The transaction must exist; a COMPLETED one always
// has exactly two entries, a FAILED or replay-pending one has none.
func (uc *ListEntriesUseCase) Execute(ctx context.Context, query dtos.GetTransactionQuery) ([]dtos.LedgerEntryDTO, error) {
	if _, err := uc.txRepo.FindByTransactionID(ctx, query.TransactionID); err != nil {
		return nil, fmt.Errorf("find transaction %s: %w", query.TransactionID, err)
	}

	entries, err := uc.ledgerRepo.ListByTransaction(ctx, query.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	return dtos.ToLedgerEntryDTOList(entries), nil
}
