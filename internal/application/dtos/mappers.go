package dtos

import (
	"github.com/gametech/walletledger/internal/domain/entities"
)

// ToTransactionDTO converts a domain transaction to its API form.
func ToTransactionDTO(tx *entities.Transaction) TransactionDTO {
	return TransactionDTO{
		TransactionID:   tx.TransactionID,
		IdempotencyKey:  tx.IdempotencyKey,
		TransactionType: string(tx.Type),
		UserID:          tx.UserID,
		AssetTypeID:     tx.AssetTypeID,
		Amount:          tx.Amount.StringFixed(8),
		Status:          string(tx.Status),
		Metadata:        tx.Metadata,
		CreatedAt:       tx.CreatedAt,
		CompletedAt:     tx.CompletedAt,
	}
}

// ToTransactionDTOList converts a slice of transactions.
func ToTransactionDTOList(txs []*entities.Transaction) []TransactionDTO {
	result := make([]TransactionDTO, len(txs))
	for i, tx := range txs {
		result[i] = ToTransactionDTO(tx)
	}
	return result
}

// ToWalletBalanceDTO converts a wallet plus its asset type to the
// balance response shape.
func ToWalletBalanceDTO(w *entities.Wallet, asset *entities.AssetType) WalletBalanceDTO {
	return WalletBalanceDTO{
		UserID:        w.UserID,
		AssetTypeID:   w.AssetTypeID,
		AssetTypeCode: asset.Code,
		Balance:       w.Balance.StringFixed(8),
	}
}

// ToLedgerEntryDTO converts a ledger entry to its API form.
func ToLedgerEntryDTO(e *entities.LedgerEntry) LedgerEntryDTO {
	return LedgerEntryDTO{
		ID:            e.ID,
		TransactionID: e.TransactionID,
		WalletID:      e.WalletID,
		EntryType:     string(e.EntryType),
		Amount:        e.Amount.StringFixed(8),
		BalanceBefore: e.BalanceBefore.StringFixed(8),
		BalanceAfter:  e.BalanceAfter.StringFixed(8),
		Description:   e.Description,
		CreatedAt:     e.CreatedAt,
	}
}

// ToLedgerEntryDTOList converts a slice of ledger entries.
func ToLedgerEntryDTOList(entries []*entities.LedgerEntry) []LedgerEntryDTO {
	result := make([]LedgerEntryDTO, len(entries))
	for i, e := range entries {
		result[i] = ToLedgerEntryDTO(e)
	}
	return result
}

// ToAssetTypeDTO converts an asset type to its API form.
func ToAssetTypeDTO(a *entities.AssetType) AssetTypeDTO {
	return AssetTypeDTO{
		ID:          a.ID,
		Code:        a.Code,
		DisplayName: a.DisplayName,
		IsActive:    a.IsActive,
	}
}

// ToAssetTypeDTOList converts a slice of asset types.
func ToAssetTypeDTOList(assets []*entities.AssetType) []AssetTypeDTO {
	result := make([]AssetTypeDTO, len(assets))
	for i, a := range assets {
		result[i] = ToAssetTypeDTO(a)
	}
	return result
}
