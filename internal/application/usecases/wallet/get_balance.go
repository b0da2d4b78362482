// Package wallet holds the read-side use cases over wallets and asset
// types.
package wallet

import (
	"context"
	"fmt"

	"github.com/gametech/walletledger/internal/application/dtos"
	"github.com/gametech/walletledger/internal/application/ports"
)

// GetBalanceUseCase answers the balance query for one (user, asset)
// wallet.
type GetBalanceUseCase struct {
	walletRepo ports.WalletRepository
	assetRepo  ports.AssetTypeRepository
}

// NewGetBalanceUseCase creates the use case.
func NewGetBalanceUseCase(walletRepo ports.WalletRepository, assetRepo ports.AssetTypeRepository) *GetBalanceUseCase {
	return &GetBalanceUseCase{walletRepo: walletRepo, assetRepo: assetRepo}
}

// Execute loads the wallet and its asset type. A wallet that was never
// credited does not exist; that surfaces as errors.ErrWalletNotFound,
// not a zero balance.
func (uc *GetBalanceUseCase) Execute(ctx context.Context, query dtos.GetBalanceQuery) (*dtos.WalletBalanceDTO, error) {
	wallet, err := uc.walletRepo.Find(ctx, query.UserID, query.AssetTypeID)
	if err != nil {
		return nil, fmt.Errorf("find wallet for user %d asset %d: %w", query.UserID, query.AssetTypeID, err)
	}

	asset, err := uc.assetRepo.FindByID(ctx, wallet.AssetTypeID)
	if err != nil {
		return nil, fmt.Errorf("resolve asset %d: %w", wallet.AssetTypeID, err)
	}

	dto := dtos.ToWalletBalanceDTO(wallet, asset)
	return &dto, nil
}
