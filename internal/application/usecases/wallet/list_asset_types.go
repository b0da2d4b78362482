package wallet

import (
	"context"
	"fmt"

	"github.com/gametech/walletledger/internal/application/dtos"
	"github.com/gametech/walletledger/internal/application/ports"
)

// ListAssetTypesUseCase returns the provisioned asset types.
type ListAssetTypesUseCase struct {
	assetRepo ports.AssetTypeRepository
}

// NewListAssetTypesUseCase creates the use case.
func NewListAssetTypesUseCase(assetRepo ports.AssetTypeRepository) *ListAssetTypesUseCase {
	return &ListAssetTypesUseCase{assetRepo: assetRepo}
}

// Execute lists all asset types.
func (uc *ListAssetTypesUseCase) Execute(ctx context.Context) ([]dtos.AssetTypeDTO, error) {
	assets, err := uc.assetRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list asset types: %w", err)
	}
	return dtos.ToAssetTypeDTOList(assets), nil
}
