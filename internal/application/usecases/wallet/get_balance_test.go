package wallet

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gametech/walletledger/internal/application/dtos"
	"github.com/gametech/walletledger/internal/domain/entities"
	"github.com/gametech/walletledger/internal/domain/errors"
)

// Mock repositories

type mockWalletRepo struct {
	findFunc func(ctx context.Context, userID int64, assetTypeID int) (*entities.Wallet, error)
}

func (m *mockWalletRepo) Find(ctx context.Context, userID int64, assetTypeID int) (*entities.Wallet, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, userID, assetTypeID)
	}
	return nil, errors.ErrWalletNotFound
}

func (m *mockWalletRepo) FindForUpdate(ctx context.Context, userID int64, assetTypeID int) (*entities.Wallet, error) {
	return m.Find(ctx, userID, assetTypeID)
}

func (m *mockWalletRepo) Create(ctx context.Context, wallet *entities.Wallet) error { return nil }

func (m *mockWalletRepo) SetBalance(ctx context.Context, walletID int64, balance decimal.Decimal) error {
	return nil
}

func (m *mockWalletRepo) ListByUser(ctx context.Context, userID int64) ([]*entities.Wallet, error) {
	return nil, nil
}

type mockAssetRepo struct {
	findByIDFunc func(ctx context.Context, id int) (*entities.AssetType, error)
	listFunc     func(ctx context.Context) ([]*entities.AssetType, error)
}

func (m *mockAssetRepo) FindByCode(ctx context.Context, code string) (*entities.AssetType, error) {
	return nil, errors.ErrAssetUnknown
}

func (m *mockAssetRepo) FindByID(ctx context.Context, id int) (*entities.AssetType, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errors.ErrAssetUnknown
}

func (m *mockAssetRepo) List(ctx context.Context) ([]*entities.AssetType, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func TestGetBalance_Success(t *testing.T) {
	walletRepo := &mockWalletRepo{
		findFunc: func(_ context.Context, userID int64, assetTypeID int) (*entities.Wallet, error) {
			assert.Equal(t, int64(42), userID)
			assert.Equal(t, 1, assetTypeID)
			return &entities.Wallet{
				ID:          5,
				UserID:      42,
				AssetTypeID: 1,
				Balance:     decimal.RequireFromString("123.45000000"),
			}, nil
		},
	}
	assetRepo := &mockAssetRepo{
		findByIDFunc: func(_ context.Context, id int) (*entities.AssetType, error) {
			return &entities.AssetType{ID: 1, Code: "COINS"}, nil
		},
	}
	uc := NewGetBalanceUseCase(walletRepo, assetRepo)

	dto, err := uc.Execute(context.Background(), dtos.GetBalanceQuery{UserID: 42, AssetTypeID: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(42), dto.UserID)
	assert.Equal(t, "COINS", dto.AssetTypeCode)
	assert.Equal(t, "123.45000000", dto.Balance)
}

func TestGetBalance_WalletNotFound(t *testing.T) {
	uc := NewGetBalanceUseCase(&mockWalletRepo{}, &mockAssetRepo{})

	_, err := uc.Execute(context.Background(), dtos.GetBalanceQuery{UserID: 42, AssetTypeID: 1})

	assert.True(t, errors.IsNotFound(err))
}

func TestListAssetTypes(t *testing.T) {
	assetRepo := &mockAssetRepo{
		listFunc: func(_ context.Context) ([]*entities.AssetType, error) {
			return []*entities.AssetType{
				{ID: 1, Code: "COINS", IsActive: true},
				{ID: 2, Code: "GEMS", IsActive: true},
			}, nil
		},
	}
	uc := NewListAssetTypesUseCase(assetRepo)

	assets, err := uc.Execute(context.Background())

	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "COINS", assets[0].Code)
}
