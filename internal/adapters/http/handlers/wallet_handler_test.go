package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gametech/walletledger/internal/application/dtos"
	domainerrors "github.com/gametech/walletledger/internal/domain/errors"
)

type stubGetBalance struct {
	executeFunc func(ctx context.Context, query dtos.GetBalanceQuery) (*dtos.WalletBalanceDTO, error)
}

func (s *stubGetBalance) Execute(ctx context.Context, query dtos.GetBalanceQuery) (*dtos.WalletBalanceDTO, error) {
	return s.executeFunc(ctx, query)
}

type stubListAssets struct {
	executeFunc func(ctx context.Context) ([]dtos.AssetTypeDTO, error)
}

func (s *stubListAssets) Execute(ctx context.Context) ([]dtos.AssetTypeDTO, error) {
	return s.executeFunc(ctx)
}

func newWalletRouter(getBalance GetBalanceUseCase, listAssets ListAssetTypesUseCase) *gin.Engine {
	handler := NewWalletHandler(getBalance, listAssets)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestGetBalance_Success(t *testing.T) {
	getBalance := &stubGetBalance{
		executeFunc: func(_ context.Context, query dtos.GetBalanceQuery) (*dtos.WalletBalanceDTO, error) {
			assert.Equal(t, int64(7), query.UserID)
			assert.Equal(t, 1, query.AssetTypeID)
			return &dtos.WalletBalanceDTO{
				UserID:        7,
				AssetTypeID:   1,
				AssetTypeCode: "COINS",
				Balance:       "250.50000000",
			}, nil
		},
	}
	router := newWalletRouter(getBalance, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/wallets/7/balance?asset_type_id=1", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body dtos.WalletBalanceDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "COINS", body.AssetTypeCode)
	assert.Equal(t, "250.50000000", body.Balance)
}

func TestGetBalance_MissingAssetTypeID(t *testing.T) {
	router := newWalletRouter(&stubGetBalance{}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/wallets/7/balance", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetBalance_InvalidUserID(t *testing.T) {
	router := newWalletRouter(&stubGetBalance{}, nil)

	for _, userID := range []string{"0", "-1", "abc"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			"/api/v1/wallets/"+userID+"/balance?asset_type_id=1", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "user_id=%s", userID)
	}
}

func TestGetBalance_WalletNotFound(t *testing.T) {
	getBalance := &stubGetBalance{
		executeFunc: func(_ context.Context, _ dtos.GetBalanceQuery) (*dtos.WalletBalanceDTO, error) {
			return nil, domainerrors.ErrWalletNotFound
		},
	}
	router := newWalletRouter(getBalance, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/wallets/7/balance?asset_type_id=1", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAssetTypes_Success(t *testing.T) {
	listAssets := &stubListAssets{
		executeFunc: func(_ context.Context) ([]dtos.AssetTypeDTO, error) {
			return []dtos.AssetTypeDTO{
				{ID: 1, Code: "COINS", DisplayName: "Coins", IsActive: true},
				{ID: 2, Code: "GEMS", DisplayName: "Gems", IsActive: true},
			}, nil
		},
	}
	router := newWalletRouter(nil, listAssets)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		AssetTypes []dtos.AssetTypeDTO `json:"asset_types"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.AssetTypes, 2)
}
