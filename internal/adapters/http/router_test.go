package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gametech/walletledger/internal/adapters/http/common"
	"github.com/gametech/walletledger/internal/application/dtos"
)

type stubMovement struct {
	result *dtos.TransactionDTO
	err    error
}

func (s *stubMovement) Execute(_ context.Context, _ dtos.MovementCommand) (*dtos.TransactionDTO, error) {
	return s.result, s.err
}

func testRouterConfig() *RouterConfig {
	config := DefaultRouterConfig()
	config.RateLimitEnabled = false
	return config
}

func TestRouter_HealthEndpoints(t *testing.T) {
	router := NewRouter(testRouterConfig())

	for _, path := range []string{"/health", "/health/live"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRouter_ReadyWithoutDatabase(t *testing.T) {
	router := NewRouter(testRouterConfig())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router := NewRouter(testRouterConfig())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "walletledger_http_requests_in_flight")
}

func TestRouter_NoRouteShape(t *testing.T) {
	router := NewRouter(testRouterConfig())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	require.Equal(t, http.StatusNotFound, w.Code)

	var body common.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, common.CodeNotFound, body.Error)
	assert.Equal(t, "/api/v1/nope", body.Details["path"])
	assert.Equal(t, "GET", body.Details["method"])
}

func TestRouter_MovementRouteWired(t *testing.T) {
	movement := &stubMovement{
		result: &dtos.TransactionDTO{
			TransactionID:   "8f14e45f-ea2a-4f4c-b1d2-0242ac120003",
			TransactionType: "TOPUP",
			Status:          "COMPLETED",
		},
	}
	router := NewRouterBuilder(testRouterConfig()).
		WithTransactionUseCases(&TransactionUseCases{
			Topup: movement,
			Bonus: movement,
			Spend: movement,
		}).
		Build()

	body := `{
		"idempotency_key": "router-test-1",
		"user_id": 42,
		"asset_type": "COINS",
		"amount": "10.00"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/topup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "COMPLETED")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_EchoesClientRequestID(t *testing.T) {
	router := NewRouter(testRouterConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "client-supplied-id", w.Header().Get("X-Request-ID"))
}

func TestRouter_CustomPrefix(t *testing.T) {
	config := testRouterConfig()
	config.APIPrefix = "/api/v2"
	router := NewRouterBuilder(config).
		WithTransactionUseCases(&TransactionUseCases{Topup: &stubMovement{}}).
		Build()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v2/transactions/topup", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
