package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gametech/walletledger/internal/adapters/http/common"
)

func newRateLimitedRouter(limit int) *gin.Engine {
	router := gin.New()
	router.Use(RateLimit(&RateLimitConfig{
		Limit:  limit,
		Window: time.Minute,
		KeyFunc: func(c *gin.Context) string {
			return "fixed-key"
		},
	}))
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimit_AllowsWithinBudget(t *testing.T) {
	router := newRateLimitedRouter(3)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimit_RejectsOverBudget(t *testing.T) {
	router := newRateLimitedRouter(2)

	for i := 0; i < 2; i++ {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var body common.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, common.CodeTooManyRequests, body.Error)
}

func TestRateLimit_SetsBudgetHeaders(t *testing.T) {
	router := newRateLimitedRouter(5)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
}

func TestRateLimit_IndependentKeys(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(&RateLimitConfig{
		Limit:  1,
		Window: time.Minute,
		KeyFunc: func(c *gin.Context) string {
			return c.GetHeader("X-Client")
		},
	}))
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRequest(http.MethodGet, "/", nil)
	first.Header.Set("X-Client", "a")
	w1 := httptest.NewRecorder()
	router.ServeHTTP(w1, first)
	assert.Equal(t, http.StatusOK, w1.Code)

	second := httptest.NewRequest(http.MethodGet, "/", nil)
	second.Header.Set("X-Client", "b")
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, second)
	assert.Equal(t, http.StatusOK, w2.Code)

	third := httptest.NewRequest(http.MethodGet, "/", nil)
	third.Header.Set("X-Client", "a")
	w3 := httptest.NewRecorder()
	router.ServeHTTP(w3, third)
	assert.Equal(t, http.StatusTooManyRequests, w3.Code)
}

func TestRateLimiter_ResetsAfterWindow(t *testing.T) {
	limiter := newRateLimiter(&RateLimitConfig{
		Limit:  1,
		Window: 10 * time.Millisecond,
		KeyFunc: func(c *gin.Context) string {
			return "k"
		},
	})

	allowed, _, _ := limiter.allow("k")
	assert.True(t, allowed)

	allowed, _, _ = limiter.allow("k")
	assert.False(t, allowed)

	time.Sleep(15 * time.Millisecond)

	allowed, _, _ = limiter.allow("k")
	assert.True(t, allowed)
}
