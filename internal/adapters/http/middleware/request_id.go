// Package middleware contains the HTTP middleware chain: request ids,
// panic recovery, request logging, CORS, rate limiting and metrics.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gametech/walletledger/internal/adapters/http/common"
	"github.com/gametech/walletledger/internal/pkg/logger"
)

// RequestID assigns every request a unique id. A client-provided
// X-Request-ID is honored, otherwise a UUID is generated. The id is
// echoed on the response and attached to the request context so every
// log line of the request carries it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(common.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		common.SetRequestID(c, requestID)

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
