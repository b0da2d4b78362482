// Package common holds the shared response types for the HTTP layer.
//
// Separate package to avoid import cycles between handlers and the
// router package.
package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/gametech/walletledger/internal/domain/errors"
)

// ErrorBody is the wire shape of every error response.
type ErrorBody struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error codes carried in ErrorBody.Error.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeAssetUnknown    = "ASSET_UNKNOWN"
	CodeSystemWallet    = "SYSTEM_WALLET_MISSING"
	CodeInsufficient    = "INSUFFICIENT_FUNDS"
	CodeNotFound        = "NOT_FOUND"
	CodeDuplicate       = "DUPLICATE_TRANSACTION"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeStore           = "STORE_ERROR"
	CodeInternal        = "INTERNAL_ERROR"
)

// RequestIDHeader is the request id header, echoed on every response.
const RequestIDHeader = "X-Request-ID"

// GetRequestID returns the request id set by the request id middleware.
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(RequestIDHeader); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

// SetRequestID stores the request id in the gin context and echoes it as
// a response header.
func SetRequestID(c *gin.Context, id string) {
	c.Set(RequestIDHeader, id)
	c.Header(RequestIDHeader, id)
}

// Error writes an error response with the given status and body.
func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, ErrorBody{Error: code, Message: message})
}

// ErrorWithDetails writes an error response carrying extra detail fields.
func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details map[string]any) {
	c.JSON(statusCode, ErrorBody{Error: code, Message: message, Details: details})
}

// ValidationError writes a 422 for a request-shape failure on a single field.
func ValidationError(c *gin.Context, field, message string) {
	ErrorWithDetails(c, http.StatusUnprocessableEntity, CodeValidation,
		"request validation failed", map[string]any{
			"field":  field,
			"reason": message,
		})
}

// ValidationErrors writes a 422 carrying one entry per failed field.
func ValidationErrors(c *gin.Context, fields map[string]string) {
	details := make(map[string]any, len(fields))
	for field, reason := range fields {
		details[field] = reason
	}
	ErrorWithDetails(c, http.StatusUnprocessableEntity, CodeValidation,
		"request validation failed", details)
}

// TooManyRequests writes a 429 for rate-limited clients.
func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, CodeTooManyRequests,
		"too many requests, please try again later")
}

// HandleDomainError maps a domain error onto the HTTP status table:
// validation 422, asset/system-wallet/funds 400, lookup misses 404,
// idempotency conflicts 409, everything else 500.
func HandleDomainError(c *gin.Context, err error) {
	var valErr domainerrors.ValidationError
	if errors.As(err, &valErr) {
		ValidationError(c, valErr.Field, valErr.Message)
		return
	}

	switch {
	case domainerrors.IsAssetUnknown(err):
		Error(c, http.StatusBadRequest, CodeAssetUnknown, domainMessage(err))
	case domainerrors.IsSystemWalletMissing(err):
		Error(c, http.StatusBadRequest, CodeSystemWallet, domainMessage(err))
	case domainerrors.IsInsufficientFunds(err):
		Error(c, http.StatusBadRequest, CodeInsufficient, domainMessage(err))
	case domainerrors.IsNotFound(err):
		Error(c, http.StatusNotFound, CodeNotFound, domainMessage(err))
	case domainerrors.IsDuplicateTransaction(err):
		Error(c, http.StatusConflict, CodeDuplicate, domainMessage(err))
	case errors.Is(err, domainerrors.ErrStore), domainerrors.IsIntegrityViolation(err):
		// Never leak store internals past the boundary.
		Error(c, http.StatusInternalServerError, CodeStore, "a storage error occurred")
	default:
		Error(c, http.StatusInternalServerError, CodeInternal, "an unexpected error occurred")
	}
}

// domainMessage prefers the human message of a DomainError over the raw
// error chain text.
func domainMessage(err error) string {
	var domainErr *domainerrors.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}
