// Package handlers contains the HTTP handlers for the REST API.
//
// A handler binds the request into a command or query DTO, invokes the
// use case, and maps the result (or domain error) back to HTTP.
package handlers

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/gametech/walletledger/internal/adapters/http/common"
)

var setupOnce sync.Once

// SetupValidator registers the custom validators with gin's binding
// engine. Safe to call more than once.
func SetupValidator() {
	setupOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			// Report field names by their json tag, not the Go name.
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				return name
			})

			_ = v.RegisterValidation("asset_code", validateAssetCode)
			_ = v.RegisterValidation("money_amount", validateMoneyAmount)
		}
	})
}

// validateAssetCode accepts any non-empty code up to 50 characters.
// Codes are opaque and case-sensitive; whether a code is provisioned
// is the engine's call, answered as a domain error, not a binding
// failure.
func validateAssetCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	return len(code) >= 1 && len(code) <= 50
}

// validateMoneyAmount accepts a non-negative decimal string with at
// most 8 fractional digits. Positivity is enforced by the engine.
var moneyPattern = regexp.MustCompile(`^\d+(\.\d{1,8})?$`)

func validateMoneyAmount(fl validator.FieldLevel) bool {
	return moneyPattern.MatchString(fl.Field().String())
}

// HandleValidationErrors converts binding failures into the 422 shape.
func HandleValidationErrors(c *gin.Context, err error) {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		fields := make(map[string]string, len(validationErrors))
		for _, fieldErr := range validationErrors {
			fields[fieldErr.Field()] = validationMessage(fieldErr)
		}
		common.ValidationErrors(c, fields)
		return
	}

	// Malformed JSON and type mismatches land here.
	common.ValidationError(c, "body", "invalid request body: "+err.Error())
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "too short (minimum: " + fe.Param() + ")"
	case "max":
		return "too long (maximum: " + fe.Param() + ")"
	case "uuid":
		return "invalid UUID format"
	case "asset_code":
		return "invalid asset code (1 to 50 characters)"
	case "money_amount":
		return "invalid amount format (use a decimal like '100.50')"
	default:
		return "invalid value"
	}
}

// BindJSON binds the JSON body into req. Returns false after writing
// the 422 response when binding fails.
func BindJSON[T any](c *gin.Context, req *T) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		HandleValidationErrors(c, err)
		return false
	}
	return true
}

// BindQuery binds the query string into req.
func BindQuery[T any](c *gin.Context, req *T) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		HandleValidationErrors(c, err)
		return false
	}
	return true
}

// BindURI binds path parameters into req.
func BindURI[T any](c *gin.Context, req *T) bool {
	if err := c.ShouldBindUri(req); err != nil {
		HandleValidationErrors(c, err)
		return false
	}
	return true
}

// PaginationParams are the offset/limit query parameters of list
// endpoints.
type PaginationParams struct {
	Offset int `form:"offset" binding:"omitempty,min=0"`
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
}
