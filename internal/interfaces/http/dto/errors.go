package dto

import (
	"net/http"
	"strings"
)

// Error codes produced by the HTTP layer itself
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall through to the prefix rules in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeInternal:     http.StatusInternalServerError,

	// Resource errors
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"PRODUCT_IN_USE":       http.StatusConflict,
	"SUPPLIER_IN_USE":      http.StatusConflict,

	// Auth errors
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,
	"FORBIDDEN":           http.StatusForbidden,

	// Business rule violations -> 422 Unprocessable Entity
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INVALID_TRANSITION": http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,
	"SUPPLIER_INACTIVE":  http.StatusUnprocessableEntity,
	"ALREADY_RECEIVED":   http.StatusUnprocessableEntity,
	"QUANTITY_EXCEEDED":  http.StatusUnprocessableEntity,
	"NO_ITEMS":           http.StatusUnprocessableEntity,
	"ITEM_NOT_FOUND":     http.StatusUnprocessableEntity,

	// Input errors
	"INVALID_PASSWORD": http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Validation-style codes (INVALID_*) default to 400, everything
// unrecognized to 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
