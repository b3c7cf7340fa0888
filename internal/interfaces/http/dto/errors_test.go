package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"PRODUCT_IN_USE", http.StatusConflict},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"TOKEN_EXPIRED", http.StatusUnauthorized},
		{"ACCOUNT_DEACTIVATED", http.StatusForbidden},
		{"FORBIDDEN", http.StatusForbidden},
		{"INVALID_STATE", http.StatusUnprocessableEntity},
		{"INVALID_TRANSITION", http.StatusUnprocessableEntity},
		{"INSUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{"INVALID_QUANTITY", http.StatusBadRequest},
		{"INVALID_RATING", http.StatusBadRequest},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a", "b"}, 41, 2, 20)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(41), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("NOT_FOUND", "Product not found", "req-1")

	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Nil(t, resp.Data)
}
