package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplychain/backend/internal/domain/procurement"
	"github.com/supplychain/backend/internal/domain/shared"
	"github.com/supplychain/backend/internal/interfaces/http/dto"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_HandleError(t *testing.T) {
	var h BaseHandler

	t.Run("not found sentinel maps to 404", func(t *testing.T) {
		c, rec := newTestContext(t)

		h.HandleError(c, shared.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		resp := decodeResponse(t, rec)
		assert.False(t, resp.Success)
		assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	})

	t.Run("concurrency conflict maps to 409", func(t *testing.T) {
		c, rec := newTestContext(t)

		h.HandleError(c, shared.ErrConcurrencyConflict)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "CONCURRENCY_CONFLICT", decodeResponse(t, rec).Error.Code)
	})

	t.Run("insufficient stock maps to 422", func(t *testing.T) {
		c, rec := newTestContext(t)

		h.HandleError(c, shared.ErrInsufficientStock)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "INSUFFICIENT_STOCK", decodeResponse(t, rec).Error.Code)
	})

	t.Run("invalid transition maps to 422 with details", func(t *testing.T) {
		c, rec := newTestContext(t)

		err := procurement.NewInvalidTransitionError("approve",
			procurement.StatusDraft, procurement.StatusSubmitted)
		h.HandleError(c, err)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, "INVALID_TRANSITION", resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "approve")
		assert.Contains(t, resp.Error.Message, "DRAFT")
	})

	t.Run("unknown error maps to 500 without leaking details", func(t *testing.T) {
		c, rec := newTestContext(t)

		h.HandleError(c, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
		assert.NotContains(t, resp.Error.Message, "pq:")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, rec := newTestContext(t)

		h.HandleError(c, nil)

		assert.Empty(t, rec.Body.String())
	})
}

func TestParseIDParam(t *testing.T) {
	c, _ := newTestContext(t)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	_, ok := parseIDParam(c, "id")
	assert.False(t, ok)

	c.Params = gin.Params{{Key: "id", Value: "7f0c3a1e-94c4-4ff1-9d5c-8c5a2f67a001"}}
	id, ok := parseIDParam(c, "id")
	assert.True(t, ok)
	assert.Equal(t, "7f0c3a1e-94c4-4ff1-9d5c-8c5a2f67a001", id.String())
}
