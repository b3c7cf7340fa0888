package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogapp "github.com/supplychain/backend/internal/application/catalog"
)

func newClassifyTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	// Classification is pure computation, no repositories are touched
	h := NewProductHandler(catalogapp.NewProductService(nil, nil, nil))
	engine := gin.New()
	engine.GET("/products/stock/classification", h.ClassifyStock)
	return engine
}

func TestProductHandler_ClassifyStock(t *testing.T) {
	engine := newClassifyTestRouter()

	tests := []struct {
		name   string
		query  string
		level  string
		status string
	}{
		{"empty shelf", "current_stock=0&reorder_point=10", "low", "out-of-stock"},
		{"at reorder point", "current_stock=10&reorder_point=10", "low", "low-stock"},
		{"just above reorder point", "current_stock=11&reorder_point=10", "normal", "in-stock"},
		{"above double reorder point", "current_stock=21&reorder_point=10", "high", "in-stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/products/stock/classification?"+tt.query, nil)
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			resp := decodeResponse(t, rec)
			require.True(t, resp.Success)

			data, ok := resp.Data.(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, tt.level, data["level"])
			assert.Equal(t, tt.status, data["status"])
		})
	}

	t.Run("negative stock is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/products/stock/classification?current_stock=-1&reorder_point=10", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
