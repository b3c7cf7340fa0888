package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newEngine := func(capture *string) *gin.Engine {
		engine := gin.New()
		engine.Use(RequestID())
		engine.GET("/", func(c *gin.Context) {
			*capture = GetRequestID(c)
			c.Status(http.StatusOK)
		})
		return engine
	}

	t.Run("generates an ID when none supplied", func(t *testing.T) {
		var seen string
		engine := newEngine(&seen)

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("honors a client-supplied ID", func(t *testing.T) {
		var seen string
		engine := newEngine(&seen)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "client-req-42")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, "client-req-42", seen)
		assert.Equal(t, "client-req-42", rec.Header().Get(RequestIDHeader))
	})
}
