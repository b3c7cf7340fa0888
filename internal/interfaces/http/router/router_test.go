package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/supplychain/backend/internal/infrastructure/auth"
	"github.com/supplychain/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

type stubRegistrar struct {
	path string
}

func (s *stubRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET(s.path, func(c *gin.Context) { c.Status(http.StatusOK) })
}

func testRouterConfig() Config {
	return Config{
		JWTService: auth.NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-key-for-unit-tests-only!",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: 7 * 24 * time.Hour,
			Issuer:                 "supplychain-test",
			MaxRefreshCount:        10,
		}),
		Logger: zap.NewNop(),
	}
}

func TestNew(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("public routes skip authentication", func(t *testing.T) {
		cfg := testRouterConfig()
		cfg.Public = []RouteRegistrar{&stubRegistrar{path: "/ping"}}
		engine := New(cfg)

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("protected routes require a token", func(t *testing.T) {
		cfg := testRouterConfig()
		cfg.Protected = []RouteRegistrar{&stubRegistrar{path: "/secret"}}
		engine := New(cfg)

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/secret", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("requests carry a request ID", func(t *testing.T) {
		cfg := testRouterConfig()
		cfg.Public = []RouteRegistrar{&stubRegistrar{path: "/ping"}}
		engine := New(cfg)

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})
}
