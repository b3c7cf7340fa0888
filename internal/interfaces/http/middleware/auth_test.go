package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplychain/backend/internal/domain/identity"
	"github.com/supplychain/backend/internal/infrastructure/auth"
	"github.com/supplychain/backend/internal/infrastructure/config"
	"github.com/supplychain/backend/internal/interfaces/http/dto"
)

func testJWTService(accessExpiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only!",
		RefreshSecret:          "test-refresh-secret-for-unit-tests!",
		AccessTokenExpiration:  accessExpiration,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "supplychain-test",
		MaxRefreshCount:        10,
	})
}

func newAuthTestRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID(), JWTAuth(jwtService))
	engine.GET("/whoami", func(c *gin.Context) {
		userID, _ := AuthUserID(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id": userID.String(),
			"role":    string(AuthRole(c)),
		})
	})
	return engine
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestJWTAuth(t *testing.T) {
	t.Run("valid token passes identity to handlers", func(t *testing.T) {
		jwtService := testJWTService(15 * time.Minute)
		engine := newAuthTestRouter(jwtService)

		userID := uuid.New()
		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID:   userID,
			Username: "jsmith",
			Role:     string(identity.RoleManager),
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, userID.String(), body["user_id"])
		assert.Equal(t, "manager", body["role"])
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		engine := newAuthTestRouter(testJWTService(15 * time.Minute))

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "TOKEN_INVALID", decodeError(t, rec).Error.Code)
	})

	t.Run("non-bearer scheme is rejected", func(t *testing.T) {
		engine := newAuthTestRouter(testJWTService(15 * time.Minute))

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "TOKEN_INVALID", decodeError(t, rec).Error.Code)
	})

	t.Run("expired token reports a distinct code", func(t *testing.T) {
		jwtService := testJWTService(-1 * time.Minute)
		engine := newAuthTestRouter(jwtService)

		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID:   uuid.New(),
			Username: "jsmith",
			Role:     string(identity.RoleUser),
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "TOKEN_EXPIRED", decodeError(t, rec).Error.Code)
	})

	t.Run("refresh token cannot be used as access token", func(t *testing.T) {
		jwtService := testJWTService(15 * time.Minute)
		engine := newAuthTestRouter(jwtService)

		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID:   uuid.New(),
			Username: "jsmith",
			Role:     string(identity.RoleUser),
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "TOKEN_INVALID", decodeError(t, rec).Error.Code)
	})
}
