package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/identity"
	"github.com/supplychain/backend/internal/infrastructure/auth"
	"github.com/supplychain/backend/internal/interfaces/http/dto"
)

// Context keys set by the JWT middleware
const (
	AuthUserIDKey   = "auth_user_id"
	AuthUsernameKey = "auth_username"
	AuthRoleKey     = "auth_role"

	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// JWTAuth validates the Authorization header and stores the caller's
// identity in the gin context for downstream handlers.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "TOKEN_INVALID", "Missing authorization header")
			return
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			abortUnauthorized(c, "TOKEN_INVALID", "Authorization header must use the Bearer scheme")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)
		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, "TOKEN_EXPIRED", "Access token has expired")
				return
			}
			abortUnauthorized(c, "TOKEN_INVALID", "Invalid access token")
			return
		}

		userID, err := claims.GetUserUUID()
		if err != nil {
			abortUnauthorized(c, "TOKEN_INVALID", "Invalid access token")
			return
		}

		c.Set(AuthUserIDKey, userID)
		c.Set(AuthUsernameKey, claims.Username)
		c.Set(AuthRoleKey, identity.Role(claims.Role))
		c.Next()
	}
}

// AuthUserID returns the authenticated user's ID from the context
func AuthUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(AuthUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// AuthRole returns the authenticated user's role from the context
func AuthRole(c *gin.Context) identity.Role {
	value, exists := c.Get(AuthRoleKey)
	if !exists {
		return ""
	}
	role, _ := value.(identity.Role)
	return role
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(code, message, GetRequestID(c)))
}
