package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/supplychain/backend/internal/infrastructure/config"
)

// CORS returns a middleware enforcing the configured origin whitelist.
// With no configured origins all cross-origin requests are rejected,
// which is the safe default for a fresh deployment.
func CORS(cfg config.HTTPConfig) gin.HandlerFunc {
	allowWildcard := false
	for _, origin := range cfg.CORSAllowOrigins {
		if origin == "*" {
			allowWildcard = true
			break
		}
	}

	allowMethods := strings.Join(cfg.CORSAllowMethods, ", ")
	allowHeaders := strings.Join(cfg.CORSAllowHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowedOrigin := ""
		if allowWildcard {
			allowedOrigin = "*"
		} else {
			for _, o := range cfg.CORSAllowOrigins {
				if o == origin {
					allowedOrigin = origin
					break
				}
			}
		}

		if allowedOrigin != "" {
			header := c.Writer.Header()
			header.Set("Access-Control-Allow-Origin", allowedOrigin)
			header.Set("Access-Control-Allow-Methods", allowMethods)
			header.Set("Access-Control-Allow-Headers", allowHeaders)
			header.Set("Access-Control-Expose-Headers", RequestIDHeader)
			if allowedOrigin != "*" {
				header.Set("Access-Control-Allow-Credentials", "true")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
