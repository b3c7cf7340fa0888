package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the header carrying the request ID
const RequestIDHeader = "X-Request-ID"

// RequestIDKey is the gin context key for the request ID
const RequestIDKey = "request_id"

// RequestID ensures every request has an ID, honoring one supplied by
// the client and echoing it back in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID returns the request ID set by the RequestID middleware
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
