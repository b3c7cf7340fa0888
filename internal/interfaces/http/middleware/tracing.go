package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// Tracing wraps every request in an otelgin server span named after
// its route pattern. Disabled tracing passes requests straight
// through.
func Tracing(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return otelgin.Middleware(cfg.ServiceName)
}

// SpanEnrichment annotates the active server span with the request ID
// and, once authentication has run, the acting user's ID. It must sit
// after Tracing in the chain; the user ID is read after the handlers
// return because the auth middleware runs deeper in the chain.
func SpanEnrichment() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			if requestID := GetRequestID(c); requestID != "" {
				span.SetAttributes(attribute.String("request_id", requestID))
			}
		}

		c.Next()

		if span.IsRecording() {
			if userID, ok := AuthUserID(c); ok {
				span.SetAttributes(attribute.String("user_id", userID.String()))
			}
		}
	}
}
