package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/supplychain/backend/internal/infrastructure/persistence"
)

// SystemHandler handles health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	appName string
	version string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, appName, version string) *SystemHandler {
	return &SystemHandler{db: db, appName: appName, version: version}
}

// RegisterRoutes registers system routes. These are public.
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health reports process and database health
func (h *SystemHandler) Health(c *gin.Context) {
	dbStatus := "up"
	status := http.StatusOK
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			dbStatus = "down"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, gin.H{
		"app":      h.appName,
		"version":  h.version,
		"database": dbStatus,
	})
}
