package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/supplychain/backend/internal/application/partner"
)

// SupplierHandler handles supplier endpoints
type SupplierHandler struct {
	BaseHandler
	supplierService *partnerapp.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(supplierService *partnerapp.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// RegisterRoutes registers supplier routes on an authenticated group
func (h *SupplierHandler) RegisterRoutes(rg *gin.RouterGroup) {
	suppliers := rg.Group("/suppliers")
	suppliers.POST("", h.Create)
	suppliers.GET("", h.List)
	suppliers.GET("/:id", h.GetByID)
	suppliers.PUT("/:id", h.Update)
	suppliers.DELETE("/:id", h.Delete)
}

// Create creates a new supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	var req partnerapp.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.supplierService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, supplier)
}

// List returns suppliers matching the filter
func (h *SupplierHandler) List(c *gin.Context) {
	var filter partnerapp.SupplierListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.supplierService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns a supplier by its ID
func (h *SupplierHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	supplier, err := h.supplierService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, supplier)
}

// Update updates a supplier
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req partnerapp.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.supplierService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, supplier)
}

// Delete deletes a supplier
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	if err := h.supplierService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
