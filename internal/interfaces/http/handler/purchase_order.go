package handler

import (
	"github.com/gin-gonic/gin"
	procurementapp "github.com/supplychain/backend/internal/application/procurement"
	"github.com/supplychain/backend/internal/interfaces/http/middleware"
)

// PurchaseOrderHandler handles purchase order lifecycle endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	orderService *procurementapp.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(orderService *procurementapp.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orderService: orderService}
}

// RegisterRoutes registers purchase order routes on an authenticated group
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/purchase-orders")
	orders.POST("", h.Create)
	orders.GET("", h.List)
	orders.GET("/number/:poNumber", h.GetByNumber)
	orders.GET("/:id", h.GetByID)
	orders.PUT("/:id", h.Update)
	orders.DELETE("/:id", h.Delete)
	orders.POST("/:id/submit", h.Submit)
	orders.POST("/:id/approve", h.Approve)
	orders.POST("/:id/mark-ordered", h.MarkOrdered)
	orders.POST("/:id/receipts", h.RecordReceipt)
	orders.POST("/:id/receive", h.Receive)
	orders.POST("/:id/cancel", h.Cancel)
}

// actor builds the acting user's identity from the request context
func (h *PurchaseOrderHandler) actor(c *gin.Context) (procurementapp.Actor, bool) {
	userID, ok := middleware.AuthUserID(c)
	if !ok {
		return procurementapp.Actor{}, false
	}
	return procurementapp.Actor{UserID: userID, Role: middleware.AuthRole(c)}, true
}

// Create creates a new draft purchase order
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		h.BadRequest(c, "Missing authenticated user")
		return
	}

	var req procurementapp.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// List returns purchase orders matching the filter
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	var filter procurementapp.PurchaseOrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns an order by its ID
func (h *PurchaseOrderHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// GetByNumber returns an order by its PO number
func (h *PurchaseOrderHandler) GetByNumber(c *gin.Context) {
	order, err := h.orderService.GetByNumber(c.Request.Context(), c.Param("poNumber"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Update updates a draft order's editable fields
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req procurementapp.UpdatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Submit moves a draft order to the submitted status
func (h *PurchaseOrderHandler) Submit(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Submit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Approve approves a submitted order
func (h *PurchaseOrderHandler) Approve(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		h.BadRequest(c, "Missing authenticated user")
		return
	}

	id, idOK := parseIDParam(c, "id")
	if !idOK {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Approve(c.Request.Context(), id, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// MarkOrdered marks an approved order as placed with the supplier
func (h *PurchaseOrderHandler) MarkOrdered(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.MarkOrdered(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// RecordReceipt records received quantities against order items
func (h *PurchaseOrderHandler) RecordReceipt(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req procurementapp.RecordReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orderService.RecordReceipt(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Receive recomputes the order status from the per-item quantities
// already recorded; it does not record any receipts itself
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Receive(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Cancel cancels an order with a reason
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req procurementapp.CancelPurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Delete deletes a draft order
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		h.BadRequest(c, "Missing authenticated user")
		return
	}

	id, idOK := parseIDParam(c, "id")
	if !idOK {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id, actor); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
