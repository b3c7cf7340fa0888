package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/supplychain/backend/internal/application/catalog"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes registers product routes on an authenticated group
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.POST("", h.Create)
	products.GET("", h.List)
	products.GET("/stock/classification", h.ClassifyStock)
	products.GET("/sku/:sku", h.GetBySKU)
	products.GET("/:id", h.GetByID)
	products.PUT("/:id", h.Update)
	products.DELETE("/:id", h.Delete)
	products.POST("/:id/stock/receipts", h.ReceiveStock)
	products.POST("/:id/stock/adjustments", h.AdjustStock)
}

// ReceiveStockRequest represents a manual inbound stock movement
type ReceiveStockRequest struct {
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Reference string `json:"reference" binding:"omitempty,max=100"`
	Reason    string `json:"reason" binding:"omitempty,max=500"`
}

// AdjustStockRequest represents a manual stock correction
type AdjustStockRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// ClassifyStockQuery represents a stock classification query
type ClassifyStockQuery struct {
	CurrentStock int `form:"current_stock" binding:"min=0"`
	ReorderPoint int `form:"reorder_point" binding:"min=0"`
}

// Create creates a new product
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// List returns products matching the filter
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns a product by its ID
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// GetBySKU returns a product by its SKU
func (h *ProductHandler) GetBySKU(c *gin.Context) {
	product, err := h.productService.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Update updates a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete deletes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ReceiveStock records a manual inbound stock movement
func (h *ProductHandler) ReceiveStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.IncreaseStock(c.Request.Context(), id, req.Quantity, req.Reference, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// AdjustStock records a manual stock correction
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), id, req.Delta, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// ClassifyStock classifies an arbitrary stock figure without touching
// any stored product
func (h *ProductHandler) ClassifyStock(c *gin.Context) {
	var query ClassifyStockQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.Success(c, h.productService.Classify(query.CurrentStock, query.ReorderPoint))
}
