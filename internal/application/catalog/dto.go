package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplychain/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	SKU            string          `json:"sku" binding:"required,min=1,max=50"`
	Name           string          `json:"name" binding:"required,min=1,max=200"`
	Description    string          `json:"description"`
	Category       string          `json:"category" binding:"omitempty,max=100"`
	Brand          string          `json:"brand" binding:"omitempty,max=100"`
	Unit           string          `json:"unit" binding:"required,min=1,max=20"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	MinStockLevel  int             `json:"min_stock_level" binding:"omitempty,min=0"`
	MaxStockLevel  int             `json:"max_stock_level" binding:"omitempty,min=0"`
	ReorderPoint   int             `json:"reorder_point" binding:"omitempty,min=0"`
	SupplierID     *uuid.UUID      `json:"supplier_id"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description    *string          `json:"description"`
	Category       *string          `json:"category" binding:"omitempty,max=100"`
	Brand          *string          `json:"brand" binding:"omitempty,max=100"`
	CostPrice      *decimal.Decimal `json:"cost_price"`
	SellingPrice   *decimal.Decimal `json:"selling_price"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price"`
	MinStockLevel  *int             `json:"min_stock_level" binding:"omitempty,min=0"`
	MaxStockLevel  *int             `json:"max_stock_level" binding:"omitempty,min=0"`
	ReorderPoint   *int             `json:"reorder_point" binding:"omitempty,min=0"`
	SupplierID     *uuid.UUID       `json:"supplier_id"`
}

// ProductListFilter represents filter options for product listing
type ProductListFilter struct {
	Search      string `form:"search"`
	Category    string `form:"category"`
	StockLevel  string `form:"stock_level" binding:"omitempty,oneof=low normal high"`
	StockStatus string `form:"stock_status" binding:"omitempty,oneof=out-of-stock low-stock in-stock"`
	ActiveOnly  bool   `form:"active_only"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             uuid.UUID       `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Category       string          `json:"category,omitempty"`
	Brand          string          `json:"brand,omitempty"`
	Unit           string          `json:"unit"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	CurrentStock   int             `json:"current_stock"`
	MinStockLevel  int             `json:"min_stock_level"`
	MaxStockLevel  int             `json:"max_stock_level"`
	ReorderPoint   int             `json:"reorder_point"`
	StockLevel     string          `json:"stock_level"`
	StockStatus    string          `json:"stock_status"`
	SupplierID     *uuid.UUID      `json:"supplier_id,omitempty"`
	IsActive       bool            `json:"is_active"`
	Version        int             `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// StockClassificationResponse represents a classification of a stock figure
type StockClassificationResponse struct {
	CurrentStock int    `json:"current_stock"`
	ReorderPoint int    `json:"reorder_point"`
	Level        string `json:"level"`
	Status       string `json:"status"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:             product.ID,
		SKU:            product.SKU,
		Name:           product.Name,
		Description:    product.Description,
		Category:       product.Category,
		Brand:          product.Brand,
		Unit:           product.Unit,
		CostPrice:      product.CostPrice,
		SellingPrice:   product.SellingPrice,
		WholesalePrice: product.WholesalePrice,
		CurrentStock:   product.CurrentStock,
		MinStockLevel:  product.MinStockLevel,
		MaxStockLevel:  product.MaxStockLevel,
		ReorderPoint:   product.ReorderPoint,
		StockLevel:     string(product.StockLevel()),
		StockStatus:    string(product.StockStatus()),
		SupplierID:     product.SupplierID,
		IsActive:       product.IsActive,
		Version:        product.GetVersion(),
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
}
