package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplychain/backend/internal/domain/identity"
	"github.com/supplychain/backend/internal/domain/procurement"
)

// Actor identifies the authenticated user performing an operation
type Actor struct {
	UserID uuid.UUID
	Role   identity.Role
}

// ==================== Purchase Order DTOs ====================

// CreatePurchaseOrderRequest represents a request to create a purchase order.
// PONumber is optional; when omitted the next sequential number is assigned.
type CreatePurchaseOrderRequest struct {
	PONumber             string                         `json:"po_number" binding:"omitempty,max=50"`
	SupplierID           uuid.UUID                      `json:"supplier_id" binding:"required"`
	Items                []CreatePurchaseOrderItemInput `json:"items" binding:"required,min=1,dive"`
	ExpectedDeliveryDate *time.Time                     `json:"expected_delivery_date"`
	Subtotal             decimal.Decimal                `json:"subtotal"`
	TaxAmount            decimal.Decimal                `json:"tax_amount"`
	ShippingAmount       decimal.Decimal                `json:"shipping_amount"`
	DiscountAmount       decimal.Decimal                `json:"discount_amount"`
	TotalAmount          decimal.Decimal                `json:"total_amount"`
	Notes                string                         `json:"notes"`
}

// CreatePurchaseOrderItemInput represents an item in the create order request
type CreatePurchaseOrderItemInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitCost  decimal.Decimal `json:"unit_cost" binding:"required"`
	TotalCost decimal.Decimal `json:"total_cost" binding:"required"`
}

// UpdatePurchaseOrderRequest represents a request to update a draft order
type UpdatePurchaseOrderRequest struct {
	ExpectedDeliveryDate *time.Time       `json:"expected_delivery_date"`
	Subtotal             *decimal.Decimal `json:"subtotal"`
	TaxAmount            *decimal.Decimal `json:"tax_amount"`
	ShippingAmount       *decimal.Decimal `json:"shipping_amount"`
	DiscountAmount       *decimal.Decimal `json:"discount_amount"`
	TotalAmount          *decimal.Decimal `json:"total_amount"`
	Notes                *string          `json:"notes"`
}

// ReceiptLineInput represents a single receipt line
type ReceiptLineInput struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,gt=0"`
}

// RecordReceiptRequest represents a request to record received goods
type RecordReceiptRequest struct {
	Lines []ReceiptLineInput `json:"lines" binding:"required,min=1,dive"`
}

// CancelPurchaseOrderRequest represents a request to cancel a purchase order
type CancelPurchaseOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// PurchaseOrderListFilter represents filter options for purchase order list
type PurchaseOrderListFilter struct {
	Search     string                           `form:"search"`
	SupplierID *uuid.UUID                       `form:"supplier_id"`
	Status     *procurement.PurchaseOrderStatus `form:"status" binding:"omitempty,po_status"`
	StartDate  *time.Time                       `form:"start_date"`
	EndDate    *time.Time                       `form:"end_date"`
	Page       int                              `form:"page" binding:"omitempty,min=1"`
	PageSize   int                              `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string                           `form:"order_by"`
	OrderDir   string                           `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PurchaseOrderItemResponse represents an order item in API responses
type PurchaseOrderItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	ProductSKU       string          `json:"product_sku"`
	Quantity         int             `json:"quantity"`
	ReceivedQuantity int             `json:"received_quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID                   uuid.UUID                   `json:"id"`
	PONumber             string                      `json:"po_number"`
	SupplierID           uuid.UUID                   `json:"supplier_id"`
	SupplierName         string                      `json:"supplier_name"`
	Status               string                      `json:"status"`
	Items                []PurchaseOrderItemResponse `json:"items"`
	ItemCount            int                         `json:"item_count"`
	OrderDate            time.Time                   `json:"order_date"`
	ExpectedDeliveryDate *time.Time                  `json:"expected_delivery_date,omitempty"`
	ReceivedDate         *time.Time                  `json:"received_date,omitempty"`
	Subtotal             decimal.Decimal             `json:"subtotal"`
	TaxAmount            decimal.Decimal             `json:"tax_amount"`
	ShippingAmount       decimal.Decimal             `json:"shipping_amount"`
	DiscountAmount       decimal.Decimal             `json:"discount_amount"`
	TotalAmount          decimal.Decimal             `json:"total_amount"`
	Notes                string                      `json:"notes,omitempty"`
	CreatedBy            uuid.UUID                   `json:"created_by"`
	ApprovedBy           *uuid.UUID                  `json:"approved_by,omitempty"`
	ApprovedAt           *time.Time                  `json:"approved_at,omitempty"`
	CancelReason         string                      `json:"cancel_reason,omitempty"`
	Version              int                         `json:"version"`
	CreatedAt            time.Time                   `json:"created_at"`
	UpdatedAt            time.Time                   `json:"updated_at"`
}

// ReceiptResultResponse represents the outcome of a receipt operation
type ReceiptResultResponse struct {
	Order           PurchaseOrderResponse  `json:"order"`
	ReceivedItems   []ReceivedItemResponse `json:"received_items"`
	IsFullyReceived bool                   `json:"is_fully_received"`
}

// ReceivedItemResponse represents one item updated by a receipt
type ReceivedItemResponse struct {
	ItemID      uuid.UUID `json:"item_id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	ProductSKU  string    `json:"product_sku"`
	Quantity    int       `json:"quantity"`
}

// StockClassificationResponse represents a stock classification result
type StockClassificationResponse struct {
	CurrentStock int    `json:"current_stock"`
	ReorderPoint int    `json:"reorder_point"`
	Level        string `json:"level"`
	Status       string `json:"status"`
}

// ToPurchaseOrderItemResponse converts a domain item to a response DTO
func ToPurchaseOrderItemResponse(item *procurement.PurchaseOrderItem) PurchaseOrderItemResponse {
	return PurchaseOrderItemResponse{
		ID:               item.ID,
		ProductID:        item.ProductID,
		ProductName:      item.ProductName,
		ProductSKU:       item.ProductSKU,
		Quantity:         item.Quantity,
		ReceivedQuantity: item.ReceivedQuantity,
		UnitCost:         item.UnitCost,
		TotalCost:        item.TotalCost,
	}
}

// ToPurchaseOrderResponse converts a domain order to a response DTO
func ToPurchaseOrderResponse(order *procurement.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, len(order.Items))
	for i := range order.Items {
		items[i] = ToPurchaseOrderItemResponse(&order.Items[i])
	}

	return PurchaseOrderResponse{
		ID:                   order.ID,
		PONumber:             order.PONumber,
		SupplierID:           order.SupplierID,
		SupplierName:         order.SupplierName,
		Status:               order.Status.String(),
		Items:                items,
		ItemCount:            order.ItemCount(),
		OrderDate:            order.OrderDate,
		ExpectedDeliveryDate: order.ExpectedDeliveryDate,
		ReceivedDate:         order.ReceivedDate,
		Subtotal:             order.Subtotal,
		TaxAmount:            order.TaxAmount,
		ShippingAmount:       order.ShippingAmount,
		DiscountAmount:       order.DiscountAmount,
		TotalAmount:          order.TotalAmount,
		Notes:                order.Notes,
		CreatedBy:            order.CreatedBy,
		ApprovedBy:           order.ApprovedBy,
		ApprovedAt:           order.ApprovedAt,
		CancelReason:         order.CancelReason,
		Version:              order.GetVersion(),
		CreatedAt:            order.CreatedAt,
		UpdatedAt:            order.UpdatedAt,
	}
}

// ToReceivedItemResponses converts domain receipt info to response DTOs
func ToReceivedItemResponses(infos []procurement.ReceivedItemInfo) []ReceivedItemResponse {
	out := make([]ReceivedItemResponse, len(infos))
	for i, info := range infos {
		out[i] = ReceivedItemResponse{
			ItemID:      info.ItemID,
			ProductID:   info.ProductID,
			ProductName: info.ProductName,
			ProductSKU:  info.ProductSKU,
			Quantity:    info.Quantity,
		}
	}
	return out
}
