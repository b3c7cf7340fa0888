package catalog

import (
	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated      = "ProductCreated"
	EventTypeProductUpdated      = "ProductUpdated"
	EventTypeProductStockChanged = "ProductStockChanged"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		SKU:             product.SKU,
		Name:            product.Name,
		Unit:            product.Unit,
	}
}

// ProductUpdatedEvent is published when a product is updated
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		SKU:             product.SKU,
		Name:            product.Name,
	}
}

// ProductStockChangedEvent is published when a product's stock moves
type ProductStockChangedEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID `json:"product_id"`
	SKU          string    `json:"sku"`
	Delta        int       `json:"delta"`
	CurrentStock int       `json:"current_stock"`
}

// NewProductStockChangedEvent creates a new ProductStockChangedEvent
func NewProductStockChangedEvent(product *Product, delta int) *ProductStockChangedEvent {
	return &ProductStockChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductStockChanged, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		SKU:             product.SKU,
		Delta:           delta,
		CurrentStock:    product.CurrentStock,
	}
}
