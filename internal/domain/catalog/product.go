package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplychain/backend/internal/domain/shared"
)

// Product represents a stocked product (SKU) in the catalog
// It is the aggregate root for product-related operations
type Product struct {
	shared.BaseAggregateRoot
	SKU            string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name           string          `gorm:"type:varchar(200);not null"`
	Description    string          `gorm:"type:text"`
	Category       string          `gorm:"type:varchar(100);index"`
	Brand          string          `gorm:"type:varchar(100)"`
	Unit           string          `gorm:"type:varchar(20);not null"` // Base unit (e.g., "pcs", "kg", "box")
	CostPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SellingPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	WholesalePrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CurrentStock   int             `gorm:"not null;default:0"`
	MinStockLevel  int             `gorm:"not null;default:0"`
	MaxStockLevel  int             `gorm:"not null;default:0"`
	ReorderPoint   int             `gorm:"not null;default:0"`
	SupplierID     *uuid.UUID      `gorm:"type:uuid;index"`
	IsActive       bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(sku, name, unit string) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateUnit(unit); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Name:              name,
		Unit:              unit,
		CostPrice:         decimal.Zero,
		SellingPrice:      decimal.Zero,
		WholesalePrice:    decimal.Zero,
		IsActive:          true,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description, category, brand string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.Category = category
	p.Brand = brand
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrices sets cost, selling, and wholesale prices
func (p *Product) SetPrices(cost, selling, wholesale decimal.Decimal) error {
	if cost.IsNegative() || selling.IsNegative() || wholesale.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}

	p.CostPrice = cost
	p.SellingPrice = selling
	p.WholesalePrice = wholesale
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetSupplier assigns the product's primary supplier
func (p *Product) SetSupplier(supplierID *uuid.UUID) {
	p.SupplierID = supplierID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetStockLevels sets the min/max stock levels and the reorder point
func (p *Product) SetStockLevels(minLevel, maxLevel, reorderPoint int) error {
	if minLevel < 0 || maxLevel < 0 || reorderPoint < 0 {
		return shared.NewDomainError("INVALID_STOCK_LEVEL", "Stock levels cannot be negative")
	}
	if maxLevel > 0 && minLevel > maxLevel {
		return shared.NewDomainError("INVALID_STOCK_LEVEL", "Minimum stock level cannot exceed maximum")
	}

	p.MinStockLevel = minLevel
	p.MaxStockLevel = maxLevel
	p.ReorderPoint = reorderPoint
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IncreaseStock increases the current stock by the given quantity
func (p *Product) IncreaseStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	p.CurrentStock += quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, quantity))

	return nil
}

// DecreaseStock decreases the current stock by the given quantity
// Stock can never go negative
func (p *Product) DecreaseStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity > p.CurrentStock {
		return shared.ErrInsufficientStock
	}

	p.CurrentStock -= quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, -quantity))

	return nil
}

// Activate activates the product
func (p *Product) Activate() error {
	if p.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}

	p.IsActive = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Deactivate deactivates the product
func (p *Product) Deactivate() error {
	if !p.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}

	p.IsActive = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// StockLevel returns the replenishment classification of the product
func (p *Product) StockLevel() StockLevel {
	return ClassifyStockLevel(p.CurrentStock, p.ReorderPoint)
}

// StockStatus returns the availability classification of the product
func (p *Product) StockStatus() StockStatus {
	return ClassifyStockStatus(p.CurrentStock, p.ReorderPoint)
}

// validateSKU validates the product SKU
func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

// validateUnit validates the unit of measure
func validateUnit(unit string) error {
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if len(unit) > 20 {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot exceed 20 characters")
	}
	return nil
}
