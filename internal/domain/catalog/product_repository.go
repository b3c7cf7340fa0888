package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by its SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByStockLevel finds products in the given replenishment band
	FindByStockLevel(ctx context.Context, level StockLevel, filter shared.Filter) ([]Product, error)

	// FindByStockStatus finds products in the given availability band
	FindByStockStatus(ctx context.Context, status StockStatus, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock updates a product with optimistic lock checking
	SaveWithLock(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStockLevel counts products in the given replenishment band
	CountByStockLevel(ctx context.Context, level StockLevel) (int64, error)

	// CountByStockStatus counts products in the given availability band
	CountByStockStatus(ctx context.Context, status StockStatus) (int64, error)

	// CountBySupplier counts products referencing a supplier
	CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error)

	// ExistsBySKU checks if a product with the given SKU exists
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
}
