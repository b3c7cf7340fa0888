package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/catalog"
	"github.com/supplychain/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Stock classification predicates. These must agree with the pure
// classifiers in the catalog package so list filters and computed
// responses never disagree.
const (
	stockLevelLowCond    = "current_stock <= reorder_point"
	stockLevelNormalCond = "current_stock > reorder_point AND current_stock <= 2 * reorder_point"
	stockLevelHighCond   = "current_stock > 2 * reorder_point"

	stockStatusOutCond = "current_stock = 0"
	stockStatusLowCond = "current_stock > 0 AND current_stock <= reorder_point"
	stockStatusInCond  = "current_stock > reorder_point"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindBySKU finds a product by its SKU
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		First(&product, "sku = ?", strings.ToUpper(sku)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByStockLevel finds products whose stock falls in the given replenishment band
func (r *GormProductRepository) FindByStockLevel(ctx context.Context, level catalog.StockLevel, filter shared.Filter) ([]catalog.Product, error) {
	cond, err := stockLevelCondition(level)
	if err != nil {
		return nil, err
	}

	var products []catalog.Product
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Product{}).Where(cond), filter)

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByStockStatus finds products whose stock falls in the given availability band
func (r *GormProductRepository) FindByStockStatus(ctx context.Context, status catalog.StockStatus, filter shared.Filter) ([]catalog.Product, error) {
	cond, err := stockStatusCondition(status)
	if err != nil {
		return nil, err
	}

	var products []catalog.Product
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Product{}).Where(cond), filter)

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// SaveWithLock saves with optimistic locking. The update only matches
// when the stored row still carries the version the aggregate was
// loaded at; a concurrent writer bumps it and the match fails.
func (r *GormProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	result := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("id = ? AND version = ?", product.ID, product.LoadedVersion()).
		Updates(map[string]interface{}{
			"name":            product.Name,
			"description":     product.Description,
			"category":        product.Category,
			"brand":           product.Brand,
			"unit":            product.Unit,
			"cost_price":      product.CostPrice,
			"selling_price":   product.SellingPrice,
			"wholesale_price": product.WholesalePrice,
			"supplier_id":     product.SupplierID,
			"current_stock":   product.CurrentStock,
			"min_stock_level": product.MinStockLevel,
			"max_stock_level": product.MaxStockLevel,
			"reorder_point":   product.ReorderPoint,
			"is_active":       product.IsActive,
			"version":         product.Version,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyPredicates(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStockLevel counts products in the given replenishment band
func (r *GormProductRepository) CountByStockLevel(ctx context.Context, level catalog.StockLevel) (int64, error) {
	cond, err := stockLevelCondition(level)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where(cond).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStockStatus counts products in the given availability band
func (r *GormProductRepository) CountByStockStatus(ctx context.Context, status catalog.StockStatus) (int64, error) {
	cond, err := stockStatusCondition(status)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where(cond).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountBySupplier counts products referencing a supplier
func (r *GormProductRepository) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("supplier_id = ?", supplierID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsBySKU checks if a product with the given SKU exists
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("sku = ?", strings.ToUpper(sku)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func stockLevelCondition(level catalog.StockLevel) (string, error) {
	switch level {
	case catalog.StockLevelLow:
		return stockLevelLowCond, nil
	case catalog.StockLevelNormal:
		return stockLevelNormalCond, nil
	case catalog.StockLevelHigh:
		return stockLevelHighCond, nil
	default:
		return "", shared.NewDomainError("INVALID_STOCK_LEVEL", "Unknown stock level")
	}
}

func stockStatusCondition(status catalog.StockStatus) (string, error) {
	switch status {
	case catalog.StockStatusOutOfStock:
		return stockStatusOutCond, nil
	case catalog.StockStatusLowStock:
		return stockStatusLowCond, nil
	case catalog.StockStatusInStock:
		return stockStatusInCond, nil
	default:
		return "", shared.NewDomainError("INVALID_STOCK_STATUS", "Unknown stock status")
	}
}

// applyFilter applies predicates, ordering, and pagination
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyPredicates(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ProductSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// applyPredicates applies search and field filters without pagination
func (r *GormProductRepository) applyPredicates(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ? OR brand ILIKE ?",
			pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "brand":
			query = query.Where("brand = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}

	return query
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
