package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/partner"
	"github.com/supplychain/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSupplierRepository implements SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindByName finds a supplier by its exact name
func (r *GormSupplierRepository) FindByName(ctx context.Context, name string) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindAll finds all suppliers matching the filter
func (r *GormSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	var suppliers []partner.Supplier
	query := r.applyFilter(r.db.WithContext(ctx).Model(&partner.Supplier{}), filter)

	if err := query.Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

// Delete deletes a supplier
func (r *GormSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Supplier{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts suppliers matching the filter
func (r *GormSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyPredicates(r.db.WithContext(ctx).Model(&partner.Supplier{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a supplier with the given name exists
func (r *GormSupplierRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.Supplier{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies predicates, ordering, and pagination
func (r *GormSupplierRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyPredicates(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, SupplierSortFields, "name")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// applyPredicates applies search and field filters without pagination
func (r *GormSupplierRepository) applyPredicates(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR contact_person ILIKE ? OR email ILIKE ?",
			pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "is_preferred":
			query = query.Where("is_preferred = ?", value)
		case "country":
			query = query.Where("country = ?", value)
		case "min_rating":
			query = query.Where("rating >= ?", value)
		}
	}

	return query
}

var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)
