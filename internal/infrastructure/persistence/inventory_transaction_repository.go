package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/inventory"
	"github.com/supplychain/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTransactionRepository implements TransactionRepository using GORM.
// Transaction records are append-only; there is no update or delete.
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Save persists a transaction record
func (r *GormTransactionRepository) Save(ctx context.Context, tx *inventory.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// FindByProduct finds transactions for a product, newest first
func (r *GormTransactionRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.Transaction, error) {
	query := r.db.WithContext(ctx).
		Model(&inventory.Transaction{}).
		Where("product_id = ?", productID)

	if txType, ok := filter.Filters["transaction_type"]; ok {
		query = query.Where("transaction_type = ?", txType)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, InventoryTransactionSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	var transactions []inventory.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// CountByProduct counts transactions referencing a product
func (r *GormTransactionRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Transaction{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ inventory.TransactionRepository = (*GormTransactionRepository)(nil)
