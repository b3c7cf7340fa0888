package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/procurement"
	"github.com/supplychain/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds an order with its items by ID
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	var order procurement.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByNumber finds an order with its items by PO number
func (r *GormPurchaseOrderRepository) FindByNumber(ctx context.Context, poNumber string) (*procurement.PurchaseOrder, error) {
	var order procurement.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "po_number = ?", poNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all orders matching the filter
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	var orders []procurement.PurchaseOrder
	query := r.applyFilter(r.db.WithContext(ctx).Model(&procurement.PurchaseOrder{}), filter)

	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindBySupplier finds orders for a supplier
func (r *GormPurchaseOrderRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	var orders []procurement.PurchaseOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&procurement.PurchaseOrder{}).
			Where("supplier_id = ?", supplierID),
		filter,
	)

	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus finds orders in the given status
func (r *GormPurchaseOrderRepository) FindByStatus(ctx context.Context, status procurement.PurchaseOrderStatus, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	var orders []procurement.PurchaseOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&procurement.PurchaseOrder{}).
			Where("status = ?", status),
		filter,
	)

	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order and its items in one transaction.
// Items removed from the aggregate are deleted from the database.
// Two creates racing for the same PO number serialize on the unique
// index; the loser surfaces as an already-exists conflict.
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *procurement.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(order).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Purchase order %s already exists", order.PONumber))
			}
			return err
		}
		return r.saveItems(tx, order)
	})
}

// SaveWithLock updates an order with optimistic lock checking. The
// update only matches when the stored row still carries the version
// the aggregate was loaded at; a concurrent writer bumps it and the
// match fails.
func (r *GormPurchaseOrderRepository) SaveWithLock(ctx context.Context, order *procurement.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&procurement.PurchaseOrder{}).
			Where("id = ? AND version = ?", order.ID, order.LoadedVersion()).
			Updates(map[string]interface{}{
				"supplier_id":            order.SupplierID,
				"supplier_name":          order.SupplierName,
				"status":                 order.Status,
				"order_date":             order.OrderDate,
				"expected_delivery_date": order.ExpectedDeliveryDate,
				"received_date":          order.ReceivedDate,
				"subtotal":               order.Subtotal,
				"tax_amount":             order.TaxAmount,
				"shipping_amount":        order.ShippingAmount,
				"discount_amount":        order.DiscountAmount,
				"total_amount":           order.TotalAmount,
				"notes":                  order.Notes,
				"submitted_at":           order.SubmittedAt,
				"approved_by":            order.ApprovedBy,
				"approved_at":            order.ApprovedAt,
				"ordered_at":             order.OrderedAt,
				"cancelled_at":           order.CancelledAt,
				"cancel_reason":          order.CancelReason,
				"version":                order.Version,
				"updated_at":             time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return r.saveItems(tx, order)
	})
}

// saveItems upserts the aggregate's items and removes orphans
func (r *GormPurchaseOrderRepository) saveItems(tx *gorm.DB, order *procurement.PurchaseOrder) error {
	keep := make([]uuid.UUID, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		keep = append(keep, item.ID)
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(item).Error; err != nil {
			return err
		}
	}

	query := tx.Where("order_id = ?", order.ID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	return query.Delete(&procurement.PurchaseOrderItem{}).Error
}

// Delete deletes an order and its items
func (r *GormPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&procurement.PurchaseOrderItem{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&procurement.PurchaseOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts orders matching the filter
func (r *GormPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyPredicates(r.db.WithContext(ctx).Model(&procurement.PurchaseOrder{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountIncompleteBySupplier counts a supplier's orders not yet in a terminal state
func (r *GormPurchaseOrderRepository) CountIncompleteBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&procurement.PurchaseOrder{}).
		Where("supplier_id = ? AND status NOT IN ?", supplierID,
			[]procurement.PurchaseOrderStatus{procurement.StatusReceived, procurement.StatusCancelled}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByProduct checks if any order item references the product
func (r *GormPurchaseOrderRepository) ExistsByProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&procurement.PurchaseOrderItem{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByNumber checks if an order with the given PO number exists
func (r *GormPurchaseOrderRepository) ExistsByNumber(ctx context.Context, poNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&procurement.PurchaseOrder{}).
		Where("po_number = ?", poNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateOrderNumber generates the next sequential PO number.
// Format: PO-YYYY-NNNNN (e.g. PO-2026-00001), sequence resets each year.
func (r *GormPurchaseOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("PO-%d-", time.Now().Year())

	var lastNumbers []string
	err := r.db.WithContext(ctx).
		Model(&procurement.PurchaseOrder{}).
		Where("po_number LIKE ?", prefix+"%").
		Order("po_number DESC").
		Limit(1).
		Pluck("po_number", &lastNumbers).Error
	if err != nil {
		return "", err
	}

	next := 1
	if len(lastNumbers) > 0 {
		parts := strings.Split(lastNumbers[0], "-")
		if len(parts) == 3 {
			var n int
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &n); parseErr == nil {
				next = n + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, next), nil
}

// applyFilter applies predicates, ordering, and pagination
func (r *GormPurchaseOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyPredicates(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PurchaseOrderSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// applyPredicates applies search and field filters without pagination
func (r *GormPurchaseOrderRepository) applyPredicates(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("po_number ILIKE ? OR supplier_name ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "created_by":
			query = query.Where("created_by = ?", value)
		case "order_date_from":
			query = query.Where("order_date >= ?", value)
		case "order_date_to":
			query = query.Where("order_date <= ?", value)
		}
	}

	return query
}

var _ procurement.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
