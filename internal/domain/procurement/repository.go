package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/shared"
)

// PurchaseOrderRepository defines the interface for purchase order persistence.
// Save and SaveWithLock persist the order header and its items atomically;
// SaveWithLock additionally fails with a concurrency conflict when the
// stored version does not match the aggregate's previous version.
type PurchaseOrderRepository interface {
	// FindByID finds an order with its items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByNumber finds an order with its items by PO number
	FindByNumber(ctx context.Context, poNumber string) (*PurchaseOrder, error)

	// FindAll finds all orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)

	// FindBySupplier finds orders for a supplier
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)

	// FindByStatus finds orders in the given status
	FindByStatus(ctx context.Context, status PurchaseOrderStatus, filter shared.Filter) ([]PurchaseOrder, error)

	// Save creates or updates an order and its items in one transaction
	Save(ctx context.Context, order *PurchaseOrder) error

	// SaveWithLock updates an order with optimistic lock checking
	SaveWithLock(ctx context.Context, order *PurchaseOrder) error

	// Delete deletes an order and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountIncompleteBySupplier counts a supplier's orders not yet in a terminal state
	CountIncompleteBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error)

	// ExistsByProduct checks if any order item references the product
	ExistsByProduct(ctx context.Context, productID uuid.UUID) (bool, error)

	// ExistsByNumber checks if an order with the given PO number exists
	ExistsByNumber(ctx context.Context, poNumber string) (bool, error)

	// GenerateOrderNumber generates the next sequential PO number
	GenerateOrderNumber(ctx context.Context) (string, error)
}
