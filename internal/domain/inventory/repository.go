package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/shared"
)

// TransactionRepository defines the interface for inventory transaction persistence
type TransactionRepository interface {
	// Save persists a transaction record
	Save(ctx context.Context, tx *Transaction) error

	// FindByProduct finds transactions for a product, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]Transaction, error)

	// CountByProduct counts transactions referencing a product
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}
