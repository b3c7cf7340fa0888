package inventory

import (
	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/shared"
)

// TransactionType represents the type of inventory transaction
type TransactionType string

const (
	// TransactionTypeInbound represents stock coming into inventory (purchase receiving)
	TransactionTypeInbound TransactionType = "IN"
	// TransactionTypeOutbound represents stock leaving inventory
	TransactionTypeOutbound TransactionType = "OUT"
	// TransactionTypeAdjustment represents a manual stock correction
	TransactionTypeAdjustment TransactionType = "ADJUSTMENT"
)

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeInbound, TransactionTypeOutbound, TransactionTypeAdjustment:
		return true
	}
	return false
}

// Transaction is an immutable record of a stock movement.
// Rows are written once and never updated.
type Transaction struct {
	shared.BaseEntity
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	TransactionType TransactionType `gorm:"type:varchar(20);not null"`
	Quantity        int             `gorm:"not null"`                // Signed: negative for outbound
	Reference       string          `gorm:"type:varchar(100);index"` // Source document, e.g. a PO number
	Notes           string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "inventory_transactions"
}

// NewTransaction creates a new inventory transaction record
func NewTransaction(productID uuid.UUID, txType TransactionType, quantity int, reference, notes string) (*Transaction, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Unknown transaction type")
	}
	if quantity == 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be zero")
	}

	return &Transaction{
		BaseEntity:      shared.NewBaseEntity(),
		ProductID:       productID,
		TransactionType: txType,
		Quantity:        quantity,
		Reference:       reference,
		Notes:           notes,
	}, nil
}
