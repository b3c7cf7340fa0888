package partner

import (
	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeSupplier = "Supplier"

// Event type constants
const (
	EventTypeSupplierCreated = "SupplierCreated"
	EventTypeSupplierUpdated = "SupplierUpdated"
)

// SupplierCreatedEvent is published when a new supplier is created
type SupplierCreatedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID `json:"supplier_id"`
	Name       string    `json:"name"`
}

// NewSupplierCreatedEvent creates a new SupplierCreatedEvent
func NewSupplierCreatedEvent(supplier *Supplier) *SupplierCreatedEvent {
	return &SupplierCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierCreated, AggregateTypeSupplier, supplier.ID),
		SupplierID:      supplier.ID,
		Name:            supplier.Name,
	}
}

// SupplierUpdatedEvent is published when a supplier is updated
type SupplierUpdatedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID `json:"supplier_id"`
	Name       string    `json:"name"`
}

// NewSupplierUpdatedEvent creates a new SupplierUpdatedEvent
func NewSupplierUpdatedEvent(supplier *Supplier) *SupplierUpdatedEvent {
	return &SupplierUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierUpdated, AggregateTypeSupplier, supplier.ID),
		SupplierID:      supplier.ID,
		Name:            supplier.Name,
	}
}
