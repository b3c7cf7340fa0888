package procurement

import (
	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypePurchaseOrder = "PurchaseOrder"

// Event type constants
const (
	EventTypePurchaseOrderCreated   = "PurchaseOrderCreated"
	EventTypePurchaseOrderSubmitted = "PurchaseOrderSubmitted"
	EventTypePurchaseOrderApproved  = "PurchaseOrderApproved"
	EventTypePurchaseOrderOrdered   = "PurchaseOrderOrdered"
	EventTypePurchaseOrderReceived  = "PurchaseOrderReceived"
	EventTypePurchaseOrderCancelled = "PurchaseOrderCancelled"
)

// PurchaseOrderCreatedEvent is published when a new order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID `json:"order_id"`
	PONumber   string    `json:"po_number"`
	SupplierID uuid.UUID `json:"supplier_id"`
	CreatedBy  uuid.UUID `json:"created_by"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(order *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		PONumber:        order.PONumber,
		SupplierID:      order.SupplierID,
		CreatedBy:       order.CreatedBy,
	}
}

// PurchaseOrderSubmittedEvent is published when an order is submitted for approval
type PurchaseOrderSubmittedEvent struct {
	shared.BaseDomainEvent
	OrderID  uuid.UUID `json:"order_id"`
	PONumber string    `json:"po_number"`
}

// NewPurchaseOrderSubmittedEvent creates a new PurchaseOrderSubmittedEvent
func NewPurchaseOrderSubmittedEvent(order *PurchaseOrder) *PurchaseOrderSubmittedEvent {
	return &PurchaseOrderSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderSubmitted, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		PONumber:        order.PONumber,
	}
}

// PurchaseOrderApprovedEvent is published when an order is approved
type PurchaseOrderApprovedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID  `json:"order_id"`
	PONumber   string     `json:"po_number"`
	ApprovedBy *uuid.UUID `json:"approved_by"`
}

// NewPurchaseOrderApprovedEvent creates a new PurchaseOrderApprovedEvent
func NewPurchaseOrderApprovedEvent(order *PurchaseOrder) *PurchaseOrderApprovedEvent {
	return &PurchaseOrderApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderApproved, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		PONumber:        order.PONumber,
		ApprovedBy:      order.ApprovedBy,
	}
}

// PurchaseOrderOrderedEvent is published when an order is sent to the supplier
type PurchaseOrderOrderedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID `json:"order_id"`
	PONumber   string    `json:"po_number"`
	SupplierID uuid.UUID `json:"supplier_id"`
}

// NewPurchaseOrderOrderedEvent creates a new PurchaseOrderOrderedEvent
func NewPurchaseOrderOrderedEvent(order *PurchaseOrder) *PurchaseOrderOrderedEvent {
	return &PurchaseOrderOrderedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderOrdered, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		PONumber:        order.PONumber,
		SupplierID:      order.SupplierID,
	}
}

// PurchaseOrderReceivedEvent is published when goods are received against
// an order. Items holds the per-item quantities of this receipt; it is
// empty when the receipt only reconciled the order status.
type PurchaseOrderReceivedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID           `json:"order_id"`
	PONumber      string              `json:"po_number"`
	SupplierID    uuid.UUID           `json:"supplier_id"`
	Status        PurchaseOrderStatus `json:"status"`
	FullyReceived bool                `json:"fully_received"`
	Items         []ReceivedItemInfo  `json:"items,omitempty"`
}

// NewPurchaseOrderReceivedEvent creates a new PurchaseOrderReceivedEvent
func NewPurchaseOrderReceivedEvent(order *PurchaseOrder, items []ReceivedItemInfo) *PurchaseOrderReceivedEvent {
	return &PurchaseOrderReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderReceived, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		PONumber:        order.PONumber,
		SupplierID:      order.SupplierID,
		Status:          order.Status,
		FullyReceived:   order.Status == StatusReceived,
		Items:           items,
	}
}

// PurchaseOrderCancelledEvent is published when an order is cancelled
type PurchaseOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID  uuid.UUID `json:"order_id"`
	PONumber string    `json:"po_number"`
	Reason   string    `json:"reason"`
}

// NewPurchaseOrderCancelledEvent creates a new PurchaseOrderCancelledEvent
func NewPurchaseOrderCancelledEvent(order *PurchaseOrder) *PurchaseOrderCancelledEvent {
	return &PurchaseOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCancelled, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		PONumber:        order.PONumber,
		Reason:          order.CancelReason,
	}
}
