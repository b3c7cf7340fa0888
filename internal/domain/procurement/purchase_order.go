package procurement

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplychain/backend/internal/domain/shared"
)

// PurchaseOrderItem represents a line item in a purchase order
type PurchaseOrderItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName      string          `gorm:"type:varchar(200);not null"`
	ProductSKU       string          `gorm:"type:varchar(50);not null"`
	Quantity         int             `gorm:"not null"`
	ReceivedQuantity int             `gorm:"not null;default:0"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalCost        decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Caller-supplied, stored as given
	Notes            string          `gorm:"type:varchar(500)"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// NewPurchaseOrderItem creates a new purchase order item.
// totalCost is taken as given and never derived from quantity and unitCost.
func NewPurchaseOrderItem(orderID, productID uuid.UUID, productName, productSKU string, quantity int, unitCost, totalCost decimal.Decimal) (*PurchaseOrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if totalCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Total cost cannot be negative")
	}

	now := time.Now()
	return &PurchaseOrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		ProductSKU:  productSKU,
		Quantity:    quantity,
		UnitCost:    unitCost,
		TotalCost:   totalCost,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateQuantity updates the item's ordered quantity
func (i *PurchaseOrderItem) UpdateQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity < i.ReceivedQuantity {
		return shared.NewDomainError("INVALID_QUANTITY", "Ordered quantity cannot be less than received quantity")
	}

	i.Quantity = quantity
	i.UpdatedAt = time.Now()

	return nil
}

// AddReceivedQuantity adds to the received quantity.
// Receiving more than was ordered is allowed; the received quantity only
// ever grows.
func (i *PurchaseOrderItem) AddReceivedQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Receive quantity must be positive")
	}

	i.ReceivedQuantity += quantity
	i.UpdatedAt = time.Now()

	return nil
}

// RemainingQuantity returns the quantity still to be received
func (i *PurchaseOrderItem) RemainingQuantity() int {
	remaining := i.Quantity - i.ReceivedQuantity
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsFullyReceived returns true if all ordered quantity has been received
func (i *PurchaseOrderItem) IsFullyReceived() bool {
	return i.ReceivedQuantity >= i.Quantity
}

// ReceiptLine identifies a quantity received against one order item
type ReceiptLine struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
}

// ReceivedItemInfo describes one item update performed by a receipt
type ReceivedItemInfo struct {
	ItemID      uuid.UUID `json:"item_id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	ProductSKU  string    `json:"product_sku"`
	Quantity    int       `json:"quantity"`
}

// PurchaseOrder represents a purchase order aggregate root.
// It manages the order lifecycle from draft through receipt.
//
// All financial roll-ups (Subtotal, TaxAmount, ShippingAmount,
// DiscountAmount, TotalAmount) are supplied by the caller and persisted
// as given; the aggregate never recomputes them.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	PONumber             string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID           uuid.UUID           `gorm:"type:uuid;not null;index"`
	SupplierName         string              `gorm:"type:varchar(200);not null"`
	Items                []PurchaseOrderItem `gorm:"foreignKey:OrderID;references:ID"`
	Status               PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	OrderDate            time.Time           `gorm:"not null"`
	ExpectedDeliveryDate *time.Time          `gorm:"index"`
	ReceivedDate         *time.Time
	Subtotal             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingAmount       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountAmount       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Notes                string          `gorm:"type:text"`
	CreatedBy            uuid.UUID       `gorm:"type:uuid;not null;index"`
	SubmittedAt          *time.Time
	ApprovedBy           *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt           *time.Time
	OrderedAt            *time.Time
	CancelledAt          *time.Time
	CancelReason         string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new purchase order in DRAFT status
func NewPurchaseOrder(poNumber string, supplierID uuid.UUID, supplierName string, createdBy uuid.UUID) (*PurchaseOrder, error) {
	if poNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "PO number cannot be empty")
	}
	if len(poNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "PO number cannot exceed 50 characters")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Creating user cannot be empty")
	}

	order := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PONumber:          poNumber,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		Items:             make([]PurchaseOrderItem, 0),
		Status:            StatusDraft,
		OrderDate:         time.Now(),
		Subtotal:          decimal.Zero,
		TaxAmount:         decimal.Zero,
		ShippingAmount:    decimal.Zero,
		DiscountAmount:    decimal.Zero,
		TotalAmount:       decimal.Zero,
		CreatedBy:         createdBy,
	}

	order.AddDomainEvent(NewPurchaseOrderCreatedEvent(order))

	return order, nil
}

// AddItem adds a new item to the order. Only allowed in DRAFT status.
func (o *PurchaseOrder) AddItem(productID uuid.UUID, productName, productSKU string, quantity int, unitCost, totalCost decimal.Decimal) (*PurchaseOrderItem, error) {
	if o.Status != StatusDraft {
		return nil, NewInvalidTransitionError("add items to", o.Status, StatusDraft)
	}

	for _, item := range o.Items {
		if item.ProductID == productID {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already exists in order, update quantity instead")
		}
	}

	item, err := NewPurchaseOrderItem(o.ID, productID, productName, productSKU, quantity, unitCost, totalCost)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return item, nil
}

// UpdateItemQuantity updates the ordered quantity of an existing item.
// Only allowed in DRAFT status.
func (o *PurchaseOrder) UpdateItemQuantity(itemID uuid.UUID, quantity int) error {
	if o.Status != StatusDraft {
		return NewInvalidTransitionError("update items of", o.Status, StatusDraft)
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// RemoveItem removes an item from the order. Only allowed in DRAFT status.
func (o *PurchaseOrder) RemoveItem(itemID uuid.UUID) error {
	if o.Status != StatusDraft {
		return NewInvalidTransitionError("remove items from", o.Status, StatusDraft)
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// SetFinancials stores the caller-supplied financial roll-ups as given
func (o *PurchaseOrder) SetFinancials(subtotal, tax, shipping, discount, total decimal.Decimal) error {
	if subtotal.IsNegative() || tax.IsNegative() || shipping.IsNegative() || discount.IsNegative() || total.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amounts cannot be negative")
	}

	o.Subtotal = subtotal
	o.TaxAmount = tax
	o.ShippingAmount = shipping
	o.DiscountAmount = discount
	o.TotalAmount = total
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// SetExpectedDeliveryDate sets the expected delivery date
func (o *PurchaseOrder) SetExpectedDeliveryDate(date *time.Time) {
	o.ExpectedDeliveryDate = date
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// SetNotes sets the order notes
func (o *PurchaseOrder) SetNotes(notes string) {
	o.Notes = notes
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// Submit moves the order from DRAFT to SUBMITTED.
// Requires at least one item.
func (o *PurchaseOrder) Submit() error {
	if !o.Status.CanTransitionTo(StatusSubmitted) {
		return NewInvalidTransitionError("submit", o.Status, StatusDraft)
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot submit order without items")
	}

	now := time.Now()
	o.Status = StatusSubmitted
	o.SubmittedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderSubmittedEvent(o))

	return nil
}

// Approve moves the order from SUBMITTED to APPROVED, recording the approver
func (o *PurchaseOrder) Approve(approvedBy uuid.UUID) error {
	if o.Status != StatusSubmitted {
		return NewInvalidTransitionError("approve", o.Status, StatusSubmitted)
	}
	if approvedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Approving user cannot be empty")
	}

	now := time.Now()
	o.Status = StatusApproved
	o.ApprovedBy = &approvedBy
	o.ApprovedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderApprovedEvent(o))

	return nil
}

// MarkOrdered moves the order from APPROVED to ORDERED (sent to supplier)
func (o *PurchaseOrder) MarkOrdered() error {
	if o.Status != StatusApproved {
		return NewInvalidTransitionError("mark ordered", o.Status, StatusApproved)
	}

	now := time.Now()
	o.Status = StatusOrdered
	o.OrderedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderOrderedEvent(o))

	return nil
}

// RecordReceipts applies receipt lines to the order's items and then
// reconciles the order status from the accumulated quantities.
// Returns the per-item updates performed.
func (o *PurchaseOrder) RecordReceipts(lines []ReceiptLine) ([]ReceivedItemInfo, error) {
	if !o.Status.CanReceive() {
		return nil, NewInvalidTransitionError("receive goods for", o.Status,
			StatusApproved, StatusOrdered, StatusPartiallyReceived)
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Receipt lines cannot be empty")
	}

	received := make([]ReceivedItemInfo, 0, len(lines))

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", fmt.Sprintf("Receive quantity for item %s must be positive", line.ItemID))
		}

		var found bool
		for idx := range o.Items {
			if o.Items[idx].ID == line.ItemID {
				if err := o.Items[idx].AddReceivedQuantity(line.Quantity); err != nil {
					return nil, err
				}

				received = append(received, ReceivedItemInfo{
					ItemID:      o.Items[idx].ID,
					ProductID:   o.Items[idx].ProductID,
					ProductName: o.Items[idx].ProductName,
					ProductSKU:  o.Items[idx].ProductSKU,
					Quantity:    line.Quantity,
				})

				found = true
				break
			}
		}

		if !found {
			return nil, shared.NewDomainError("ITEM_NOT_FOUND", fmt.Sprintf("Item %s not found in order", line.ItemID))
		}
	}

	o.reconcile()

	o.AddDomainEvent(NewPurchaseOrderReceivedEvent(o, received))

	return received, nil
}

// Receive reconciles the order status from the already-recorded item
// quantities without changing them. Invoking it again on a partially
// received order is a no-op until more goods are recorded.
func (o *PurchaseOrder) Receive() error {
	if !o.Status.CanReceive() {
		return NewInvalidTransitionError("receive", o.Status,
			StatusApproved, StatusOrdered, StatusPartiallyReceived)
	}

	o.reconcile()

	o.AddDomainEvent(NewPurchaseOrderReceivedEvent(o, nil))

	return nil
}

// Cancel cancels the order from any non-terminal state
func (o *PurchaseOrder) Cancel(reason string) error {
	if o.Status.IsTerminal() {
		return NewInvalidTransitionError("cancel", o.Status,
			StatusDraft, StatusSubmitted, StatusApproved, StatusOrdered, StatusPartiallyReceived)
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	o.Status = StatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderCancelledEvent(o))

	return nil
}

// reconcile derives the order status from its items' received quantities.
// An order whose every item is fully received (vacuously true for an
// empty item set) is RECEIVED; anything else is PARTIALLY_RECEIVED.
func (o *PurchaseOrder) reconcile() {
	now := time.Now()
	if o.allItemsReceived() {
		o.Status = StatusReceived
		o.ReceivedDate = &now
	} else {
		o.Status = StatusPartiallyReceived
	}

	o.UpdatedAt = now
	o.IncrementVersion()
}

// allItemsReceived checks if every item has been fully received
func (o *PurchaseOrder) allItemsReceived() bool {
	for _, item := range o.Items {
		if !item.IsFullyReceived() {
			return false
		}
	}
	return true
}

// HasReceivedAnyGoods checks if any goods have been received
func (o *PurchaseOrder) HasReceivedAnyGoods() bool {
	for _, item := range o.Items {
		if item.ReceivedQuantity > 0 {
			return true
		}
	}
	return false
}

// TotalOrderedQuantity returns the total ordered quantity
func (o *PurchaseOrder) TotalOrderedQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// TotalReceivedQuantity returns the total received quantity
func (o *PurchaseOrder) TotalReceivedQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.ReceivedQuantity
	}
	return total
}

// ItemCount returns the number of items in the order
func (o *PurchaseOrder) ItemCount() int {
	return len(o.Items)
}

// IsDraft returns true if the order is in draft status
func (o *PurchaseOrder) IsDraft() bool {
	return o.Status == StatusDraft
}

// IsTerminal returns true if the order is received or cancelled
func (o *PurchaseOrder) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// CanModify returns true if the order's items can still be edited
func (o *PurchaseOrder) CanModify() bool {
	return o.IsDraft()
}

// GetItem returns an item by its ID
func (o *PurchaseOrder) GetItem(itemID uuid.UUID) *PurchaseOrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// GetItemByProduct returns an item by product ID
func (o *PurchaseOrder) GetItemByProduct(productID uuid.UUID) *PurchaseOrderItem {
	for idx := range o.Items {
		if o.Items[idx].ProductID == productID {
			return &o.Items[idx]
		}
	}
	return nil
}
