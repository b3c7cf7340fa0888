package procurement

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	StatusDraft             PurchaseOrderStatus = "DRAFT"
	StatusSubmitted         PurchaseOrderStatus = "SUBMITTED"
	StatusApproved          PurchaseOrderStatus = "APPROVED"
	StatusOrdered           PurchaseOrderStatus = "ORDERED"
	StatusPartiallyReceived PurchaseOrderStatus = "PARTIALLY_RECEIVED"
	StatusReceived          PurchaseOrderStatus = "RECEIVED"
	StatusCancelled         PurchaseOrderStatus = "CANCELLED"
)

// AllStatuses returns every valid purchase order status
func AllStatuses() []PurchaseOrderStatus {
	return []PurchaseOrderStatus{
		StatusDraft, StatusSubmitted, StatusApproved, StatusOrdered,
		StatusPartiallyReceived, StatusReceived, StatusCancelled,
	}
}

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusOrdered,
		StatusPartiallyReceived, StatusReceived, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case StatusDraft:
		return target == StatusSubmitted || target == StatusCancelled
	case StatusSubmitted:
		return target == StatusApproved || target == StatusCancelled
	case StatusApproved:
		return target == StatusOrdered || target == StatusPartiallyReceived ||
			target == StatusReceived || target == StatusCancelled
	case StatusOrdered:
		return target == StatusPartiallyReceived || target == StatusReceived ||
			target == StatusCancelled
	case StatusPartiallyReceived:
		return target == StatusPartiallyReceived || target == StatusReceived ||
			target == StatusCancelled
	case StatusReceived, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// CanReceive returns true if receiving goods is allowed in this status
func (s PurchaseOrderStatus) CanReceive() bool {
	return s == StatusApproved || s == StatusOrdered || s == StatusPartiallyReceived
}

// IsTerminal returns true for states no transition leaves
func (s PurchaseOrderStatus) IsTerminal() bool {
	return s == StatusReceived || s == StatusCancelled
}
