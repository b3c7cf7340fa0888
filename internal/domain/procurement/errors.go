package procurement

import (
	"fmt"
	"strings"
)

// InvalidTransitionError is returned when a lifecycle action is attempted
// from a status it is not allowed in. It carries the status(es) the action
// requires and the status the order was actually in.
type InvalidTransitionError struct {
	Action   string
	Required []PurchaseOrderStatus
	Actual   PurchaseOrderStatus
}

// Error implements the error interface
func (e *InvalidTransitionError) Error() string {
	required := make([]string, len(e.Required))
	for i, s := range e.Required {
		required[i] = s.String()
	}
	return fmt.Sprintf("cannot %s order in %s status (requires %s)",
		e.Action, e.Actual, strings.Join(required, " or "))
}

// NewInvalidTransitionError creates a new InvalidTransitionError
func NewInvalidTransitionError(action string, actual PurchaseOrderStatus, required ...PurchaseOrderStatus) *InvalidTransitionError {
	return &InvalidTransitionError{
		Action:   action,
		Required: required,
		Actual:   actual,
	}
}
