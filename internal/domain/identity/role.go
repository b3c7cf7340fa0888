package identity

// Role is the closed set of roles a user can hold
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// IsValid checks if the role is a known one
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// IsElevated returns true for roles with administrative privileges
func (r Role) IsElevated() bool {
	return r == RoleAdmin
}

// Operation identifies a guarded action in the system
type Operation string

const (
	OpApprovePurchaseOrder Operation = "purchase_order.approve"
	OpDeletePurchaseOrder  Operation = "purchase_order.delete"
	OpManageUsers          Operation = "user.manage"
)

// elevatedOnly lists the operations restricted to elevated roles.
// Every other operation is open to any authenticated user.
var elevatedOnly = map[Operation]bool{
	OpApprovePurchaseOrder: true,
	OpDeletePurchaseOrder:  true,
	OpManageUsers:          true,
}

// Can reports whether a role is allowed to perform an operation
func Can(role Role, op Operation) bool {
	if !role.IsValid() {
		return false
	}
	if elevatedOnly[op] {
		return role.IsElevated()
	}
	return true
}
