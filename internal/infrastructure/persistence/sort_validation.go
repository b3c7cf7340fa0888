package persistence

import "strings"

// ValidateSortOrder normalizes the sort order to ASC or DESC.
// Returns "DESC" for anything that is not a case-insensitive "asc".
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of
// allowed column names. Returns defaultField when the input is empty or
// not whitelisted. Sort fields are interpolated into ORDER BY clauses,
// so nothing outside the whitelist may ever pass through.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"sku":           true,
	"name":          true,
	"category":      true,
	"brand":         true,
	"cost_price":    true,
	"selling_price": true,
	"current_stock": true,
	"reorder_point": true,
}

// SupplierSortFields contains allowed sort fields for suppliers
var SupplierSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"city":         true,
	"country":      true,
	"rating":       true,
	"credit_limit": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"email":         true,
	"full_name":     true,
	"role":          true,
	"last_login_at": true,
}

// PurchaseOrderSortFields contains allowed sort fields for purchase orders
var PurchaseOrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"po_number":     true,
	"supplier_id":   true,
	"supplier_name": true,
	"status":        true,
	"order_date":    true,
	"total_amount":  true,
	"received_date": true,
	"submitted_at":  true,
}

// InventoryTransactionSortFields contains allowed sort fields for inventory transactions
var InventoryTransactionSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"transaction_type": true,
	"quantity":         true,
	"reference":        true,
}
