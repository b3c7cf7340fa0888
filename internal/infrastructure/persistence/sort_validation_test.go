package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"asc", "ASC"},
		{"ASC", "ASC"},
		{" Asc ", "ASC"},
		{"desc", "DESC"},
		{"DESC", "DESC"},
		{"", "DESC"},
		{"sideways", "DESC"},
		{"asc; DROP TABLE products", "DESC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidateSortOrder(tt.input), "input %q", tt.input)
	}
}

func TestValidateSortField(t *testing.T) {
	allowed := map[string]bool{"name": true, "created_at": true}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"allowed field passes", "name", "name"},
		{"empty falls back to default", "", "created_at"},
		{"unknown falls back to default", "password_hash", "created_at"},
		{"injection falls back to default", "name; DROP TABLE users", "created_at"},
		{"whitespace is trimmed", " name ", "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateSortField(tt.input, allowed, "created_at"))
		})
	}
}

func TestSortFieldWhitelists(t *testing.T) {
	// Whitelists must never allow sensitive or unknown columns through
	assert.False(t, UserSortFields["password_hash"])
	assert.True(t, ProductSortFields["current_stock"])
	assert.True(t, PurchaseOrderSortFields["po_number"])
	assert.True(t, SupplierSortFields["rating"])
	assert.True(t, InventoryTransactionSortFields["transaction_type"])
}
