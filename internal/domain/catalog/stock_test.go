package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStockLevel(t *testing.T) {
	tests := []struct {
		name         string
		currentStock int
		reorderPoint int
		want         StockLevel
	}{
		{"zero stock zero reorder point", 0, 0, StockLevelLow},
		{"stock below reorder point", 5, 10, StockLevelLow},
		{"stock equal to reorder point", 10, 10, StockLevelLow},
		{"stock just above reorder point", 11, 10, StockLevelNormal},
		{"stock equal to twice reorder point", 20, 10, StockLevelNormal},
		{"stock just above twice reorder point", 21, 10, StockLevelHigh},
		{"large stock", 1000, 10, StockLevelHigh},
		{"positive stock with zero reorder point", 1, 0, StockLevelHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyStockLevel(tt.currentStock, tt.reorderPoint))
		})
	}
}

func TestClassifyStockStatus(t *testing.T) {
	tests := []struct {
		name         string
		currentStock int
		reorderPoint int
		want         StockStatus
	}{
		{"zero stock", 0, 10, StockStatusOutOfStock},
		{"zero stock zero reorder point", 0, 0, StockStatusOutOfStock},
		{"stock below reorder point", 5, 10, StockStatusLowStock},
		{"stock equal to reorder point", 10, 10, StockStatusLowStock},
		{"stock above reorder point", 11, 10, StockStatusInStock},
		{"positive stock with zero reorder point", 1, 0, StockStatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyStockStatus(tt.currentStock, tt.reorderPoint))
		})
	}
}

func TestClassifyStock(t *testing.T) {
	t.Run("combines both classifications", func(t *testing.T) {
		c := ClassifyStock(5, 10)
		assert.Equal(t, StockLevelLow, c.Level)
		assert.Equal(t, StockStatusLowStock, c.Status)
	})

	t.Run("out of stock is also low level", func(t *testing.T) {
		c := ClassifyStock(0, 10)
		assert.Equal(t, StockLevelLow, c.Level)
		assert.Equal(t, StockStatusOutOfStock, c.Status)
	})

	t.Run("high level is in stock", func(t *testing.T) {
		c := ClassifyStock(25, 10)
		assert.Equal(t, StockLevelHigh, c.Level)
		assert.Equal(t, StockStatusInStock, c.Status)
	})
}
