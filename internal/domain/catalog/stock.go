package catalog

// StockLevel classifies how a product's stock compares to its reorder point
// from a replenishment point of view.
type StockLevel string

const (
	StockLevelLow    StockLevel = "low"
	StockLevelNormal StockLevel = "normal"
	StockLevelHigh   StockLevel = "high"
)

// StockStatus classifies a product's availability for fulfillment.
type StockStatus string

const (
	StockStatusOutOfStock StockStatus = "out-of-stock"
	StockStatusLowStock   StockStatus = "low-stock"
	StockStatusInStock    StockStatus = "in-stock"
)

// ClassifyStockLevel returns the replenishment band for the given stock
// and reorder point:
//
//	low    when currentStock <= reorderPoint
//	normal when reorderPoint < currentStock <= 2*reorderPoint
//	high   when currentStock > 2*reorderPoint
//
// A zero reorder point places any positive stock in the high band.
func ClassifyStockLevel(currentStock, reorderPoint int) StockLevel {
	switch {
	case currentStock <= reorderPoint:
		return StockLevelLow
	case currentStock <= 2*reorderPoint:
		return StockLevelNormal
	default:
		return StockLevelHigh
	}
}

// ClassifyStockStatus returns the availability band for the given stock
// and reorder point:
//
//	out-of-stock when currentStock == 0
//	low-stock    when 0 < currentStock <= reorderPoint
//	in-stock     when currentStock > reorderPoint
func ClassifyStockStatus(currentStock, reorderPoint int) StockStatus {
	switch {
	case currentStock == 0:
		return StockStatusOutOfStock
	case currentStock <= reorderPoint:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// StockClassification bundles both classifications of a product's stock.
type StockClassification struct {
	Level  StockLevel  `json:"level"`
	Status StockStatus `json:"status"`
}

// ClassifyStock returns both the replenishment and availability bands.
func ClassifyStock(currentStock, reorderPoint int) StockClassification {
	return StockClassification{
		Level:  ClassifyStockLevel(currentStock, reorderPoint),
		Status: ClassifyStockStatus(currentStock, reorderPoint),
	}
}
