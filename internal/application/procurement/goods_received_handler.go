package procurement

import (
	"context"
	"fmt"

	catalogapp "github.com/supplychain/backend/internal/application/catalog"
	"github.com/supplychain/backend/internal/domain/procurement"
	"github.com/supplychain/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// GoodsReceivedHandler handles PurchaseOrderReceivedEvent and replenishes
// product stock for each received item
type GoodsReceivedHandler struct {
	productService *catalogapp.ProductService
	logger         *zap.Logger
}

// NewGoodsReceivedHandler creates a new handler for goods received events
func NewGoodsReceivedHandler(productService *catalogapp.ProductService, logger *zap.Logger) *GoodsReceivedHandler {
	return &GoodsReceivedHandler{
		productService: productService,
		logger:         logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *GoodsReceivedHandler) EventTypes() []string {
	return []string{procurement.EventTypePurchaseOrderReceived}
}

// Handle processes a PurchaseOrderReceivedEvent
func (h *GoodsReceivedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	receivedEvent, ok := event.(*procurement.PurchaseOrderReceivedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", procurement.EventTypePurchaseOrderReceived),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			procurement.EventTypePurchaseOrderReceived, event.EventType())
	}

	if len(receivedEvent.Items) == 0 {
		// Status-only reconciliation, no goods moved.
		return nil
	}

	h.logger.Info("processing goods received event",
		zap.String("order_id", receivedEvent.OrderID.String()),
		zap.String("po_number", receivedEvent.PONumber),
		zap.Int("items_count", len(receivedEvent.Items)),
		zap.Bool("fully_received", receivedEvent.FullyReceived),
	)

	var lastErr error
	successCount := 0
	for _, item := range receivedEvent.Items {
		reference := fmt.Sprintf("PO:%s", receivedEvent.PONumber)
		if _, err := h.productService.IncreaseStock(ctx, item.ProductID, item.Quantity, reference, "Purchase order receiving"); err != nil {
			h.logger.Error("failed to increase stock for received item",
				zap.String("order_id", receivedEvent.OrderID.String()),
				zap.String("product_id", item.ProductID.String()),
				zap.String("product_sku", item.ProductSKU),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
			lastErr = err
			// Keep processing the remaining items.
			continue
		}
		successCount++
	}

	h.logger.Info("goods received processing completed",
		zap.String("order_id", receivedEvent.OrderID.String()),
		zap.Int("total_items", len(receivedEvent.Items)),
		zap.Int("success_count", successCount),
	)

	if lastErr != nil {
		return fmt.Errorf("some items failed to process: %w", lastErr)
	}

	return nil
}
