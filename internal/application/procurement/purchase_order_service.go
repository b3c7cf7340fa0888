package procurement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/catalog"
	"github.com/supplychain/backend/internal/domain/identity"
	"github.com/supplychain/backend/internal/domain/partner"
	"github.com/supplychain/backend/internal/domain/procurement"
	"github.com/supplychain/backend/internal/domain/shared"
)

// PurchaseOrderService handles purchase order business operations
type PurchaseOrderService struct {
	orderRepo      procurement.PurchaseOrderRepository
	supplierRepo   partner.SupplierRepository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	orderRepo procurement.PurchaseOrderRepository,
	supplierRepo partner.SupplierRepository,
	productRepo catalog.ProductRepository,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new purchase order in DRAFT status
func (s *PurchaseOrderService) Create(ctx context.Context, actor Actor, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.IsActive {
		return nil, shared.NewDomainError("SUPPLIER_INACTIVE", "Cannot order from an inactive supplier")
	}

	poNumber := req.PONumber
	if poNumber != "" {
		taken, err := s.orderRepo.ExistsByNumber(ctx, poNumber)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Purchase order %s already exists", poNumber))
		}
	} else {
		var err error
		poNumber, err = s.orderRepo.GenerateOrderNumber(ctx)
		if err != nil {
			return nil, err
		}
	}

	order, err := procurement.NewPurchaseOrder(poNumber, supplier.ID, supplier.Name, actor.UserID)
	if err != nil {
		return nil, err
	}

	for _, input := range req.Items {
		product, err := s.productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			return nil, err
		}

		if _, err := order.AddItem(product.ID, product.Name, product.SKU, input.Quantity, input.UnitCost, input.TotalCost); err != nil {
			return nil, err
		}
	}

	if err := order.SetFinancials(req.Subtotal, req.TaxAmount, req.ShippingAmount, req.DiscountAmount, req.TotalAmount); err != nil {
		return nil, err
	}

	if req.ExpectedDeliveryDate != nil {
		order.SetExpectedDeliveryDate(req.ExpectedDeliveryDate)
	}
	if req.Notes != "" {
		order.SetNotes(req.Notes)
	}

	if err := s.saveAndPublish(ctx, order, s.orderRepo.Save); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// GetByNumber retrieves a purchase order by PO number
func (s *PurchaseOrderService) GetByNumber(ctx context.Context, poNumber string) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByNumber(ctx, poNumber)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// List retrieves purchase orders with filtering and pagination
func (s *PurchaseOrderService) List(ctx context.Context, filter PurchaseOrderListFilter) (*shared.Paginated[PurchaseOrderResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}
	if filter.StartDate != nil {
		domainFilter.Filters["order_date_from"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["order_date_to"] = *filter.EndDate
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]PurchaseOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToPurchaseOrderResponse(&orders[i])
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Update updates a draft purchase order's mutable fields
func (s *PurchaseOrderService) Update(ctx context.Context, orderID uuid.UUID, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.CanModify() {
		return nil, procurement.NewInvalidTransitionError("update", order.Status, procurement.StatusDraft)
	}

	if req.Subtotal != nil || req.TaxAmount != nil || req.ShippingAmount != nil || req.DiscountAmount != nil || req.TotalAmount != nil {
		subtotal := order.Subtotal
		tax := order.TaxAmount
		shipping := order.ShippingAmount
		discount := order.DiscountAmount
		total := order.TotalAmount
		if req.Subtotal != nil {
			subtotal = *req.Subtotal
		}
		if req.TaxAmount != nil {
			tax = *req.TaxAmount
		}
		if req.ShippingAmount != nil {
			shipping = *req.ShippingAmount
		}
		if req.DiscountAmount != nil {
			discount = *req.DiscountAmount
		}
		if req.TotalAmount != nil {
			total = *req.TotalAmount
		}
		if err := order.SetFinancials(subtotal, tax, shipping, discount, total); err != nil {
			return nil, err
		}
	}

	if req.ExpectedDeliveryDate != nil {
		order.SetExpectedDeliveryDate(req.ExpectedDeliveryDate)
	}
	if req.Notes != nil {
		order.SetNotes(*req.Notes)
	}

	if err := s.saveAndPublish(ctx, order, s.orderRepo.SaveWithLock); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Submit submits a draft order for approval
func (s *PurchaseOrderService) Submit(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, orderID, func(order *procurement.PurchaseOrder) error {
		return order.Submit()
	})
}

// Approve approves a submitted order. Restricted to elevated roles.
func (s *PurchaseOrderService) Approve(ctx context.Context, orderID uuid.UUID, actor Actor) (*PurchaseOrderResponse, error) {
	if !identity.Can(actor.Role, identity.OpApprovePurchaseOrder) {
		return nil, shared.ErrForbidden
	}

	return s.transition(ctx, orderID, func(order *procurement.PurchaseOrder) error {
		return order.Approve(actor.UserID)
	})
}

// MarkOrdered marks an approved order as sent to the supplier
func (s *PurchaseOrderService) MarkOrdered(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, orderID, func(order *procurement.PurchaseOrder) error {
		return order.MarkOrdered()
	})
}

// RecordReceipt records received goods against an order's items and
// reconciles the order status. Stock levels are updated asynchronously
// by the goods-received event handler.
func (s *PurchaseOrderService) RecordReceipt(ctx context.Context, orderID uuid.UUID, req RecordReceiptRequest) (*ReceiptResultResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	lines := make([]procurement.ReceiptLine, len(req.Lines))
	for i, line := range req.Lines {
		lines[i] = procurement.ReceiptLine{ItemID: line.ItemID, Quantity: line.Quantity}
	}

	received, err := order.RecordReceipts(lines)
	if err != nil {
		return nil, err
	}

	if err := s.saveAndPublish(ctx, order, s.orderRepo.SaveWithLock); err != nil {
		return nil, err
	}

	return &ReceiptResultResponse{
		Order:           ToPurchaseOrderResponse(order),
		ReceivedItems:   ToReceivedItemResponses(received),
		IsFullyReceived: order.Status == procurement.StatusReceived,
	}, nil
}

// Receive reconciles an order's status from its recorded item quantities
func (s *PurchaseOrderService) Receive(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, orderID, func(order *procurement.PurchaseOrder) error {
		return order.Receive()
	})
}

// Cancel cancels a purchase order
func (s *PurchaseOrderService) Cancel(ctx context.Context, orderID uuid.UUID, req CancelPurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, orderID, func(order *procurement.PurchaseOrder) error {
		return order.Cancel(req.Reason)
	})
}

// Delete deletes a purchase order. Restricted to elevated roles.
func (s *PurchaseOrderService) Delete(ctx context.Context, orderID uuid.UUID, actor Actor) error {
	if !identity.Can(actor.Role, identity.OpDeletePurchaseOrder) {
		return shared.ErrForbidden
	}

	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return err
	}

	return s.orderRepo.Delete(ctx, orderID)
}

// transition loads an order, applies a lifecycle action, and saves it
// under the optimistic lock.
func (s *PurchaseOrderService) transition(ctx context.Context, orderID uuid.UUID, action func(*procurement.PurchaseOrder) error) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := action(order); err != nil {
		return nil, err
	}

	if err := s.saveAndPublish(ctx, order, s.orderRepo.SaveWithLock); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// saveAndPublish saves the aggregate and then publishes its buffered events
func (s *PurchaseOrderService) saveAndPublish(ctx context.Context, order *procurement.PurchaseOrder, save func(context.Context, *procurement.PurchaseOrder) error) error {
	events := order.GetDomainEvents()
	order.ClearDomainEvents()

	if err := save(ctx, order); err != nil {
		return err
	}

	if s.eventPublisher != nil && len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			return fmt.Errorf("publish purchase order events: %w", err)
		}
	}

	return nil
}
