package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/catalog"
	"github.com/supplychain/backend/internal/domain/inventory"
	"github.com/supplychain/backend/internal/domain/procurement"
	"github.com/supplychain/backend/internal/domain/shared"
)

// ProductService handles product catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	txRepo      inventory.TransactionRepository
	orderRepo   procurement.PurchaseOrderRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	txRepo inventory.TransactionRepository,
	orderRepo procurement.PurchaseOrderRepository,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		txRepo:      txRepo,
		orderRepo:   orderRepo,
	}
}

// Classify returns the stock classification for arbitrary figures
// without touching any stored product.
func (s *ProductService) Classify(currentStock, reorderPoint int) StockClassificationResponse {
	c := catalog.ClassifyStock(currentStock, reorderPoint)
	return StockClassificationResponse{
		CurrentStock: currentStock,
		ReorderPoint: reorderPoint,
		Level:        string(c.Level),
		Status:       string(c.Status),
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Product with SKU %s already exists", req.SKU))
	}

	product, err := catalog.NewProduct(req.SKU, req.Name, req.Unit)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description, req.Category, req.Brand); err != nil {
		return nil, err
	}
	if err := product.SetPrices(req.CostPrice, req.SellingPrice, req.WholesalePrice); err != nil {
		return nil, err
	}
	if err := product.SetStockLevels(req.MinStockLevel, req.MaxStockLevel, req.ReorderPoint); err != nil {
		return nil, err
	}
	product.SetSupplier(req.SupplierID)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetBySKU retrieves a product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
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

	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.ActiveOnly {
		domainFilter.Filters["is_active"] = true
	}

	var (
		products []catalog.Product
		total    int64
		err      error
	)

	switch {
	case filter.StockLevel != "":
		level := catalog.StockLevel(filter.StockLevel)
		products, err = s.productRepo.FindByStockLevel(ctx, level, domainFilter)
		if err != nil {
			return nil, err
		}
		total, err = s.productRepo.CountByStockLevel(ctx, level)
	case filter.StockStatus != "":
		status := catalog.StockStatus(filter.StockStatus)
		products, err = s.productRepo.FindByStockStatus(ctx, status, domainFilter)
		if err != nil {
			return nil, err
		}
		total, err = s.productRepo.CountByStockStatus(ctx, status)
	default:
		products, err = s.productRepo.FindAll(ctx, domainFilter)
		if err != nil {
			return nil, err
		}
		total, err = s.productRepo.Count(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Update updates a product's editable fields
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	description := product.Description
	category := product.Category
	brand := product.Brand
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Category != nil {
		category = *req.Category
	}
	if req.Brand != nil {
		brand = *req.Brand
	}
	if err := product.Update(name, description, category, brand); err != nil {
		return nil, err
	}

	if req.CostPrice != nil || req.SellingPrice != nil || req.WholesalePrice != nil {
		cost := product.CostPrice
		selling := product.SellingPrice
		wholesale := product.WholesalePrice
		if req.CostPrice != nil {
			cost = *req.CostPrice
		}
		if req.SellingPrice != nil {
			selling = *req.SellingPrice
		}
		if req.WholesalePrice != nil {
			wholesale = *req.WholesalePrice
		}
		if err := product.SetPrices(cost, selling, wholesale); err != nil {
			return nil, err
		}
	}

	if req.MinStockLevel != nil || req.MaxStockLevel != nil || req.ReorderPoint != nil {
		minLevel := product.MinStockLevel
		maxLevel := product.MaxStockLevel
		reorderPoint := product.ReorderPoint
		if req.MinStockLevel != nil {
			minLevel = *req.MinStockLevel
		}
		if req.MaxStockLevel != nil {
			maxLevel = *req.MaxStockLevel
		}
		if req.ReorderPoint != nil {
			reorderPoint = *req.ReorderPoint
		}
		if err := product.SetStockLevels(minLevel, maxLevel, reorderPoint); err != nil {
			return nil, err
		}
	}

	if req.SupplierID != nil {
		product.SetSupplier(req.SupplierID)
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product. Blocked while inventory transactions or
// purchase order items still reference it.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	txCount, err := s.txRepo.CountByProduct(ctx, product.ID)
	if err != nil {
		return err
	}
	if txCount > 0 {
		return shared.NewDomainError("PRODUCT_IN_USE", "Cannot delete product with inventory transactions")
	}

	referenced, err := s.orderRepo.ExistsByProduct(ctx, product.ID)
	if err != nil {
		return err
	}
	if referenced {
		return shared.NewDomainError("PRODUCT_IN_USE", "Cannot delete product referenced by purchase orders")
	}

	return s.productRepo.Delete(ctx, id)
}

// IncreaseStock increases a product's stock and writes the inventory
// trail record in the same logical operation. Used by goods receipt.
func (s *ProductService) IncreaseStock(ctx context.Context, productID uuid.UUID, quantity int, reference, reason string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.IncreaseStock(quantity); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	record, err := inventory.NewTransaction(product.ID, inventory.TransactionTypeInbound, quantity, reference, reason)
	if err != nil {
		return nil, err
	}
	if err := s.txRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// AdjustStock applies a manual stock correction with an audit record
func (s *ProductService) AdjustStock(ctx context.Context, productID uuid.UUID, delta int, reason string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if delta >= 0 {
		err = product.IncreaseStock(delta)
	} else {
		err = product.DecreaseStock(-delta)
	}
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	record, err := inventory.NewTransaction(product.ID, inventory.TransactionTypeAdjustment, delta, "", reason)
	if err != nil {
		return nil, err
	}
	if err := s.txRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}
