package partner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplychain/backend/internal/domain/catalog"
	"github.com/supplychain/backend/internal/domain/partner"
	"github.com/supplychain/backend/internal/domain/procurement"
	"github.com/supplychain/backend/internal/domain/shared"
)

// CreateSupplierRequest represents a request to create a supplier
type CreateSupplierRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=200"`
	ContactPerson string          `json:"contact_person" binding:"omitempty,max=100"`
	Phone         string          `json:"phone" binding:"omitempty,max=50"`
	Email         string          `json:"email" binding:"omitempty,email"`
	Address       string          `json:"address" binding:"omitempty,max=500"`
	City          string          `json:"city" binding:"omitempty,max=100"`
	Country       string          `json:"country" binding:"omitempty,max=100"`
	TaxID         string          `json:"tax_id" binding:"omitempty,max=50"`
	PaymentTerms  string          `json:"payment_terms" binding:"omitempty,max=100"`
	CreditLimit   decimal.Decimal `json:"credit_limit"`
	Rating        int             `json:"rating" binding:"omitempty,min=0,max=5"`
	Notes         string          `json:"notes"`
	IsPreferred   bool            `json:"is_preferred"`
}

// UpdateSupplierRequest represents a request to update a supplier
type UpdateSupplierRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=200"`
	ContactPerson *string          `json:"contact_person" binding:"omitempty,max=100"`
	Phone         *string          `json:"phone" binding:"omitempty,max=50"`
	Email         *string          `json:"email" binding:"omitempty,email"`
	Address       *string          `json:"address" binding:"omitempty,max=500"`
	City          *string          `json:"city" binding:"omitempty,max=100"`
	Country       *string          `json:"country" binding:"omitempty,max=100"`
	TaxID         *string          `json:"tax_id" binding:"omitempty,max=50"`
	PaymentTerms  *string          `json:"payment_terms" binding:"omitempty,max=100"`
	CreditLimit   *decimal.Decimal `json:"credit_limit"`
	Rating        *int             `json:"rating" binding:"omitempty,min=0,max=5"`
	Notes         *string          `json:"notes"`
	IsPreferred   *bool            `json:"is_preferred"`
}

// SupplierListFilter represents filter options for supplier listing
type SupplierListFilter struct {
	Search     string `form:"search"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	ContactPerson string          `json:"contact_person,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Email         string          `json:"email,omitempty"`
	Address       string          `json:"address,omitempty"`
	City          string          `json:"city,omitempty"`
	Country       string          `json:"country,omitempty"`
	TaxID         string          `json:"tax_id,omitempty"`
	PaymentTerms  string          `json:"payment_terms,omitempty"`
	CreditLimit   decimal.Decimal `json:"credit_limit"`
	Rating        int             `json:"rating"`
	Notes         string          `json:"notes,omitempty"`
	IsActive      bool            `json:"is_active"`
	IsPreferred   bool            `json:"is_preferred"`
	Version       int             `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToSupplierResponse converts a domain supplier to a response DTO
func ToSupplierResponse(supplier *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            supplier.ID,
		Name:          supplier.Name,
		ContactPerson: supplier.ContactPerson,
		Phone:         supplier.Phone,
		Email:         supplier.Email,
		Address:       supplier.Address,
		City:          supplier.City,
		Country:       supplier.Country,
		TaxID:         supplier.TaxID,
		PaymentTerms:  supplier.PaymentTerms,
		CreditLimit:   supplier.CreditLimit,
		Rating:        supplier.Rating,
		Notes:         supplier.Notes,
		IsActive:      supplier.IsActive,
		IsPreferred:   supplier.IsPreferred,
		Version:       supplier.GetVersion(),
		CreatedAt:     supplier.CreatedAt,
		UpdatedAt:     supplier.UpdatedAt,
	}
}

// SupplierService handles supplier business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	productRepo  catalog.ProductRepository
	orderRepo    procurement.PurchaseOrderRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(
	supplierRepo partner.SupplierRepository,
	productRepo catalog.ProductRepository,
	orderRepo procurement.PurchaseOrderRepository,
) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
	}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	exists, err := s.supplierRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Supplier %q already exists", req.Name))
	}

	supplier, err := partner.NewSupplier(req.Name)
	if err != nil {
		return nil, err
	}

	if err := supplier.SetContact(req.ContactPerson, req.Phone, req.Email); err != nil {
		return nil, err
	}
	if err := supplier.SetAddress(req.Address, req.City, req.Country); err != nil {
		return nil, err
	}
	if err := supplier.SetTaxID(req.TaxID); err != nil {
		return nil, err
	}
	if err := supplier.SetPaymentTerms(req.PaymentTerms, req.CreditLimit); err != nil {
		return nil, err
	}
	if err := supplier.SetRating(req.Rating); err != nil {
		return nil, err
	}
	if req.Notes != "" {
		if err := supplier.Update(req.Name, req.Notes); err != nil {
			return nil, err
		}
	}
	if req.IsPreferred {
		supplier.MarkPreferred()
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers with filtering and pagination
func (s *SupplierService) List(ctx context.Context, filter SupplierListFilter) (*shared.Paginated[SupplierResponse], error) {
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
	if filter.ActiveOnly {
		domainFilter.Filters["is_active"] = true
	}

	suppliers, err := s.supplierRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.supplierRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = ToSupplierResponse(&suppliers[i])
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Update updates a supplier's editable fields
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := supplier.Name
	notes := supplier.Notes
	if req.Name != nil {
		name = *req.Name
	}
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := supplier.Update(name, notes); err != nil {
		return nil, err
	}

	if req.ContactPerson != nil || req.Phone != nil || req.Email != nil {
		contact := supplier.ContactPerson
		phone := supplier.Phone
		email := supplier.Email
		if req.ContactPerson != nil {
			contact = *req.ContactPerson
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}
		if err := supplier.SetContact(contact, phone, email); err != nil {
			return nil, err
		}
	}

	if req.Address != nil || req.City != nil || req.Country != nil {
		address := supplier.Address
		city := supplier.City
		country := supplier.Country
		if req.Address != nil {
			address = *req.Address
		}
		if req.City != nil {
			city = *req.City
		}
		if req.Country != nil {
			country = *req.Country
		}
		if err := supplier.SetAddress(address, city, country); err != nil {
			return nil, err
		}
	}

	if req.TaxID != nil {
		if err := supplier.SetTaxID(*req.TaxID); err != nil {
			return nil, err
		}
	}

	if req.PaymentTerms != nil || req.CreditLimit != nil {
		terms := supplier.PaymentTerms
		limit := supplier.CreditLimit
		if req.PaymentTerms != nil {
			terms = *req.PaymentTerms
		}
		if req.CreditLimit != nil {
			limit = *req.CreditLimit
		}
		if err := supplier.SetPaymentTerms(terms, limit); err != nil {
			return nil, err
		}
	}

	if req.Rating != nil {
		if err := supplier.SetRating(*req.Rating); err != nil {
			return nil, err
		}
	}

	if req.IsPreferred != nil {
		if *req.IsPreferred {
			supplier.MarkPreferred()
		} else {
			supplier.UnmarkPreferred()
		}
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Delete deletes a supplier. Blocked while products or incomplete
// purchase orders still reference it.
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	productCount, err := s.productRepo.CountBySupplier(ctx, supplier.ID)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return shared.NewDomainError("SUPPLIER_IN_USE", "Cannot delete supplier with associated products")
	}

	orderCount, err := s.orderRepo.CountIncompleteBySupplier(ctx, supplier.ID)
	if err != nil {
		return err
	}
	if orderCount > 0 {
		return shared.NewDomainError("SUPPLIER_IN_USE", "Cannot delete supplier with open purchase orders")
	}

	return s.supplierRepo.Delete(ctx, id)
}
