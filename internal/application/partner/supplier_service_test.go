package partner

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/supplychain/backend/internal/domain/catalog"
	"github.com/supplychain/backend/internal/domain/partner"
	"github.com/supplychain/backend/internal/domain/procurement"
	"github.com/supplychain/backend/internal/domain/shared"
)

// MockSupplierRepository is a mock implementation of SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByName(ctx context.Context, name string) (*partner.Supplier, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByStockLevel(ctx context.Context, level catalog.StockLevel, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, level, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByStockStatus(ctx context.Context, status catalog.StockStatus, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByStockLevel(ctx context.Context, level catalog.StockLevel) (int64, error) {
	args := m.Called(ctx, level)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByStockStatus(ctx context.Context, status catalog.StockStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

// MockPurchaseOrderRepository is a mock implementation of procurement.PurchaseOrderRepository
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByNumber(ctx context.Context, poNumber string) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, poNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	args := m.Called(ctx, supplierID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByStatus(ctx context.Context, status procurement.PurchaseOrderStatus, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) Save(ctx context.Context, order *procurement.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) SaveWithLock(ctx context.Context, order *procurement.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseOrderRepository) CountIncompleteBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseOrderRepository) ExistsByProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPurchaseOrderRepository) ExistsByNumber(ctx context.Context, poNumber string) (bool, error) {
	args := m.Called(ctx, poNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockPurchaseOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func newTestSupplierService() (*SupplierService, *MockSupplierRepository, *MockProductRepository, *MockPurchaseOrderRepository) {
	supplierRepo := new(MockSupplierRepository)
	productRepo := new(MockProductRepository)
	orderRepo := new(MockPurchaseOrderRepository)
	service := NewSupplierService(supplierRepo, productRepo, orderRepo)
	return service, supplierRepo, productRepo, orderRepo
}

func createTestSupplier() *partner.Supplier {
	supplier, _ := partner.NewSupplier("Acme Components")
	return supplier
}

func TestSupplierService_Create(t *testing.T) {
	t.Run("create supplier successfully", func(t *testing.T) {
		service, supplierRepo, _, _ := newTestSupplierService()
		ctx := context.Background()

		supplierRepo.On("ExistsByName", mock.Anything, "Acme Components").Return(false, nil)
		supplierRepo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Supplier")).Return(nil)

		req := CreateSupplierRequest{
			Name:          "Acme Components",
			ContactPerson: "Jane Smith",
			Email:         "jane@acme.example",
			PaymentTerms:  "NET30",
			CreditLimit:   decimal.NewFromInt(50000),
			Rating:        4,
			IsPreferred:   true,
		}

		result, err := service.Create(ctx, req)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, "Acme Components", result.Name)
		assert.Equal(t, 4, result.Rating)
		assert.True(t, result.IsPreferred)
		assert.True(t, result.IsActive)
		supplierRepo.AssertExpectations(t)
	})

	t.Run("fail when name already exists", func(t *testing.T) {
		service, supplierRepo, _, _ := newTestSupplierService()
		ctx := context.Background()

		supplierRepo.On("ExistsByName", mock.Anything, "Acme Components").Return(true, nil)

		result, err := service.Create(ctx, CreateSupplierRequest{Name: "Acme Components"})

		assert.Error(t, err)
		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		supplierRepo.AssertNotCalled(t, "Save")
	})

	t.Run("fail on invalid rating", func(t *testing.T) {
		service, supplierRepo, _, _ := newTestSupplierService()
		ctx := context.Background()

		supplierRepo.On("ExistsByName", mock.Anything, "Acme Components").Return(false, nil)

		result, err := service.Create(ctx, CreateSupplierRequest{Name: "Acme Components", Rating: 9})

		assert.Error(t, err)
		assert.Nil(t, result)
		supplierRepo.AssertNotCalled(t, "Save")
	})
}

func TestSupplierService_List(t *testing.T) {
	t.Run("active-only filter is passed to repository", func(t *testing.T) {
		service, supplierRepo, _, _ := newTestSupplierService()
		ctx := context.Background()

		matchActive := mock.MatchedBy(func(filter shared.Filter) bool {
			active, ok := filter.Filters["is_active"].(bool)
			return ok && active
		})
		supplierRepo.On("FindAll", ctx, matchActive).Return([]partner.Supplier{*createTestSupplier()}, nil)
		supplierRepo.On("Count", ctx, matchActive).Return(int64(1), nil)

		result, err := service.List(ctx, SupplierListFilter{ActiveOnly: true})

		assert.NoError(t, err)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, int64(1), result.Total)
		supplierRepo.AssertExpectations(t)
	})
}

func TestSupplierService_Update(t *testing.T) {
	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		service, supplierRepo, _, _ := newTestSupplierService()
		ctx := context.Background()

		supplier := createTestSupplier()
		supplier.SetContact("Jane Smith", "555-0100", "jane@acme.example")
		supplierRepo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
		supplierRepo.On("Save", mock.Anything, supplier).Return(nil)

		phone := "555-0199"
		result, err := service.Update(ctx, supplier.ID, UpdateSupplierRequest{Phone: &phone})

		assert.NoError(t, err)
		assert.Equal(t, "555-0199", result.Phone)
		assert.Equal(t, "Jane Smith", result.ContactPerson)
		assert.Equal(t, "jane@acme.example", result.Email)
		supplierRepo.AssertExpectations(t)
	})

	t.Run("unmark preferred supplier", func(t *testing.T) {
		service, supplierRepo, _, _ := newTestSupplierService()
		ctx := context.Background()

		supplier := createTestSupplier()
		supplier.MarkPreferred()
		supplierRepo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
		supplierRepo.On("Save", mock.Anything, supplier).Return(nil)

		preferred := false
		result, err := service.Update(ctx, supplier.ID, UpdateSupplierRequest{IsPreferred: &preferred})

		assert.NoError(t, err)
		assert.False(t, result.IsPreferred)
	})

	t.Run("fail when supplier not found", func(t *testing.T) {
		service, supplierRepo, _, _ := newTestSupplierService()
		ctx := context.Background()

		id := uuid.New()
		supplierRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		result, err := service.Update(ctx, id, UpdateSupplierRequest{})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestSupplierService_Delete(t *testing.T) {
	t.Run("delete unreferenced supplier", func(t *testing.T) {
		service, supplierRepo, productRepo, orderRepo := newTestSupplierService()
		ctx := context.Background()

		supplier := createTestSupplier()
		supplierRepo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
		productRepo.On("CountBySupplier", mock.Anything, supplier.ID).Return(int64(0), nil)
		orderRepo.On("CountIncompleteBySupplier", mock.Anything, supplier.ID).Return(int64(0), nil)
		supplierRepo.On("Delete", mock.Anything, supplier.ID).Return(nil)

		err := service.Delete(ctx, supplier.ID)

		assert.NoError(t, err)
		supplierRepo.AssertExpectations(t)
	})

	t.Run("fail when supplier has associated products", func(t *testing.T) {
		service, supplierRepo, productRepo, _ := newTestSupplierService()
		ctx := context.Background()

		supplier := createTestSupplier()
		supplierRepo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
		productRepo.On("CountBySupplier", mock.Anything, supplier.ID).Return(int64(4), nil)

		err := service.Delete(ctx, supplier.ID)

		assert.Error(t, err)
		var domainErr *shared.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "SUPPLIER_IN_USE", domainErr.Code)
		supplierRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("fail when supplier has open purchase orders", func(t *testing.T) {
		service, supplierRepo, productRepo, orderRepo := newTestSupplierService()
		ctx := context.Background()

		supplier := createTestSupplier()
		supplierRepo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
		productRepo.On("CountBySupplier", mock.Anything, supplier.ID).Return(int64(0), nil)
		orderRepo.On("CountIncompleteBySupplier", mock.Anything, supplier.ID).Return(int64(2), nil)

		err := service.Delete(ctx, supplier.ID)

		assert.Error(t, err)
		var domainErr *shared.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "SUPPLIER_IN_USE", domainErr.Code)
		supplierRepo.AssertNotCalled(t, "Delete")
	})
}
