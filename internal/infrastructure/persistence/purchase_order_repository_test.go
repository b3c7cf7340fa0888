package persistence

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/supplychain/backend/internal/domain/procurement"
	"github.com/supplychain/backend/internal/domain/shared"
	"gorm.io/gorm"
)

func TestGormPurchaseOrderRepository_GenerateOrderNumber(t *testing.T) {
	prefix := fmt.Sprintf("PO-%d-", time.Now().Year())

	t.Run("starts at one for an empty year", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPurchaseOrderRepository(db)

		mock.ExpectQuery(`SELECT "po_number" FROM "purchase_orders" WHERE po_number LIKE \$1 ORDER BY po_number DESC LIMIT .*`).
			WithArgs(prefix+"%", 1).
			WillReturnRows(sqlmock.NewRows([]string{"po_number"}))

		poNumber, err := repo.GenerateOrderNumber(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, prefix+"00001", poNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("increments the highest existing sequence", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPurchaseOrderRepository(db)

		mock.ExpectQuery(`SELECT "po_number" FROM "purchase_orders" WHERE po_number LIKE \$1 ORDER BY po_number DESC LIMIT .*`).
			WithArgs(prefix+"%", 1).
			WillReturnRows(sqlmock.NewRows([]string{"po_number"}).AddRow(prefix + "00007"))

		poNumber, err := repo.GenerateOrderNumber(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, prefix+"00008", poNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPurchaseOrderRepository_FindByNumber(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormPurchaseOrderRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "purchase_orders" WHERE po_number = \$1 ORDER BY .* LIMIT .*`).
		WithArgs("PO-2026-99999", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	order, err := repo.FindByNumber(context.Background(), "PO-2026-99999")

	assert.Nil(t, order)
	assert.Equal(t, shared.ErrNotFound, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPurchaseOrderRepository_CountIncompleteBySupplier(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormPurchaseOrderRepository(db)

	supplierID := uuid.New()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "purchase_orders" WHERE supplier_id = \$1 AND status NOT IN \(\$2,\$3\)`).
		WithArgs(supplierID, "RECEIVED", "CANCELLED").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountIncompleteBySupplier(context.Background(), supplierID)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPurchaseOrderRepository_ExistsByNumber(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormPurchaseOrderRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "purchase_orders" WHERE po_number = \$1`).
		WithArgs("PO-2026-00001").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByNumber(context.Background(), "PO-2026-00001")

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPurchaseOrderRepository_ExistsByProduct(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormPurchaseOrderRepository(db)

	productID := uuid.New()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "purchase_order_items" WHERE product_id = \$1`).
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.ExistsByProduct(context.Background(), productID)

	assert.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPurchaseOrderRepository_Count_DateBounds(t *testing.T) {
	t.Run("lower bound becomes an order_date predicate", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPurchaseOrderRepository(db)

		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		filter := shared.DefaultFilter()
		filter.Filters["order_date_from"] = from

		mock.ExpectQuery(`SELECT count\(\*\) FROM "purchase_orders" WHERE order_date >= \$1`).
			WithArgs(from).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		count, err := repo.Count(context.Background(), filter)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("upper bound becomes an order_date predicate", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPurchaseOrderRepository(db)

		to := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
		filter := shared.DefaultFilter()
		filter.Filters["order_date_to"] = to

		mock.ExpectQuery(`SELECT count\(\*\) FROM "purchase_orders" WHERE order_date <= \$1`).
			WithArgs(to).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		count, err := repo.Count(context.Background(), filter)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPurchaseOrderRepository_Save(t *testing.T) {
	t.Run("unique violation surfaces as already-exists conflict", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPurchaseOrderRepository(db)

		order, err := procurement.NewPurchaseOrder("PO-2026-00042", uuid.New(), "Acme Industrial", uuid.New())
		assert.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "purchase_orders" SET .*`).
			WillReturnError(gorm.ErrDuplicatedKey)
		mock.ExpectRollback()

		saveErr := repo.Save(context.Background(), order)

		var domainErr *shared.DomainError
		assert.True(t, errors.As(saveErr, &domainErr))
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		assert.Contains(t, domainErr.Message, "PO-2026-00042")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPurchaseOrderRepository_SaveWithLock(t *testing.T) {
	t.Run("lock targets loaded version after several mutations", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPurchaseOrderRepository(db)

		order, err := procurement.NewPurchaseOrder("PO-2026-00042", uuid.New(), "Acme Industrial", uuid.New())
		assert.NoError(t, err)
		assert.NoError(t, order.SetFinancials(decimal.NewFromInt(100), decimal.NewFromInt(7), decimal.Zero, decimal.Zero, decimal.NewFromInt(107)))
		order.SetNotes("rush order")

		// Two mutations since the load, so version-minus-one would
		// point past the stored row.
		assert.Equal(t, order.LoadedVersion()+2, order.GetVersion())

		// 20 updated columns in alphabetical order, version last,
		// then the WHERE arguments.
		args := make([]driver.Value, 0, 22)
		for i := 0; i < 19; i++ {
			args = append(args, sqlmock.AnyArg())
		}
		args = append(args, order.GetVersion(), order.ID, order.LoadedVersion())

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "purchase_orders" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WithArgs(args...).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "purchase_order_items" WHERE order_id = \$1`).
			WithArgs(order.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		assert.NoError(t, repo.SaveWithLock(context.Background(), order))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale version rolls back with concurrency conflict", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPurchaseOrderRepository(db)

		order, err := procurement.NewPurchaseOrder("PO-2026-00042", uuid.New(), "Acme Industrial", uuid.New())
		assert.NoError(t, err)
		order.SetNotes("rush order")

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "purchase_orders" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		assert.Equal(t, shared.ErrConcurrencyConflict, repo.SaveWithLock(context.Background(), order))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPurchaseOrderRepository_Delete(t *testing.T) {
	t.Run("removes items then the order", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPurchaseOrderRepository(db)

		orderID := uuid.New()
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "purchase_order_items" WHERE order_id = \$1`).
			WithArgs(orderID).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`DELETE FROM "purchase_orders" WHERE id = \$1`).
			WithArgs(orderID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Delete(context.Background(), orderID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the order is missing", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPurchaseOrderRepository(db)

		orderID := uuid.New()
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "purchase_order_items" WHERE order_id = \$1`).
			WithArgs(orderID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "purchase_orders" WHERE id = \$1`).
			WithArgs(orderID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		assert.Equal(t, shared.ErrNotFound, repo.Delete(context.Background(), orderID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
