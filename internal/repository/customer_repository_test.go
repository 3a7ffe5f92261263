package repository

import (
	"context"
	"testing"

	"github.com/camilogv/billing-gateway/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository_Create(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	t.Run("assigns an id", func(t *testing.T) {
		created, err := repo.Create(ctx, &model.Customer{
			Name:  "Juan Perez",
			Email: "juan@example.com",
			Phone: "3001234567",
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "Juan Perez", created.Name)
	})

	t.Run("allows empty optional fields", func(t *testing.T) {
		created, err := repo.Create(ctx, &model.Customer{Name: "Maria Gomez"})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Empty(t, created.Email)
	})
}

func TestCustomerRepository_Get(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		created, err := repo.Create(ctx, &model.Customer{Name: "Juan Perez"})
		require.NoError(t, err)

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Juan Perez", got.Name)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.Get(ctx, 999)
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})
}

func TestCustomerRepository_List(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		customers, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, customers)
	})

	t.Run("ordered by id", func(t *testing.T) {
		_, err := repo.Create(ctx, &model.Customer{Name: "First"})
		require.NoError(t, err)
		_, err = repo.Create(ctx, &model.Customer{Name: "Second"})
		require.NoError(t, err)

		customers, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, customers, 2)
		assert.Equal(t, "First", customers[0].Name)
		assert.Equal(t, "Second", customers[1].Name)
	})
}

func TestCustomerRepository_Update(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	t.Run("partial update keeps other columns", func(t *testing.T) {
		created, err := repo.Create(ctx, &model.Customer{
			Name:  "Juan Perez",
			Email: "juan@example.com",
		})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.ID, map[string]any{
			"customer_phone": "3009999999",
		})
		require.NoError(t, err)
		assert.Equal(t, "3009999999", updated.Phone)
		assert.Equal(t, "juan@example.com", updated.Email)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.Update(ctx, 999, map[string]any{"customer_name": "x"})
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})
}

func TestCustomerRepository_Delete(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	t.Run("removes the row", func(t *testing.T) {
		created, err := repo.Create(ctx, &model.Customer{Name: "Juan Perez"})
		require.NoError(t, err)

		err = repo.Delete(ctx, created.ID)
		require.NoError(t, err)

		_, err = repo.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})

	t.Run("not found", func(t *testing.T) {
		err := repo.Delete(ctx, 999)
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})
}

func TestCustomerRepository_CountInvoices(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	customer, err := repo.Create(ctx, &model.Customer{Name: "Juan Perez"})
	require.NoError(t, err)

	count, err := repo.CountInvoices(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	invoice := &InvoiceEntity{
		ID:            "INV-1",
		CustomerID:    customer.ID,
		BillingPeriod: "2024-01",
		InvoiceAmount: decimal.NewFromInt(100),
		AmountPaid:    decimal.Zero,
	}
	require.NoError(t, db.Write(ctx).Create(invoice).Error)

	count, err = repo.CountInvoices(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCustomerRepository_Exists(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	customer, err := repo.Create(ctx, &model.Customer{Name: "Juan Perez"})
	require.NoError(t, err)

	exists, err := repo.Exists(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, 999)
	require.NoError(t, err)
	assert.False(t, exists)
}
