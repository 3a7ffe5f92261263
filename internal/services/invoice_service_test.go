package services

import (
	"context"
	"strings"
	"testing"

	"github.com/camilogv/billing-gateway/internal/model"
	"github.com/camilogv/billing-gateway/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, inv *model.Invoice) (*model.Invoice, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Get(ctx context.Context, id string) (*model.InvoiceWithCustomer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvoiceWithCustomer), args.Error(1)
}

func (m *MockInvoiceRepository) GetRow(ctx context.Context, id string) (*model.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) List(ctx context.Context) ([]*model.InvoiceWithCustomer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.InvoiceWithCustomer), args.Error(1)
}

func (m *MockInvoiceRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*model.InvoiceWithCustomer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.InvoiceWithCustomer), args.Error(1)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, id string, cols map[string]any) (*model.Invoice, error) {
	args := m.Called(ctx, id, cols)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) CountTransactions(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockCustomerChecker struct {
	mock.Mock
}

func (m *MockCustomerChecker) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestInvoiceService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("missing fields", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		customers := new(MockCustomerChecker)
		svc := NewInvoiceService(repo, customers)

		_, err := svc.Create(ctx, model.InvoiceCreateRequest{})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Error(), "missing required fields")
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("amount paid above invoice amount", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		customers := new(MockCustomerChecker)
		svc := NewInvoiceService(repo, customers)

		_, err := svc.Create(ctx, model.InvoiceCreateRequest{
			CustomerID:    1,
			BillingPeriod: "2024-01",
			InvoiceAmount: decimal.NewFromInt(100),
			AmountPaid:    decimal.NewFromInt(150),
		})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Error(), "exceed invoice amount")
	})

	t.Run("unknown customer", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		customers := new(MockCustomerChecker)
		svc := NewInvoiceService(repo, customers)

		customers.On("Exists", ctx, int64(42)).Return(false, nil)

		_, err := svc.Create(ctx, model.InvoiceCreateRequest{
			CustomerID:    42,
			BillingPeriod: "2024-01",
			InvoiceAmount: decimal.NewFromInt(100),
		})
		var nfe *NotFoundError
		require.ErrorAs(t, err, &nfe)
		assert.True(t, nfe.Foreign())
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("generates an invoice id", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		customers := new(MockCustomerChecker)
		svc := NewInvoiceService(repo, customers)

		customers.On("Exists", ctx, int64(1)).Return(true, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(inv *model.Invoice) bool {
			return strings.HasPrefix(inv.ID, "INV-") && inv.CustomerID == 1
		})).Return(&model.Invoice{ID: "INV-1", CustomerID: 1}, nil)

		created, err := svc.Create(ctx, model.InvoiceCreateRequest{
			CustomerID:    1,
			BillingPeriod: "2024-01",
			InvoiceAmount: decimal.NewFromInt(100),
		})
		require.NoError(t, err)
		assert.Equal(t, "INV-1", created.ID)
		repo.AssertExpectations(t)
	})
}

func TestInvoiceService_Update(t *testing.T) {
	ctx := context.Background()
	stored := &model.Invoice{
		ID:            "INV-1",
		CustomerID:    1,
		BillingPeriod: "2024-01",
		InvoiceAmount: decimal.NewFromInt(100),
		AmountPaid:    decimal.NewFromInt(60),
	}

	t.Run("not found", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		customers := new(MockCustomerChecker)
		svc := NewInvoiceService(repo, customers)

		repo.On("GetRow", ctx, "INV-missing").Return(nil, repository.ErrInvoiceNotFound)

		period := "2024-02"
		_, err := svc.Update(ctx, "INV-missing", model.InvoiceUpdateRequest{BillingPeriod: &period})
		var nfe *NotFoundError
		require.ErrorAs(t, err, &nfe)
		assert.False(t, nfe.Foreign())
	})

	t.Run("no fields", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		customers := new(MockCustomerChecker)
		svc := NewInvoiceService(repo, customers)

		repo.On("GetRow", ctx, "INV-1").Return(stored, nil)

		_, err := svc.Update(ctx, "INV-1", model.InvoiceUpdateRequest{})
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("merged validation catches lowering amount below paid", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		customers := new(MockCustomerChecker)
		svc := NewInvoiceService(repo, customers)

		repo.On("GetRow", ctx, "INV-1").Return(stored, nil)

		lower := decimal.NewFromInt(50)
		_, err := svc.Update(ctx, "INV-1", model.InvoiceUpdateRequest{InvoiceAmount: &lower})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Error(), "exceed invoice amount")
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("reassignment to unknown customer", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		customers := new(MockCustomerChecker)
		svc := NewInvoiceService(repo, customers)

		repo.On("GetRow", ctx, "INV-1").Return(stored, nil)
		customers.On("Exists", ctx, int64(42)).Return(false, nil)

		other := int64(42)
		_, err := svc.Update(ctx, "INV-1", model.InvoiceUpdateRequest{CustomerID: &other})
		var nfe *NotFoundError
		require.ErrorAs(t, err, &nfe)
		assert.True(t, nfe.Foreign())
	})

	t.Run("partial update touches supplied columns only", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		customers := new(MockCustomerChecker)
		svc := NewInvoiceService(repo, customers)

		repo.On("GetRow", ctx, "INV-1").Return(stored, nil)
		paid := decimal.NewFromInt(80)
		repo.On("Update", ctx, "INV-1", map[string]any{
			"amount_paid": paid,
		}).Return(&model.Invoice{ID: "INV-1", AmountPaid: paid}, nil)

		updated, err := svc.Update(ctx, "INV-1", model.InvoiceUpdateRequest{AmountPaid: &paid})
		require.NoError(t, err)
		assert.True(t, updated.AmountPaid.Equal(paid))
		repo.AssertExpectations(t)
	})
}

func TestInvoiceService_Delete(t *testing.T) {
	ctx := context.Background()
	stored := &model.Invoice{ID: "INV-1", InvoiceAmount: decimal.NewFromInt(100)}

	t.Run("blocked while transactions reference the invoice", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		customers := new(MockCustomerChecker)
		svc := NewInvoiceService(repo, customers)

		repo.On("GetRow", ctx, "INV-1").Return(stored, nil)
		repo.On("CountTransactions", ctx, "INV-1").Return(int64(2), nil)

		err := svc.Delete(ctx, "INV-1")
		var ce *ConflictError
		require.ErrorAs(t, err, &ce)
		assert.Contains(t, ce.Error(), "2 related transactions")
		repo.AssertNotCalled(t, "Delete")
	})

	t.Run("deletes when unreferenced", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		customers := new(MockCustomerChecker)
		svc := NewInvoiceService(repo, customers)

		repo.On("GetRow", ctx, "INV-1").Return(stored, nil)
		repo.On("CountTransactions", ctx, "INV-1").Return(int64(0), nil)
		repo.On("Delete", ctx, "INV-1").Return(nil)

		require.NoError(t, svc.Delete(ctx, "INV-1"))
		repo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		customers := new(MockCustomerChecker)
		svc := NewInvoiceService(repo, customers)

		repo.On("GetRow", ctx, "INV-missing").Return(nil, repository.ErrInvoiceNotFound)

		err := svc.Delete(ctx, "INV-missing")
		var nfe *NotFoundError
		assert.ErrorAs(t, err, &nfe)
	})
}
