package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/camilogv/billing-gateway/internal/model"
	"github.com/camilogv/billing-gateway/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Create(ctx context.Context, p model.InvoiceCreateRequest) (*model.Invoice, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Get(ctx context.Context, id string) (*model.InvoiceWithCustomer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvoiceWithCustomer), args.Error(1)
}

func (m *MockInvoiceService) List(ctx context.Context) ([]*model.InvoiceWithCustomer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.InvoiceWithCustomer), args.Error(1)
}

func (m *MockInvoiceService) ListByCustomer(ctx context.Context, customerID int64) ([]*model.InvoiceWithCustomer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.InvoiceWithCustomer), args.Error(1)
}

func (m *MockInvoiceService) Update(ctx context.Context, id string, p model.InvoiceUpdateRequest) (*model.Invoice, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestInvoiceHandler_CreateInvoice(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockInvoiceService)
		handler := NewInvoiceHandler(svc)

		svc.On("Create", mock.Anything, mock.MatchedBy(func(p model.InvoiceCreateRequest) bool {
			return p.CustomerID == 1 &&
				p.BillingPeriod == "2024-01" &&
				p.InvoiceAmount.Equal(decimal.NewFromInt(150000))
		})).Return(&model.Invoice{ID: "INV-1", CustomerID: 1}, nil)

		body := []byte(`{"customer_id":1,"billing_period":"2024-01","invoice_amount":150000,"amount_paid":0}`)
		ctx := setupTestContext("POST", "/invoices", body)
		handler.CreateInvoice(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())

		var response map[string]any
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Equal(t, "Invoice created successfully", response["message"])
		svc.AssertExpectations(t)
	})

	t.Run("validation failure", func(t *testing.T) {
		svc := new(MockInvoiceService)
		handler := NewInvoiceHandler(svc)

		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, services.NewValidationError("missing required fields: customer_id, billing_period, invoice_amount"))

		ctx := setupTestContext("POST", "/invoices", []byte(`{}`))
		handler.CreateInvoice(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())

		var response map[string]any
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Contains(t, response["error"], "missing required fields")
	})

	t.Run("unknown customer renders 400", func(t *testing.T) {
		svc := new(MockInvoiceService)
		handler := NewInvoiceHandler(svc)

		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, services.NewForeignNotFoundError("customer"))

		body := []byte(`{"customer_id":42,"billing_period":"2024-01","invoice_amount":100}`)
		ctx := setupTestContext("POST", "/invoices", body)
		handler.CreateInvoice(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})
}

func TestInvoiceHandler_GetInvoice(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := new(MockInvoiceService)
		handler := NewInvoiceHandler(svc)

		svc.On("Get", mock.Anything, "INV-1").Return(&model.InvoiceWithCustomer{
			Invoice:      model.Invoice{ID: "INV-1"},
			CustomerName: "Juan Perez",
		}, nil)

		ctx := setupTestContext("GET", "/invoices/INV-1", nil)
		ctx.SetUserValue("id", "INV-1")
		handler.GetInvoice(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response struct {
			Success bool                       `json:"success"`
			Data    *model.InvoiceWithCustomer `json:"data"`
		}
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Equal(t, "Juan Perez", response.Data.CustomerName)
	})

	t.Run("not found renders 404", func(t *testing.T) {
		svc := new(MockInvoiceService)
		handler := NewInvoiceHandler(svc)

		svc.On("Get", mock.Anything, "INV-missing").Return(nil, services.NewNotFoundError("invoice"))

		ctx := setupTestContext("GET", "/invoices/INV-missing", nil)
		ctx.SetUserValue("id", "INV-missing")
		handler.GetInvoice(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})
}

func TestInvoiceHandler_ListInvoicesByCustomer(t *testing.T) {
	t.Run("lists", func(t *testing.T) {
		svc := new(MockInvoiceService)
		handler := NewInvoiceHandler(svc)

		svc.On("ListByCustomer", mock.Anything, int64(1)).Return([]*model.InvoiceWithCustomer{
			{Invoice: model.Invoice{ID: "INV-1", CustomerID: 1}},
		}, nil)

		ctx := setupTestContext("GET", "/invoices/customer/1", nil)
		ctx.SetUserValue("customerId", "1")
		handler.ListInvoicesByCustomer(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response map[string]any
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Equal(t, float64(1), response["count"])
	})

	t.Run("invalid customer id", func(t *testing.T) {
		svc := new(MockInvoiceService)
		handler := NewInvoiceHandler(svc)

		ctx := setupTestContext("GET", "/invoices/customer/abc", nil)
		ctx.SetUserValue("customerId", "abc")
		handler.ListInvoicesByCustomer(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "ListByCustomer")
	})
}

func TestInvoiceHandler_UpdateInvoice(t *testing.T) {
	svc := new(MockInvoiceService)
	handler := NewInvoiceHandler(svc)

	svc.On("Update", mock.Anything, "INV-1", mock.MatchedBy(func(p model.InvoiceUpdateRequest) bool {
		return p.AmountPaid != nil && p.AmountPaid.Equal(decimal.NewFromInt(80)) && p.CustomerID == nil
	})).Return(&model.Invoice{ID: "INV-1"}, nil)

	ctx := setupTestContext("PUT", "/invoices/INV-1", []byte(`{"amount_paid":80}`))
	ctx.SetUserValue("id", "INV-1")
	handler.UpdateInvoice(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())

	var response map[string]any
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
	assert.Equal(t, "Invoice updated successfully", response["message"])
	svc.AssertExpectations(t)
}

func TestInvoiceHandler_DeleteInvoice(t *testing.T) {
	t.Run("blocked by transactions", func(t *testing.T) {
		svc := new(MockInvoiceService)
		handler := NewInvoiceHandler(svc)

		svc.On("Delete", mock.Anything, "INV-1").
			Return(services.NewConflictError("cannot delete invoice with 2 related transactions; delete transactions first"))

		ctx := setupTestContext("DELETE", "/invoices/INV-1", nil)
		ctx.SetUserValue("id", "INV-1")
		handler.DeleteInvoice(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})

	t.Run("deleted", func(t *testing.T) {
		svc := new(MockInvoiceService)
		handler := NewInvoiceHandler(svc)

		svc.On("Delete", mock.Anything, "INV-1").Return(nil)

		ctx := setupTestContext("DELETE", "/invoices/INV-1", nil)
		ctx.SetUserValue("id", "INV-1")
		handler.DeleteInvoice(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response map[string]any
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Equal(t, "Invoice deleted successfully", response["message"])
	})
}
