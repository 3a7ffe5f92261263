package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/camilogv/billing-gateway/internal/model"
	"github.com/camilogv/billing-gateway/internal/services"
	xhttp "github.com/camilogv/billing-gateway/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) Create(ctx context.Context, p model.CustomerCreateRequest) (*model.Customer, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) Get(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) List(ctx context.Context) ([]*model.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Customer), args.Error(1)
}

func (m *MockCustomerService) Update(ctx context.Context, id int64, p model.CustomerUpdateRequest) (*model.Customer, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupTestContext(method, path string, body []byte) *xhttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != nil {
		ctx.Request.SetBody(body)
	}
	return ctx
}

func TestCustomerHandler_ListCustomers(t *testing.T) {
	svc := new(MockCustomerService)
	handler := NewCustomerHandler(svc)

	svc.On("List", mock.Anything).Return([]*model.Customer{
		{ID: 1, Name: "Juan Perez"},
		{ID: 2, Name: "Maria Gomez"},
	}, nil)

	ctx := setupTestContext("GET", "/customers", nil)
	handler.ListCustomers(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())

	var response struct {
		Success bool              `json:"success"`
		Data    []*model.Customer `json:"data"`
		Count   int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, 2, response.Count)
	require.Len(t, response.Data, 2)
	assert.Equal(t, "Juan Perez", response.Data[0].Name)
}

func TestCustomerHandler_GetCustomer(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		svc.On("Get", mock.Anything, int64(5)).Return(&model.Customer{ID: 5, Name: "Juan Perez"}, nil)

		ctx := setupTestContext("GET", "/customers/5", nil)
		ctx.SetUserValue("id", "5")
		handler.GetCustomer(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		svc.On("Get", mock.Anything, int64(999)).Return(nil, services.NewNotFoundError("customer"))

		ctx := setupTestContext("GET", "/customers/999", nil)
		ctx.SetUserValue("id", "999")
		handler.GetCustomer(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())

		var response map[string]any
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Equal(t, false, response["success"])
		assert.Equal(t, "customer not found", response["error"])
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		ctx := setupTestContext("GET", "/customers/abc", nil)
		ctx.SetUserValue("id", "abc")
		handler.GetCustomer(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "Get")
	})
}

func TestCustomerHandler_CreateCustomer(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		svc.On("Create", mock.Anything, mock.MatchedBy(func(p model.CustomerCreateRequest) bool {
			return p.Name == "Juan Perez" && p.Email == "juan@example.com"
		})).Return(&model.Customer{ID: 1, Name: "Juan Perez"}, nil)

		body, _ := json.Marshal(map[string]string{
			"customer_name":  "Juan Perez",
			"customer_email": "juan@example.com",
		})
		ctx := setupTestContext("POST", "/customers", body)
		handler.CreateCustomer(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		ctx := setupTestContext("POST", "/customers", []byte("not json"))
		handler.CreateCustomer(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "Create")
	})

	t.Run("service failure", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		svc.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		body, _ := json.Marshal(map[string]string{"customer_name": "Juan Perez"})
		ctx := setupTestContext("POST", "/customers", body)
		handler.CreateCustomer(ctx)

		assert.Equal(t, 500, ctx.Response.StatusCode())

		var response map[string]any
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Equal(t, "failed to create customer", response["error"])
		assert.Equal(t, "db down", response["details"])
	})
}

func TestCustomerHandler_UpdateCustomer(t *testing.T) {
	svc := new(MockCustomerService)
	handler := NewCustomerHandler(svc)

	svc.On("Update", mock.Anything, int64(5), mock.MatchedBy(func(p model.CustomerUpdateRequest) bool {
		return p.Phone != nil && *p.Phone == "3009999999" && p.Name == nil
	})).Return(&model.Customer{ID: 5, Phone: "3009999999"}, nil)

	body, _ := json.Marshal(map[string]string{"customer_phone": "3009999999"})
	ctx := setupTestContext("PUT", "/customers/5", body)
	ctx.SetUserValue("id", "5")
	handler.UpdateCustomer(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())

	var response map[string]any
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
	assert.Equal(t, "Customer updated successfully", response["message"])
	svc.AssertExpectations(t)
}

func TestCustomerHandler_DeleteCustomer(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		svc.On("Delete", mock.Anything, int64(5)).Return(nil)

		ctx := setupTestContext("DELETE", "/customers/5", nil)
		ctx.SetUserValue("id", "5")
		handler.DeleteCustomer(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response map[string]any
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Equal(t, "Customer deleted successfully", response["message"])
	})

	t.Run("blocked by invoices", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		svc.On("Delete", mock.Anything, int64(5)).
			Return(services.NewConflictError("cannot delete customer with 2 related invoices; delete invoices first"))

		ctx := setupTestContext("DELETE", "/customers/5", nil)
		ctx.SetUserValue("id", "5")
		handler.DeleteCustomer(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())

		var response map[string]any
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Contains(t, response["error"], "related invoices")
	})
}
