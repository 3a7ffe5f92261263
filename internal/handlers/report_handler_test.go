package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/camilogv/billing-gateway/internal/model"
	xhttp "github.com/camilogv/billing-gateway/pkg/http"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) CustomerTotals(ctx context.Context) ([]*model.CustomerTotals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CustomerTotals), args.Error(1)
}

func (m *MockReportService) PendingInvoices(ctx context.Context) ([]*model.PendingInvoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PendingInvoice), args.Error(1)
}

func (m *MockReportService) TransactionsByPlatform(ctx context.Context, platform string) ([]*model.PlatformTransaction, error) {
	args := m.Called(ctx, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PlatformTransaction), args.Error(1)
}

func (m *MockReportService) FinancialSummary(ctx context.Context) (*model.FinancialSummary, []*model.PlatformBreakdown, []*model.StatusBreakdown, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, nil, nil, args.Error(3)
	}
	return args.Get(0).(*model.FinancialSummary),
		args.Get(1).([]*model.PlatformBreakdown),
		args.Get(2).([]*model.StatusBreakdown),
		args.Error(3)
}

func TestReportHandler_CustomerTotals(t *testing.T) {
	svc := new(MockReportService)
	handler := NewReportHandler(svc)

	rows := []*model.CustomerTotals{
		{
			CustomerID:    1,
			CustomerName:  "Juan Perez",
			TotalInvoices: 2,
			TotalPaid:     decimal.NewNullDecimal(decimal.NewFromInt(90000)),
		},
	}
	svc.On("CustomerTotals", mock.Anything).Return(rows, nil)

	ctx := setupTestContext("GET", "/api/v1/reports/total-paid-by-customer", nil)
	handler.CustomerTotals(ctx)

	assert.Equal(t, xhttp.StatusOK, ctx.Response.StatusCode())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, float64(1), resp["count"])

	data := resp["data"].([]interface{})
	row := data[0].(map[string]interface{})
	assert.Equal(t, "Juan Perez", row["customer_name"])
	assert.Equal(t, "90000", row["total_paid"])
}

func TestReportHandler_CustomerTotals_ServiceError(t *testing.T) {
	svc := new(MockReportService)
	handler := NewReportHandler(svc)

	svc.On("CustomerTotals", mock.Anything).Return(nil, errors.New("db down"))

	ctx := setupTestContext("GET", "/api/v1/reports/total-paid-by-customer", nil)
	handler.CustomerTotals(ctx)

	assert.Equal(t, xhttp.StatusInternalServerError, ctx.Response.StatusCode())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "failed to generate customer totals report", resp["error"])
}

func TestReportHandler_PendingInvoices(t *testing.T) {
	svc := new(MockReportService)
	handler := NewReportHandler(svc)

	rows := []*model.PendingInvoice{
		{
			InvoiceID:     "INV-1",
			InvoiceAmount: decimal.NewFromInt(100000),
			AmountPaid:    decimal.NewFromInt(40000),
			PendingAmount: decimal.NewFromInt(60000),
		},
	}
	svc.On("PendingInvoices", mock.Anything).Return(rows, nil)

	ctx := setupTestContext("GET", "/api/v1/reports/pending-invoices", nil)
	handler.PendingInvoices(ctx)

	assert.Equal(t, xhttp.StatusOK, ctx.Response.StatusCode())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, float64(1), resp["count"])

	row := resp["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "INV-1", row["invoice_id"])
	assert.Equal(t, "60000", row["pending_amount"])
}

func TestReportHandler_TransactionsByPlatform(t *testing.T) {
	svc := new(MockReportService)
	handler := NewReportHandler(svc)

	rows := []*model.PlatformTransaction{
		{TransactionID: "TXN-1", Platform: model.PlatformNequi, Amount: decimal.NewFromInt(40000)},
	}
	svc.On("TransactionsByPlatform", mock.Anything, "Nequi").Return(rows, nil)

	ctx := setupTestContext("GET", "/api/v1/reports/transactions-by-platform/Nequi", nil)
	ctx.SetUserValue("platform", "Nequi")
	handler.TransactionsByPlatform(ctx)

	assert.Equal(t, xhttp.StatusOK, ctx.Response.StatusCode())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Nequi", resp["platform"])
	assert.Equal(t, float64(1), resp["count"])
}

func TestReportHandler_FinancialSummary(t *testing.T) {
	svc := new(MockReportService)
	handler := NewReportHandler(svc)

	summary := &model.FinancialSummary{
		TotalCustomers:    2,
		TotalInvoices:     3,
		TotalTransactions: 5,
	}
	platforms := []*model.PlatformBreakdown{
		{Platform: model.PlatformNequi, Count: 3},
		{Platform: model.PlatformDaviplata, Count: 2},
	}
	statuses := []*model.StatusBreakdown{
		{Status: model.TransactionStatusCompleted, Count: 4},
	}
	svc.On("FinancialSummary", mock.Anything).Return(summary, platforms, statuses, nil)

	ctx := setupTestContext("GET", "/api/v1/reports/financial-summary", nil)
	handler.FinancialSummary(ctx)

	assert.Equal(t, xhttp.StatusOK, ctx.Response.StatusCode())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, true, resp["success"])

	got := resp["summary"].(map[string]interface{})
	assert.Equal(t, float64(2), got["total_customers"])
	assert.Equal(t, float64(5), got["total_transactions"])
	assert.Len(t, resp["platforms"].([]interface{}), 2)
	assert.Len(t, resp["statuses"].([]interface{}), 1)
}
