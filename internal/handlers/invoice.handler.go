package handlers

import (
	"context"
	"strconv"

	"github.com/camilogv/billing-gateway/internal/model"
	xhttp "github.com/camilogv/billing-gateway/pkg/http"
	"github.com/fasthttp/router"
	"github.com/shopspring/decimal"
)

type InvoiceService interface {
	Create(ctx context.Context, p model.InvoiceCreateRequest) (*model.Invoice, error)
	Get(ctx context.Context, id string) (*model.InvoiceWithCustomer, error)
	List(ctx context.Context) ([]*model.InvoiceWithCustomer, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*model.InvoiceWithCustomer, error)
	Update(ctx context.Context, id string, p model.InvoiceUpdateRequest) (*model.Invoice, error)
	Delete(ctx context.Context, id string) error
}

type InvoiceHandler struct {
	svc InvoiceService
}

func RegisterInvoiceRoutes(e *router.Group, h *InvoiceHandler) {
	e.GET("/invoices", h.ListInvoices)
	e.GET("/invoices/{id}", h.GetInvoice)
	e.GET("/invoices/customer/{customerId}", h.ListInvoicesByCustomer)
	e.POST("/invoices", h.CreateInvoice)
	e.PUT("/invoices/{id}", h.UpdateInvoice)
	e.DELETE("/invoices/{id}", h.DeleteInvoice)
}

func NewInvoiceHandler(svc InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		svc: svc,
	}
}

type createInvoiceRequest struct {
	CustomerID    int64           `json:"customer_id"`
	BillingPeriod string          `json:"billing_period"`
	InvoiceAmount decimal.Decimal `json:"invoice_amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
}

type updateInvoiceRequest struct {
	CustomerID    *int64           `json:"customer_id"`
	BillingPeriod *string          `json:"billing_period"`
	InvoiceAmount *decimal.Decimal `json:"invoice_amount"`
	AmountPaid    *decimal.Decimal `json:"amount_paid"`
}

func (h *InvoiceHandler) ListInvoices(ctx *xhttp.RequestCtx) {
	invoices, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(ctx, err, "failed to fetch invoices")
		return
	}
	writeList(ctx, invoices, len(invoices))
}

func (h *InvoiceHandler) GetInvoice(ctx *xhttp.RequestCtx) {
	invoice, err := h.svc.Get(ctx, param(ctx, "id"))
	if err != nil {
		writeServiceError(ctx, err, "failed to fetch invoice")
		return
	}
	writeData(ctx, xhttp.StatusOK, invoice)
}

func (h *InvoiceHandler) ListInvoicesByCustomer(ctx *xhttp.RequestCtx) {
	customerID, err := strconv.ParseInt(param(ctx, "customerId"), 10, 64)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid customer id")
		return
	}

	invoices, err := h.svc.ListByCustomer(ctx, customerID)
	if err != nil {
		writeServiceError(ctx, err, "failed to fetch customer invoices")
		return
	}
	writeList(ctx, invoices, len(invoices))
}

func (h *InvoiceHandler) CreateInvoice(ctx *xhttp.RequestCtx) {
	var req createInvoiceRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	invoice, err := h.svc.Create(ctx, model.InvoiceCreateRequest{
		CustomerID:    req.CustomerID,
		BillingPeriod: req.BillingPeriod,
		InvoiceAmount: req.InvoiceAmount,
		AmountPaid:    req.AmountPaid,
	})
	if err != nil {
		writeServiceError(ctx, err, "failed to create invoice")
		return
	}
	writeMessage(ctx, xhttp.StatusCreated, "Invoice created successfully", invoice)
}

func (h *InvoiceHandler) UpdateInvoice(ctx *xhttp.RequestCtx) {
	var req updateInvoiceRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	invoice, err := h.svc.Update(ctx, param(ctx, "id"), model.InvoiceUpdateRequest{
		CustomerID:    req.CustomerID,
		BillingPeriod: req.BillingPeriod,
		InvoiceAmount: req.InvoiceAmount,
		AmountPaid:    req.AmountPaid,
	})
	if err != nil {
		writeServiceError(ctx, err, "failed to update invoice")
		return
	}
	writeMessage(ctx, xhttp.StatusOK, "Invoice updated successfully", invoice)
}

func (h *InvoiceHandler) DeleteInvoice(ctx *xhttp.RequestCtx) {
	if err := h.svc.Delete(ctx, param(ctx, "id")); err != nil {
		writeServiceError(ctx, err, "failed to delete invoice")
		return
	}
	writeMessage(ctx, xhttp.StatusOK, "Invoice deleted successfully", nil)
}
