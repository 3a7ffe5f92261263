package handlers

import (
	"context"
	"time"

	"github.com/camilogv/billing-gateway/internal/model"
	xhttp "github.com/camilogv/billing-gateway/pkg/http"
	"github.com/fasthttp/router"
	"github.com/shopspring/decimal"
)

type TransactionService interface {
	Create(ctx context.Context, p model.TransactionCreateRequest) (*model.Transaction, error)
	Get(ctx context.Context, id string) (*model.TransactionDetail, error)
	List(ctx context.Context) ([]*model.TransactionDetail, error)
	ListByInvoice(ctx context.Context, invoiceID string) ([]*model.TransactionDetail, error)
	ListByPlatform(ctx context.Context, platform string) ([]*model.TransactionDetail, error)
	ListByStatus(ctx context.Context, status string) ([]*model.TransactionDetail, error)
	Update(ctx context.Context, id string, p model.TransactionUpdateRequest) (*model.Transaction, error)
	Delete(ctx context.Context, id string) error
}

type TransactionHandler struct {
	svc TransactionService
}

func RegisterTransactionRoutes(e *router.Group, h *TransactionHandler) {
	e.GET("/transactions", h.ListTransactions)
	e.GET("/transactions/{id}", h.GetTransaction)
	e.GET("/transactions/invoice/{invoiceId}", h.ListTransactionsByInvoice)
	e.GET("/transactions/platform/{platform}", h.ListTransactionsByPlatform)
	e.GET("/transactions/status/{status}", h.ListTransactionsByStatus)
	e.POST("/transactions", h.CreateTransaction)
	e.PUT("/transactions/{id}", h.UpdateTransaction)
	e.DELETE("/transactions/{id}", h.DeleteTransaction)
}

func NewTransactionHandler(svc TransactionService) *TransactionHandler {
	return &TransactionHandler{
		svc: svc,
	}
}

type createTransactionRequest struct {
	InvoiceID string          `json:"invoice_id"`
	Datetime  string          `json:"transaction_datetime"`
	Amount    decimal.Decimal `json:"transaction_amount"`
	Status    string          `json:"transaction_status"`
	Type      string          `json:"transaction_type"`
	Platform  string          `json:"platform"`
}

type updateTransactionRequest struct {
	InvoiceID *string          `json:"invoice_id"`
	Datetime  *string          `json:"transaction_datetime"`
	Amount    *decimal.Decimal `json:"transaction_amount"`
	Status    *string          `json:"transaction_status"`
	Type      *string          `json:"transaction_type"`
	Platform  *string          `json:"platform"`
}

func (h *TransactionHandler) ListTransactions(ctx *xhttp.RequestCtx) {
	transactions, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(ctx, err, "failed to fetch transactions")
		return
	}
	writeList(ctx, transactions, len(transactions))
}

func (h *TransactionHandler) GetTransaction(ctx *xhttp.RequestCtx) {
	transaction, err := h.svc.Get(ctx, param(ctx, "id"))
	if err != nil {
		writeServiceError(ctx, err, "failed to fetch transaction")
		return
	}
	writeData(ctx, xhttp.StatusOK, transaction)
}

func (h *TransactionHandler) ListTransactionsByInvoice(ctx *xhttp.RequestCtx) {
	transactions, err := h.svc.ListByInvoice(ctx, param(ctx, "invoiceId"))
	if err != nil {
		writeServiceError(ctx, err, "failed to fetch invoice transactions")
		return
	}
	writeList(ctx, transactions, len(transactions))
}

func (h *TransactionHandler) ListTransactionsByPlatform(ctx *xhttp.RequestCtx) {
	platform := param(ctx, "platform")
	transactions, err := h.svc.ListByPlatform(ctx, platform)
	if err != nil {
		writeServiceError(ctx, err, "failed to fetch platform transactions")
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]any{
		"success":  true,
		"platform": platform,
		"data":     transactions,
		"count":    len(transactions),
	})
}

func (h *TransactionHandler) ListTransactionsByStatus(ctx *xhttp.RequestCtx) {
	status := param(ctx, "status")
	transactions, err := h.svc.ListByStatus(ctx, status)
	if err != nil {
		writeServiceError(ctx, err, "failed to fetch transactions by status")
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]any{
		"success": true,
		"status":  status,
		"data":    transactions,
		"count":   len(transactions),
	})
}

func (h *TransactionHandler) CreateTransaction(ctx *xhttp.RequestCtx) {
	var req createTransactionRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	var datetime time.Time
	if req.Datetime != "" {
		t, err := parseTime(req.Datetime)
		if err != nil {
			writeError(ctx, xhttp.StatusBadRequest, "invalid transaction_datetime: "+req.Datetime)
			return
		}
		datetime = t
	}

	transaction, err := h.svc.Create(ctx, model.TransactionCreateRequest{
		InvoiceID: req.InvoiceID,
		Datetime:  datetime,
		Amount:    req.Amount,
		Status:    model.TransactionStatus(req.Status),
		Type:      req.Type,
		Platform:  model.Platform(req.Platform),
	})
	if err != nil {
		writeServiceError(ctx, err, "failed to create transaction")
		return
	}
	writeMessage(ctx, xhttp.StatusCreated, "Transaction created successfully", transaction)
}

func (h *TransactionHandler) UpdateTransaction(ctx *xhttp.RequestCtx) {
	var req updateTransactionRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	patch := model.TransactionUpdateRequest{
		InvoiceID: req.InvoiceID,
		Amount:    req.Amount,
		Type:      req.Type,
	}
	if req.Datetime != nil {
		t, err := parseTime(*req.Datetime)
		if err != nil {
			writeError(ctx, xhttp.StatusBadRequest, "invalid transaction_datetime: "+*req.Datetime)
			return
		}
		patch.Datetime = &t
	}
	if req.Status != nil {
		status := model.TransactionStatus(*req.Status)
		patch.Status = &status
	}
	if req.Platform != nil {
		platform := model.Platform(*req.Platform)
		patch.Platform = &platform
	}

	transaction, err := h.svc.Update(ctx, param(ctx, "id"), patch)
	if err != nil {
		writeServiceError(ctx, err, "failed to update transaction")
		return
	}
	writeMessage(ctx, xhttp.StatusOK, "Transaction updated successfully", transaction)
}

func (h *TransactionHandler) DeleteTransaction(ctx *xhttp.RequestCtx) {
	if err := h.svc.Delete(ctx, param(ctx, "id")); err != nil {
		writeServiceError(ctx, err, "failed to delete transaction")
		return
	}
	writeMessage(ctx, xhttp.StatusOK, "Transaction deleted successfully", nil)
}
