package handlers

import (
	"context"

	"github.com/camilogv/billing-gateway/internal/model"
	xhttp "github.com/camilogv/billing-gateway/pkg/http"
	"github.com/fasthttp/router"
)

type ReportService interface {
	CustomerTotals(ctx context.Context) ([]*model.CustomerTotals, error)
	PendingInvoices(ctx context.Context) ([]*model.PendingInvoice, error)
	TransactionsByPlatform(ctx context.Context, platform string) ([]*model.PlatformTransaction, error)
	FinancialSummary(ctx context.Context) (*model.FinancialSummary, []*model.PlatformBreakdown, []*model.StatusBreakdown, error)
}

type ReportHandler struct {
	svc ReportService
}

func RegisterReportRoutes(e *router.Group, h *ReportHandler) {
	e.GET("/reports/total-paid-by-customer", h.CustomerTotals)
	e.GET("/reports/pending-invoices", h.PendingInvoices)
	e.GET("/reports/transactions-by-platform/{platform}", h.TransactionsByPlatform)
	e.GET("/reports/financial-summary", h.FinancialSummary)
}

func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{
		svc: svc,
	}
}

func (h *ReportHandler) CustomerTotals(ctx *xhttp.RequestCtx) {
	rows, err := h.svc.CustomerTotals(ctx)
	if err != nil {
		writeServiceError(ctx, err, "failed to generate customer totals report")
		return
	}
	writeList(ctx, rows, len(rows))
}

func (h *ReportHandler) PendingInvoices(ctx *xhttp.RequestCtx) {
	rows, err := h.svc.PendingInvoices(ctx)
	if err != nil {
		writeServiceError(ctx, err, "failed to generate pending invoices report")
		return
	}
	writeList(ctx, rows, len(rows))
}

func (h *ReportHandler) TransactionsByPlatform(ctx *xhttp.RequestCtx) {
	platform := param(ctx, "platform")
	rows, err := h.svc.TransactionsByPlatform(ctx, platform)
	if err != nil {
		writeServiceError(ctx, err, "failed to generate platform report")
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]any{
		"success":  true,
		"platform": platform,
		"data":     rows,
		"count":    len(rows),
	})
}

func (h *ReportHandler) FinancialSummary(ctx *xhttp.RequestCtx) {
	summary, platforms, statuses, err := h.svc.FinancialSummary(ctx)
	if err != nil {
		writeServiceError(ctx, err, "failed to generate financial summary")
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]any{
		"success":   true,
		"summary":   summary,
		"platforms": platforms,
		"statuses":  statuses,
	})
}
