package services

import (
	"context"
	"time"

	"github.com/camilogv/billing-gateway/internal/model"
	"github.com/camilogv/billing-gateway/pkg/prom"
)

type ReportRepository interface {
	CustomerTotals(ctx context.Context) ([]*model.CustomerTotals, error)
	PendingInvoices(ctx context.Context) ([]*model.PendingInvoice, error)
	TransactionsByPlatform(ctx context.Context, platform string) ([]*model.PlatformTransaction, error)
	FinancialSummary(ctx context.Context) (*model.FinancialSummary, []*model.PlatformBreakdown, []*model.StatusBreakdown, error)
}

type ReportService struct {
	repo ReportRepository
}

func NewReportService(repo ReportRepository) *ReportService {
	return &ReportService{
		repo: repo,
	}
}

func (s *ReportService) CustomerTotals(ctx context.Context) ([]*model.CustomerTotals, error) {
	defer observe("customer_totals", time.Now())
	return s.repo.CustomerTotals(ctx)
}

func (s *ReportService) PendingInvoices(ctx context.Context) ([]*model.PendingInvoice, error) {
	defer observe("pending_invoices", time.Now())
	return s.repo.PendingInvoices(ctx)
}

func (s *ReportService) TransactionsByPlatform(ctx context.Context, platform string) ([]*model.PlatformTransaction, error) {
	defer observe("transactions_by_platform", time.Now())
	return s.repo.TransactionsByPlatform(ctx, platform)
}

func (s *ReportService) FinancialSummary(ctx context.Context) (*model.FinancialSummary, []*model.PlatformBreakdown, []*model.StatusBreakdown, error) {
	defer observe("financial_summary", time.Now())
	return s.repo.FinancialSummary(ctx)
}

func observe(report string, start time.Time) {
	prom.AddReportQueryDuration(report, time.Since(start).Seconds())
}
