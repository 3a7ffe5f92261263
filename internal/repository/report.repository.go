package repository

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/camilogv/billing-gateway/internal/model"
	"github.com/camilogv/billing-gateway/pkg/pg"
	"github.com/shopspring/decimal"
)

// nullTime scans datetime aggregates, which some drivers hand back as text
// because the expression loses the column's declared type.
type nullTime struct {
	Time *time.Time
}

func (n *nullTime) Scan(v any) error {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		n.Time = &t
		return nil
	case []byte:
		return n.parse(string(t))
	case string:
		return n.parse(t)
	}
	return fmt.Errorf("cannot scan %T into nullTime", v)
}

func (n nullTime) Value() (driver.Value, error) {
	if n.Time == nil {
		return nil, nil
	}
	return *n.Time, nil
}

func (n *nullTime) parse(s string) error {
	for _, layout := range []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			n.Time = &t
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as time", s)
}

// ReportRepository serves the read-only aggregate views. Every query is a
// pure projection; nothing here mutates.
type ReportRepository struct {
	*pg.DB
}

func NewReportRepository(db *pg.DB) *ReportRepository {
	return &ReportRepository{
		db,
	}
}

// CustomerTotals sums invoiced and paid amounts per customer. Customers with
// no invoices appear with null aggregates.
func (r *ReportRepository) CustomerTotals(ctx context.Context) ([]*model.CustomerTotals, error) {
	var rows []*model.CustomerTotals
	err := r.Read(ctx).WithContext(ctx).Raw(`
		SELECT
			c.customer_id,
			c.customer_name,
			c.customer_email,
			COUNT(i.invoice_id) AS total_invoices,
			SUM(i.invoice_amount) AS total_invoiced,
			SUM(i.amount_paid) AS total_paid,
			(SUM(i.invoice_amount) - SUM(i.amount_paid)) AS total_pending
		FROM customers c
		LEFT JOIN invoices i ON c.customer_id = i.customer_id
		GROUP BY c.customer_id, c.customer_name, c.customer_email
		ORDER BY total_paid DESC`).
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type pendingInvoiceRow struct {
	InvoiceID           string
	BillingPeriod       string
	InvoiceAmount       decimal.Decimal
	AmountPaid          decimal.Decimal
	PendingAmount       decimal.Decimal
	CustomerID          int64
	CustomerName        string
	CustomerEmail       string
	CustomerPhone       string
	TransactionCount    int64
	LastTransactionDate nullTime `gorm:"column:last_transaction_date"`
}

// PendingInvoices lists invoices that still owe money, with the owning
// customer and transaction activity.
func (r *ReportRepository) PendingInvoices(ctx context.Context) ([]*model.PendingInvoice, error) {
	var rows []*pendingInvoiceRow
	err := r.Read(ctx).WithContext(ctx).Raw(`
		SELECT
			i.invoice_id,
			i.billing_period,
			i.invoice_amount,
			i.amount_paid,
			(i.invoice_amount - i.amount_paid) AS pending_amount,
			c.customer_id,
			c.customer_name,
			c.customer_email,
			c.customer_phone,
			COUNT(t.transaction_id) AS transaction_count,
			MAX(t.transaction_datetime) AS last_transaction_date
		FROM invoices i
		JOIN customers c ON i.customer_id = c.customer_id
		LEFT JOIN transactions t ON i.invoice_id = t.invoice_id
		WHERE i.amount_paid < i.invoice_amount
		GROUP BY i.invoice_id, i.billing_period, i.invoice_amount, i.amount_paid,
		         c.customer_id, c.customer_name, c.customer_email, c.customer_phone
		ORDER BY pending_amount DESC`).
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	out := make([]*model.PendingInvoice, len(rows))
	for i, row := range rows {
		out[i] = &model.PendingInvoice{
			InvoiceID:           row.InvoiceID,
			BillingPeriod:       row.BillingPeriod,
			InvoiceAmount:       row.InvoiceAmount,
			AmountPaid:          row.AmountPaid,
			PendingAmount:       row.PendingAmount,
			CustomerID:          row.CustomerID,
			CustomerName:        row.CustomerName,
			CustomerEmail:       row.CustomerEmail,
			CustomerPhone:       row.CustomerPhone,
			TransactionCount:    row.TransactionCount,
			LastTransactionDate: row.LastTransactionDate.Time,
		}
	}
	return out, nil
}

// TransactionsByPlatform lists a platform's transactions joined to their
// invoice and customer. Unknown platforms simply match nothing.
func (r *ReportRepository) TransactionsByPlatform(ctx context.Context, platform string) ([]*model.PlatformTransaction, error) {
	var rows []*model.PlatformTransaction
	err := r.Read(ctx).WithContext(ctx).Raw(`
		SELECT
			t.transaction_id,
			t.transaction_datetime,
			t.transaction_amount,
			t.transaction_status,
			t.transaction_type,
			t.platform,
			i.invoice_id,
			i.billing_period,
			i.invoice_amount,
			c.customer_name,
			c.customer_email
		FROM transactions t
		JOIN invoices i ON t.invoice_id = i.invoice_id
		JOIN customers c ON i.customer_id = c.customer_id
		WHERE t.platform = ?
		ORDER BY t.transaction_datetime DESC`, platform).
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FinancialSummary builds the single aggregate row plus the per-platform and
// per-status breakdowns.
func (r *ReportRepository) FinancialSummary(ctx context.Context) (*model.FinancialSummary, []*model.PlatformBreakdown, []*model.StatusBreakdown, error) {
	var summary model.FinancialSummary
	err := r.Read(ctx).WithContext(ctx).Raw(`
		SELECT
			COUNT(DISTINCT c.customer_id) AS total_customers,
			COUNT(DISTINCT i.invoice_id) AS total_invoices,
			COUNT(DISTINCT t.transaction_id) AS total_transactions,
			SUM(i.invoice_amount) AS total_invoiced,
			SUM(i.amount_paid) AS total_paid,
			(SUM(i.invoice_amount) - SUM(i.amount_paid)) AS total_pending,
			AVG(i.invoice_amount) AS average_invoice_amount
		FROM customers c
		LEFT JOIN invoices i ON c.customer_id = i.customer_id
		LEFT JOIN transactions t ON i.invoice_id = t.invoice_id`).
		Scan(&summary).
		Error
	if err != nil {
		return nil, nil, nil, err
	}

	var platforms []*model.PlatformBreakdown
	err = r.Read(ctx).WithContext(ctx).Raw(`
		SELECT
			platform,
			COUNT(*) AS count,
			SUM(transaction_amount) AS total_amount,
			AVG(transaction_amount) AS average_amount
		FROM transactions
		GROUP BY platform
		ORDER BY total_amount DESC`).
		Scan(&platforms).
		Error
	if err != nil {
		return nil, nil, nil, err
	}

	var statuses []*model.StatusBreakdown
	err = r.Read(ctx).WithContext(ctx).Raw(`
		SELECT
			transaction_status AS status,
			COUNT(*) AS count,
			SUM(transaction_amount) AS total_amount
		FROM transactions
		GROUP BY transaction_status
		ORDER BY count DESC`).
		Scan(&statuses).
		Error
	if err != nil {
		return nil, nil, nil, err
	}

	return &summary, platforms, statuses, nil
}
