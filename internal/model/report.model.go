package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerTotals is one row of the total-paid-by-customer report. Customers
// with no invoices keep null aggregates (outer-join semantics).
type CustomerTotals struct {
	CustomerID    int64               `json:"customer_id"`
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email"`
	TotalInvoices int64               `json:"total_invoices"`
	TotalInvoiced decimal.NullDecimal `json:"total_invoiced"`
	TotalPaid     decimal.NullDecimal `json:"total_paid"`
	TotalPending  decimal.NullDecimal `json:"total_pending"`
}

// PendingInvoice is one row of the pending-invoices report.
type PendingInvoice struct {
	InvoiceID           string          `json:"invoice_id"`
	BillingPeriod       string          `json:"billing_period"`
	InvoiceAmount       decimal.Decimal `json:"invoice_amount"`
	AmountPaid          decimal.Decimal `json:"amount_paid"`
	PendingAmount       decimal.Decimal `json:"pending_amount"`
	CustomerID          int64           `json:"customer_id"`
	CustomerName        string          `json:"customer_name"`
	CustomerEmail       string          `json:"customer_email"`
	CustomerPhone       string          `json:"customer_phone"`
	TransactionCount    int64           `json:"transaction_count"`
	LastTransactionDate *time.Time      `json:"last_transaction_date"`
}

// PlatformTransaction is one row of the transactions-by-platform report.
type PlatformTransaction struct {
	TransactionID string            `json:"transaction_id"`
	Datetime      time.Time         `json:"transaction_datetime" gorm:"column:transaction_datetime"`
	Amount        decimal.Decimal   `json:"transaction_amount"   gorm:"column:transaction_amount"`
	Status        TransactionStatus `json:"transaction_status"   gorm:"column:transaction_status"`
	Type          string            `json:"transaction_type"     gorm:"column:transaction_type"`
	Platform      Platform          `json:"platform"`
	InvoiceID     string            `json:"invoice_id"`
	BillingPeriod string            `json:"billing_period"`
	InvoiceAmount decimal.Decimal   `json:"invoice_amount"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
}

// FinancialSummary is the single aggregate row of the financial-summary
// report, fully outer-joined from customers down.
type FinancialSummary struct {
	TotalCustomers       int64               `json:"total_customers"`
	TotalInvoices        int64               `json:"total_invoices"`
	TotalTransactions    int64               `json:"total_transactions"`
	TotalInvoiced        decimal.NullDecimal `json:"total_invoiced"`
	TotalPaid            decimal.NullDecimal `json:"total_paid"`
	TotalPending         decimal.NullDecimal `json:"total_pending"`
	AverageInvoiceAmount decimal.NullDecimal `json:"average_invoice_amount"`
}

// PlatformBreakdown is one per-platform row of the financial summary.
type PlatformBreakdown struct {
	Platform      Platform            `json:"platform"`
	Count         int64               `json:"transaction_count"`
	TotalAmount   decimal.NullDecimal `json:"total_amount"`
	AverageAmount decimal.NullDecimal `json:"average_amount"`
}

// StatusBreakdown is one per-status row of the financial summary.
type StatusBreakdown struct {
	Status      TransactionStatus   `json:"transaction_status"`
	Count       int64               `json:"count"`
	TotalAmount decimal.NullDecimal `json:"total_amount"`
}
