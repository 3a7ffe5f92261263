package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID            string          `json:"invoice_id"     db:"invoice_id"     gorm:"primaryKey;column:invoice_id"`
	CustomerID    int64           `json:"customer_id"    db:"customer_id"    gorm:"column:customer_id;not null;index"`
	BillingPeriod string          `json:"billing_period" db:"billing_period" gorm:"column:billing_period;not null"`
	InvoiceAmount decimal.Decimal `json:"invoice_amount" db:"invoice_amount" gorm:"column:invoice_amount;type:decimal(12,2);not null"`
	AmountPaid    decimal.Decimal `json:"amount_paid"    db:"amount_paid"    gorm:"column:amount_paid;type:decimal(12,2);not null"`
	CreatedAt     time.Time       `json:"created_at"     db:"created_at"     gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `json:"updated_at"     db:"updated_at"     gorm:"column:updated_at;autoUpdateTime"`
}

func (Invoice) TableName() string { return "invoices" }

// Pending is the outstanding balance of the invoice.
func (i Invoice) Pending() decimal.Decimal {
	return i.InvoiceAmount.Sub(i.AmountPaid)
}

// InvoiceWithCustomer is an invoice row joined to its owning customer, the
// shape returned by list and get-by-id reads.
type InvoiceWithCustomer struct {
	Invoice
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

// InvoiceCreateRequest is the input for creating an invoice.
type InvoiceCreateRequest struct {
	CustomerID    int64
	BillingPeriod string
	InvoiceAmount decimal.Decimal
	AmountPaid    decimal.Decimal
}

func (p InvoiceCreateRequest) Validate() error {
	if p.CustomerID == 0 || p.BillingPeriod == "" || p.InvoiceAmount.IsZero() {
		return errors.New("missing required fields: customer_id, billing_period, invoice_amount")
	}
	if !p.InvoiceAmount.IsPositive() {
		return errors.New("invoice amount must be greater than 0")
	}
	if p.AmountPaid.IsNegative() {
		return errors.New("amount paid cannot be negative")
	}
	if p.AmountPaid.GreaterThan(p.InvoiceAmount) {
		return errors.New("amount paid cannot exceed invoice amount")
	}
	return nil
}

// InvoiceUpdateRequest carries a partial update; nil fields are untouched.
// Validation happens against the merged record, not against this struct.
type InvoiceUpdateRequest struct {
	CustomerID    *int64
	BillingPeriod *string
	InvoiceAmount *decimal.Decimal
	AmountPaid    *decimal.Decimal
}

func (p InvoiceUpdateRequest) Empty() bool {
	return p.CustomerID == nil && p.BillingPeriod == nil &&
		p.InvoiceAmount == nil && p.AmountPaid == nil
}
