package repository

import (
	"time"

	"github.com/camilogv/billing-gateway/internal/model"
	"github.com/shopspring/decimal"
)

type InvoiceEntity struct {
	ID            string          `db:"invoice_id"     gorm:"primaryKey;column:invoice_id"`
	CustomerID    int64           `db:"customer_id"    gorm:"column:customer_id;not null;index"`
	BillingPeriod string          `db:"billing_period" gorm:"column:billing_period;not null"`
	InvoiceAmount decimal.Decimal `db:"invoice_amount" gorm:"column:invoice_amount;type:decimal(12,2);not null"`
	AmountPaid    decimal.Decimal `db:"amount_paid"    gorm:"column:amount_paid;type:decimal(12,2);not null"`
	CreatedAt     time.Time       `db:"created_at"     gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `db:"updated_at"     gorm:"column:updated_at;autoUpdateTime"`
}

func (InvoiceEntity) TableName() string {
	return "invoices"
}

func toInvoiceEntity(m *model.Invoice) *InvoiceEntity {
	if m == nil {
		return nil
	}
	return &InvoiceEntity{
		ID:            m.ID,
		CustomerID:    m.CustomerID,
		BillingPeriod: m.BillingPeriod,
		InvoiceAmount: m.InvoiceAmount,
		AmountPaid:    m.AmountPaid,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toInvoiceModel(e *InvoiceEntity) *model.Invoice {
	if e == nil {
		return nil
	}
	return &model.Invoice{
		ID:            e.ID,
		CustomerID:    e.CustomerID,
		BillingPeriod: e.BillingPeriod,
		InvoiceAmount: e.InvoiceAmount,
		AmountPaid:    e.AmountPaid,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// invoiceWithCustomerRow is the flat scan target for invoice+customer joins.
// Customer columns are coalesced in SQL because the join is outer.
type invoiceWithCustomerRow struct {
	InvoiceID     string
	CustomerID    int64
	BillingPeriod string
	InvoiceAmount decimal.Decimal
	AmountPaid    decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

func toInvoiceWithCustomer(row *invoiceWithCustomerRow) *model.InvoiceWithCustomer {
	return &model.InvoiceWithCustomer{
		Invoice: model.Invoice{
			ID:            row.InvoiceID,
			CustomerID:    row.CustomerID,
			BillingPeriod: row.BillingPeriod,
			InvoiceAmount: row.InvoiceAmount,
			AmountPaid:    row.AmountPaid,
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
		},
		CustomerName:  row.CustomerName,
		CustomerEmail: row.CustomerEmail,
		CustomerPhone: row.CustomerPhone,
	}
}

func toInvoicesWithCustomer(rows []*invoiceWithCustomerRow) []*model.InvoiceWithCustomer {
	if rows == nil {
		return nil
	}
	models := make([]*model.InvoiceWithCustomer, len(rows))
	for i, row := range rows {
		models[i] = toInvoiceWithCustomer(row)
	}
	return models
}
