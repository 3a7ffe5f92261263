package repository

import (
	"context"
	"errors"

	"github.com/camilogv/billing-gateway/internal/model"
	"github.com/camilogv/billing-gateway/pkg/pg"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const invoiceWithCustomerSelect = `
	i.invoice_id,
	i.customer_id,
	i.billing_period,
	i.invoice_amount,
	i.amount_paid,
	i.created_at,
	i.updated_at,
	COALESCE(c.customer_name, '') AS customer_name,
	COALESCE(c.customer_email, '') AS customer_email,
	COALESCE(c.customer_phone, '') AS customer_phone`

type InvoiceRepository struct {
	*pg.DB
}

func NewInvoiceRepository(db *pg.DB) *InvoiceRepository {
	return &InvoiceRepository{
		db,
	}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *model.Invoice) (*model.Invoice, error) {
	entity := toInvoiceEntity(inv)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toInvoiceModel(entity), nil
}

func (r *InvoiceRepository) Get(ctx context.Context, id string) (*model.InvoiceWithCustomer, error) {
	var row invoiceWithCustomerRow
	result := r.Read(ctx).WithContext(ctx).
		Table("invoices i").
		Select(invoiceWithCustomerSelect).
		Joins("LEFT JOIN customers c ON i.customer_id = c.customer_id").
		Where("i.invoice_id = ?", id).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrInvoiceNotFound
	}
	return toInvoiceWithCustomer(&row), nil
}

func (r *InvoiceRepository) List(ctx context.Context) ([]*model.InvoiceWithCustomer, error) {
	var rows []*invoiceWithCustomerRow
	err := r.Read(ctx).WithContext(ctx).
		Table("invoices i").
		Select(invoiceWithCustomerSelect).
		Joins("LEFT JOIN customers c ON i.customer_id = c.customer_id").
		Order("i.invoice_id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return toInvoicesWithCustomer(rows), nil
}

func (r *InvoiceRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*model.InvoiceWithCustomer, error) {
	var rows []*invoiceWithCustomerRow
	err := r.Read(ctx).WithContext(ctx).
		Table("invoices i").
		Select(invoiceWithCustomerSelect).
		Joins("LEFT JOIN customers c ON i.customer_id = c.customer_id").
		Where("i.customer_id = ?", customerID).
		Order("i.billing_period DESC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return toInvoicesWithCustomer(rows), nil
}

// GetRow reads the bare invoice row without the customer join. Mutation
// paths use it to merge and validate before writing.
func (r *InvoiceRepository) GetRow(ctx context.Context, id string) (*model.Invoice, error) {
	var entity InvoiceEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("invoice_id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return toInvoiceModel(&entity), nil
}

// Update applies the supplied columns only; updated_at refreshes through the
// entity's autoUpdateTime tracking.
func (r *InvoiceRepository) Update(ctx context.Context, id string, cols map[string]any) (*model.Invoice, error) {
	result := r.Write(ctx).WithContext(ctx).
		Model(&InvoiceEntity{}).
		Where("invoice_id = ?", id).
		Updates(cols)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrInvoiceNotFound
	}

	var entity InvoiceEntity
	if err := r.Write(ctx).WithContext(ctx).Where("invoice_id = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	return toInvoiceModel(&entity), nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("invoice_id = ?", id).
		Delete(&InvoiceEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

func (r *InvoiceRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&InvoiceEntity{}).
		Where("invoice_id = ?", id).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountTransactions reports how many transactions still reference the
// invoice. Deletion is blocked while any remain.
func (r *InvoiceRepository) CountTransactions(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&TransactionEntity{}).
		Where("invoice_id = ?", id).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// AdjustAmountPaid shifts amount_paid by delta in a single statement.
// Callers run it inside WithinTransaction together with the transaction row
// mutation so the balance is never observably partial.
func (r *InvoiceRepository) AdjustAmountPaid(ctx context.Context, id string, delta decimal.Decimal) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&InvoiceEntity{}).
		Where("invoice_id = ?", id).
		Updates(map[string]any{"amount_paid": gorm.Expr("amount_paid + ?", delta)})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}
