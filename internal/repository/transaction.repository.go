package repository

import (
	"context"
	"errors"

	"github.com/camilogv/billing-gateway/internal/model"
	"github.com/camilogv/billing-gateway/pkg/pg"
	"gorm.io/gorm"
)

const transactionDetailSelect = `
	t.transaction_id,
	t.invoice_id,
	t.transaction_datetime,
	t.transaction_amount,
	t.transaction_status,
	t.transaction_type,
	t.platform,
	t.created_at,
	t.updated_at,
	i.invoice_amount,
	i.amount_paid,
	c.customer_id,
	COALESCE(c.customer_name, '') AS customer_name,
	COALESCE(c.customer_email, '') AS customer_email`

type TransactionRepository struct {
	*pg.DB
}

func NewTransactionRepository(db *pg.DB) *TransactionRepository {
	return &TransactionRepository{
		db,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	entity := toTransactionEntity(txn)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toTransactionModel(entity), nil
}

func (r *TransactionRepository) Get(ctx context.Context, id string) (*model.TransactionDetail, error) {
	var row transactionDetailRow
	result := r.Read(ctx).WithContext(ctx).
		Table("transactions t").
		Select(transactionDetailSelect).
		Joins("LEFT JOIN invoices i ON t.invoice_id = i.invoice_id").
		Joins("LEFT JOIN customers c ON i.customer_id = c.customer_id").
		Where("t.transaction_id = ?", id).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrTransactionNotFound
	}
	return toTransactionDetail(&row), nil
}

func (r *TransactionRepository) List(ctx context.Context) ([]*model.TransactionDetail, error) {
	return r.listDetails(ctx, "", nil)
}

func (r *TransactionRepository) ListByPlatform(ctx context.Context, platform string) ([]*model.TransactionDetail, error) {
	return r.listDetails(ctx, "t.platform = ?", platform)
}

func (r *TransactionRepository) ListByStatus(ctx context.Context, status string) ([]*model.TransactionDetail, error) {
	return r.listDetails(ctx, "t.transaction_status = ?", status)
}

func (r *TransactionRepository) ListByInvoice(ctx context.Context, invoiceID string) ([]*model.TransactionDetail, error) {
	return r.listDetails(ctx, "t.invoice_id = ?", invoiceID)
}

func (r *TransactionRepository) listDetails(ctx context.Context, cond string, arg any) ([]*model.TransactionDetail, error) {
	q := r.Read(ctx).WithContext(ctx).
		Table("transactions t").
		Select(transactionDetailSelect).
		Joins("LEFT JOIN invoices i ON t.invoice_id = i.invoice_id").
		Joins("LEFT JOIN customers c ON i.customer_id = c.customer_id")
	if cond != "" {
		q = q.Where(cond, arg)
	}

	var rows []*transactionDetailRow
	if err := q.Order("t.transaction_datetime DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toTransactionDetails(rows), nil
}

// GetRow reads the bare transaction row without joins. Mutation paths use it
// to derive the compensating invoice adjustment.
func (r *TransactionRepository) GetRow(ctx context.Context, id string) (*model.Transaction, error) {
	var entity TransactionEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("transaction_id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return toTransactionModel(&entity), nil
}

// Update applies the supplied columns only.
func (r *TransactionRepository) Update(ctx context.Context, id string, cols map[string]any) (*model.Transaction, error) {
	result := r.Write(ctx).WithContext(ctx).
		Model(&TransactionEntity{}).
		Where("transaction_id = ?", id).
		Updates(cols)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrTransactionNotFound
	}

	var entity TransactionEntity
	if err := r.Write(ctx).WithContext(ctx).Where("transaction_id = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	return toTransactionModel(&entity), nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("transaction_id = ?", id).
		Delete(&TransactionEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
