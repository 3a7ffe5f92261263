package repository

import (
	"context"
	"errors"

	"github.com/camilogv/billing-gateway/internal/model"
	"github.com/camilogv/billing-gateway/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

type CustomerRepository struct {
	*pg.DB
}

func NewCustomerRepository(db *pg.DB) *CustomerRepository {
	return &CustomerRepository{
		db,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	entity := toCustomerEntity(c)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toCustomerModel(entity), nil
}

func (r *CustomerRepository) Get(ctx context.Context, id int64) (*model.Customer, error) {
	var entity CustomerEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("customer_id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return toCustomerModel(&entity), nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]*model.Customer, error) {
	var entities []*CustomerEntity
	err := r.Read(ctx).WithContext(ctx).
		Order("customer_id").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}
	return toCustomerModels(entities), nil
}

// Update applies the supplied columns only and returns the stored row.
func (r *CustomerRepository) Update(ctx context.Context, id int64, cols map[string]any) (*model.Customer, error) {
	result := r.Write(ctx).WithContext(ctx).
		Model(&CustomerEntity{}).
		Where("customer_id = ?", id).
		Updates(cols)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrCustomerNotFound
	}

	var entity CustomerEntity
	if err := r.Write(ctx).WithContext(ctx).Where("customer_id = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	return toCustomerModel(&entity), nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("customer_id = ?", id).
		Delete(&CustomerEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&CustomerEntity{}).
		Where("customer_id = ?", id).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountInvoices reports how many invoices still reference the customer.
// Used to block deletes that would orphan invoices.
func (r *CustomerRepository) CountInvoices(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&InvoiceEntity{}).
		Where("customer_id = ?", id).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
