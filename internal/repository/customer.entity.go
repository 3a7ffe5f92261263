package repository

import (
	"time"

	"github.com/camilogv/billing-gateway/internal/model"
)

type CustomerEntity struct {
	ID        int64     `db:"customer_id"      gorm:"primaryKey;autoIncrement;column:customer_id"`
	Name      string    `db:"customer_name"    gorm:"column:customer_name"`
	Address   string    `db:"customer_address" gorm:"column:customer_address"`
	Phone     string    `db:"customer_phone"   gorm:"column:customer_phone"`
	Email     string    `db:"customer_email"   gorm:"column:customer_email"`
	CreatedAt time.Time `db:"created_at"       gorm:"column:created_at;autoCreateTime"`
}

func (CustomerEntity) TableName() string {
	return "customers"
}

func toCustomerEntity(m *model.Customer) *CustomerEntity {
	if m == nil {
		return nil
	}
	return &CustomerEntity{
		ID:        m.ID,
		Name:      m.Name,
		Address:   m.Address,
		Phone:     m.Phone,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
	}
}

func toCustomerModel(e *CustomerEntity) *model.Customer {
	if e == nil {
		return nil
	}
	return &model.Customer{
		ID:        e.ID,
		Name:      e.Name,
		Address:   e.Address,
		Phone:     e.Phone,
		Email:     e.Email,
		CreatedAt: e.CreatedAt,
	}
}

func toCustomerModels(entities []*CustomerEntity) []*model.Customer {
	if entities == nil {
		return nil
	}
	models := make([]*model.Customer, len(entities))
	for i, e := range entities {
		models[i] = toCustomerModel(e)
	}
	return models
}
