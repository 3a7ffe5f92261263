package model

import (
	"time"
)

type Customer struct {
	ID        int64     `json:"customer_id" db:"customer_id"      gorm:"primaryKey;autoIncrement;column:customer_id"`
	Name      string    `json:"customer_name"    db:"customer_name"    gorm:"column:customer_name"`
	Address   string    `json:"customer_address" db:"customer_address" gorm:"column:customer_address"`
	Phone     string    `json:"customer_phone"   db:"customer_phone"   gorm:"column:customer_phone"`
	Email     string    `json:"customer_email"   db:"customer_email"   gorm:"column:customer_email"`
	CreatedAt time.Time `json:"created_at"       db:"created_at"       gorm:"column:created_at;autoCreateTime"`
}

func (Customer) TableName() string { return "customers" }

// CustomerCreateRequest is the input for creating a customer. All attributes
// are free text; the column schema is the only constraint.
type CustomerCreateRequest struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// CustomerUpdateRequest carries a partial update; nil fields are untouched.
type CustomerUpdateRequest struct {
	Name    *string
	Address *string
	Phone   *string
	Email   *string
}

func (p CustomerUpdateRequest) Empty() bool {
	return p.Name == nil && p.Address == nil && p.Phone == nil && p.Email == nil
}
