package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the settlement state of a payment event. Only
// Completed transactions affect the parent invoice balance.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "Pending"
	TransactionStatusCompleted TransactionStatus = "Completed"
	TransactionStatusFailed    TransactionStatus = "Failed"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed:
		return true
	}
	return false
}

// Platform is the mobile-money channel a transaction was made through.
type Platform string

const (
	PlatformNequi     Platform = "Nequi"
	PlatformDaviplata Platform = "Daviplata"
)

func (p Platform) Valid() bool {
	return p == PlatformNequi || p == PlatformDaviplata
}

type Transaction struct {
	ID        string            `json:"transaction_id"       db:"transaction_id"       gorm:"primaryKey;column:transaction_id"`
	InvoiceID string            `json:"invoice_id"           db:"invoice_id"           gorm:"column:invoice_id;not null;index"`
	Datetime  time.Time         `json:"transaction_datetime" db:"transaction_datetime" gorm:"column:transaction_datetime;not null"`
	Amount    decimal.Decimal   `json:"transaction_amount"   db:"transaction_amount"   gorm:"column:transaction_amount;type:decimal(12,2);not null"`
	Status    TransactionStatus `json:"transaction_status"   db:"transaction_status"   gorm:"column:transaction_status;not null"`
	Type      string            `json:"transaction_type"     db:"transaction_type"     gorm:"column:transaction_type;not null"`
	Platform  Platform          `json:"platform"             db:"platform"             gorm:"column:platform;not null"`
	CreatedAt time.Time         `json:"created_at"           db:"created_at"           gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `json:"updated_at"           db:"updated_at"           gorm:"column:updated_at;autoUpdateTime"`
}

func (Transaction) TableName() string { return "transactions" }

// TransactionDetail is a transaction row joined to its invoice and that
// invoice's customer, the shape returned by list and get-by-id reads.
type TransactionDetail struct {
	Transaction
	InvoiceAmount decimal.NullDecimal `json:"invoice_amount"`
	AmountPaid    decimal.NullDecimal `json:"amount_paid"`
	CustomerID    *int64              `json:"customer_id"`
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email"`
}

// TransactionCreateRequest is the input for creating a transaction. Every
// field is required.
type TransactionCreateRequest struct {
	InvoiceID string
	Datetime  time.Time
	Amount    decimal.Decimal
	Status    TransactionStatus
	Type      string
	Platform  Platform
}

func (p TransactionCreateRequest) Validate() error {
	if p.InvoiceID == "" || p.Datetime.IsZero() || p.Amount.IsZero() ||
		p.Status == "" || p.Type == "" || p.Platform == "" {
		return errors.New("missing required fields: invoice_id, transaction_datetime, transaction_amount, transaction_status, transaction_type, platform")
	}
	if !p.Amount.IsPositive() {
		return errors.New("transaction amount must be greater than 0")
	}
	if !p.Status.Valid() {
		return fmt.Errorf("invalid transaction status. Must be one of: %s, %s, %s",
			TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed)
	}
	if !p.Platform.Valid() {
		return fmt.Errorf("invalid platform. Must be one of: %s, %s", PlatformNequi, PlatformDaviplata)
	}
	return nil
}

// TransactionUpdateRequest carries a partial update; nil fields are
// untouched. Enumerations are re-validated against the merged record.
type TransactionUpdateRequest struct {
	InvoiceID *string
	Datetime  *time.Time
	Amount    *decimal.Decimal
	Status    *TransactionStatus
	Type      *string
	Platform  *Platform
}

func (p TransactionUpdateRequest) Empty() bool {
	return p.InvoiceID == nil && p.Datetime == nil && p.Amount == nil &&
		p.Status == nil && p.Type == nil && p.Platform == nil
}
