package repository

import (
	"time"

	"github.com/camilogv/billing-gateway/internal/model"
	"github.com/shopspring/decimal"
)

type TransactionEntity struct {
	ID        string          `db:"transaction_id"       gorm:"primaryKey;column:transaction_id"`
	InvoiceID string          `db:"invoice_id"           gorm:"column:invoice_id;not null;index"`
	Datetime  time.Time       `db:"transaction_datetime" gorm:"column:transaction_datetime;not null"`
	Amount    decimal.Decimal `db:"transaction_amount"   gorm:"column:transaction_amount;type:decimal(12,2);not null"`
	Status    string          `db:"transaction_status"   gorm:"column:transaction_status;not null"`
	Type      string          `db:"transaction_type"     gorm:"column:transaction_type;not null"`
	Platform  string          `db:"platform"             gorm:"column:platform;not null"`
	CreatedAt time.Time       `db:"created_at"           gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `db:"updated_at"           gorm:"column:updated_at;autoUpdateTime"`
}

func (TransactionEntity) TableName() string {
	return "transactions"
}

func toTransactionEntity(m *model.Transaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		ID:        m.ID,
		InvoiceID: m.InvoiceID,
		Datetime:  m.Datetime,
		Amount:    m.Amount,
		Status:    string(m.Status),
		Type:      m.Type,
		Platform:  string(m.Platform),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toTransactionModel(e *TransactionEntity) *model.Transaction {
	if e == nil {
		return nil
	}
	return &model.Transaction{
		ID:        e.ID,
		InvoiceID: e.InvoiceID,
		Datetime:  e.Datetime,
		Amount:    e.Amount,
		Status:    model.TransactionStatus(e.Status),
		Type:      e.Type,
		Platform:  model.Platform(e.Platform),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// transactionDetailRow is the flat scan target for transaction+invoice+
// customer joins. Invoice and customer columns may be NULL (outer joins).
type transactionDetailRow struct {
	TransactionID string
	InvoiceID     string
	Datetime      time.Time       `gorm:"column:transaction_datetime"`
	Amount        decimal.Decimal `gorm:"column:transaction_amount"`
	Status        string          `gorm:"column:transaction_status"`
	Type          string          `gorm:"column:transaction_type"`
	Platform      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	InvoiceAmount decimal.NullDecimal
	AmountPaid    decimal.NullDecimal
	CustomerID    *int64
	CustomerName  string
	CustomerEmail string
}

func toTransactionDetail(row *transactionDetailRow) *model.TransactionDetail {
	return &model.TransactionDetail{
		Transaction: model.Transaction{
			ID:        row.TransactionID,
			InvoiceID: row.InvoiceID,
			Datetime:  row.Datetime,
			Amount:    row.Amount,
			Status:    model.TransactionStatus(row.Status),
			Type:      row.Type,
			Platform:  model.Platform(row.Platform),
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
		InvoiceAmount: row.InvoiceAmount,
		AmountPaid:    row.AmountPaid,
		CustomerID:    row.CustomerID,
		CustomerName:  row.CustomerName,
		CustomerEmail: row.CustomerEmail,
	}
}

func toTransactionDetails(rows []*transactionDetailRow) []*model.TransactionDetail {
	if rows == nil {
		return nil
	}
	models := make([]*model.TransactionDetail, len(rows))
	for i, row := range rows {
		models[i] = toTransactionDetail(row)
	}
	return models
}
