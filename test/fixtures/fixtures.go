package fixtures

import (
	"time"

	"github.com/camilogv/billing-gateway/internal/model"
	"github.com/shopspring/decimal"
)

var (
	TestCustomer1 = model.Customer{
		ID:    1,
		Name:  "Juan Perez",
		Phone: "3001234567",
		Email: "juan@example.com",
	}

	TestCustomer2 = model.Customer{
		ID:    2,
		Name:  "Maria Gomez",
		Phone: "3109876543",
		Email: "maria@example.com",
	}

	TestCustomerNoInvoices = model.Customer{
		ID:    3,
		Name:  "Carlos Ruiz",
		Phone: "3205550000",
		Email: "carlos@example.com",
	}
)

func NewTestInvoice(id string, customerID int64, amount, paid int64) *model.Invoice {
	return &model.Invoice{
		ID:            id,
		CustomerID:    customerID,
		BillingPeriod: "2024-01",
		InvoiceAmount: decimal.NewFromInt(amount),
		AmountPaid:    decimal.NewFromInt(paid),
		CreatedAt:     time.Now(),
	}
}

func NewTestInvoiceCreateRequest(customerID int64, period string, amount int64) model.InvoiceCreateRequest {
	return model.InvoiceCreateRequest{
		CustomerID:    customerID,
		BillingPeriod: period,
		InvoiceAmount: decimal.NewFromInt(amount),
		AmountPaid:    decimal.Zero,
	}
}

func NewTestTransaction(id, invoiceID string, amount int64, status model.TransactionStatus, platform model.Platform) *model.Transaction {
	return &model.Transaction{
		ID:        id,
		InvoiceID: invoiceID,
		Datetime:  time.Now(),
		Amount:    decimal.NewFromInt(amount),
		Status:    status,
		Type:      "Pago Factura",
		Platform:  platform,
	}
}

func NewTestTransactionCreateRequest(invoiceID string, amount int64, status model.TransactionStatus, platform model.Platform) model.TransactionCreateRequest {
	return model.TransactionCreateRequest{
		InvoiceID: invoiceID,
		Datetime:  time.Now(),
		Amount:    decimal.NewFromInt(amount),
		Status:    status,
		Type:      "Pago Factura",
		Platform:  platform,
	}
}
