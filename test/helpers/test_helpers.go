package helpers

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/camilogv/billing-gateway/internal/repository"
	"github.com/camilogv/billing-gateway/pkg/pg"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func SetupTestDB(t *testing.T) *pg.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&repository.CustomerEntity{},
		&repository.InvoiceEntity{},
		&repository.TransactionEntity{},
	)
	require.NoError(t, err)

	pgDB := &pg.DB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()

	readField := pgDBValue.FieldByName("read")
	writeField := pgDBValue.FieldByName("write")

	readField = reflect.NewAt(readField.Type(), readField.Addr().UnsafePointer()).Elem()
	writeField = reflect.NewAt(writeField.Type(), writeField.Addr().UnsafePointer()).Elem()

	readField.Set(reflect.ValueOf(db))
	writeField.Set(reflect.ValueOf(db))

	return pgDB
}

func CreateTestCustomer(t *testing.T, db *pg.DB, name string) *repository.CustomerEntity {
	ctx := context.Background()
	customer := &repository.CustomerEntity{
		Name:  name,
		Phone: "3001234567",
		Email: "billing@example.com",
	}
	require.NoError(t, db.Write(ctx).Create(customer).Error)
	return customer
}

func CreateTestInvoice(t *testing.T, db *pg.DB, id string, customerID int64, amount, paid int64) *repository.InvoiceEntity {
	ctx := context.Background()
	invoice := &repository.InvoiceEntity{
		ID:            id,
		CustomerID:    customerID,
		BillingPeriod: "2024-01",
		InvoiceAmount: decimal.NewFromInt(amount),
		AmountPaid:    decimal.NewFromInt(paid),
	}
	require.NoError(t, db.Write(ctx).Create(invoice).Error)
	return invoice
}

func CreateTestTransaction(t *testing.T, db *pg.DB, id, invoiceID string, amount int64, status string) *repository.TransactionEntity {
	ctx := context.Background()
	txn := &repository.TransactionEntity{
		ID:        id,
		InvoiceID: invoiceID,
		Datetime:  time.Now(),
		Amount:    decimal.NewFromInt(amount),
		Status:    status,
		Type:      "Pago Factura",
		Platform:  "Nequi",
	}
	require.NoError(t, db.Write(ctx).Create(txn).Error)
	return txn
}
