package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Identifiers keep the historical INV-/TXN-<epoch ms> shape but carry a uuid
// fragment instead of a random suffix so they never collide.

func NewInvoiceID() string {
	return fmt.Sprintf("INV-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

func NewTransactionID() string {
	return fmt.Sprintf("TXN-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
