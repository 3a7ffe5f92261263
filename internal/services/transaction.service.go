package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/camilogv/billing-gateway/internal/model"
	"github.com/camilogv/billing-gateway/internal/repository"
	"github.com/camilogv/billing-gateway/pkg/prom"
	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error)
	Get(ctx context.Context, id string) (*model.TransactionDetail, error)
	GetRow(ctx context.Context, id string) (*model.Transaction, error)
	List(ctx context.Context) ([]*model.TransactionDetail, error)
	ListByInvoice(ctx context.Context, invoiceID string) ([]*model.TransactionDetail, error)
	ListByPlatform(ctx context.Context, platform string) ([]*model.TransactionDetail, error)
	ListByStatus(ctx context.Context, status string) ([]*model.TransactionDetail, error)
	Update(ctx context.Context, id string, cols map[string]any) (*model.Transaction, error)
	Delete(ctx context.Context, id string) error
}

// InvoiceLedger is the slice of the invoice repository the transaction rules
// need: existence checks, the balance adjustment, and the unit of work that
// keeps both writes atomic.
type InvoiceLedger interface {
	Exists(ctx context.Context, id string) (bool, error)
	AdjustAmountPaid(ctx context.Context, id string, delta decimal.Decimal) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type TransactionService struct {
	repo     TransactionRepository
	invoices InvoiceLedger
}

func NewTransactionService(repo TransactionRepository, invoices InvoiceLedger) *TransactionService {
	return &TransactionService{
		repo:     repo,
		invoices: invoices,
	}
}

// Create persists a payment event. A Completed transaction also credits the
// parent invoice's amount_paid; both writes happen in one unit of work so
// the balance is never observably partial.
func (s *TransactionService) Create(ctx context.Context, p model.TransactionCreateRequest) (*model.Transaction, error) {
	if err := p.Validate(); err != nil {
		return nil, NewValidationError(err.Error())
	}

	var created *model.Transaction
	err := s.invoices.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.invoices.Exists(ctx, p.InvoiceID)
		if err != nil {
			return err
		}
		if !exists {
			return NewForeignNotFoundError("invoice")
		}

		txn := &model.Transaction{
			ID:        model.NewTransactionID(),
			InvoiceID: p.InvoiceID,
			Datetime:  p.Datetime,
			Amount:    p.Amount,
			Status:    p.Status,
			Type:      p.Type,
			Platform:  p.Platform,
		}

		created, err = s.repo.Create(ctx, txn)
		if err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}

		if p.Status == model.TransactionStatusCompleted {
			if err := s.invoices.AdjustAmountPaid(ctx, p.InvoiceID, p.Amount); err != nil {
				return fmt.Errorf("apply payment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	prom.IncTransactionsCreated(string(p.Platform), string(p.Status))
	if p.Status == model.TransactionStatusCompleted {
		prom.IncPaymentsApplied("credit")
	}
	return created, nil
}

func (s *TransactionService) Get(ctx context.Context, id string) (*model.TransactionDetail, error) {
	txn, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return nil, NewNotFoundError("transaction")
		}
		return nil, err
	}
	return txn, nil
}

func (s *TransactionService) List(ctx context.Context) ([]*model.TransactionDetail, error) {
	return s.repo.List(ctx)
}

func (s *TransactionService) ListByInvoice(ctx context.Context, invoiceID string) ([]*model.TransactionDetail, error) {
	return s.repo.ListByInvoice(ctx, invoiceID)
}

// ListByPlatform returns the platform's transactions. Unrecognized platform
// values match nothing and yield an empty result, not an error.
func (s *TransactionService) ListByPlatform(ctx context.Context, platform string) ([]*model.TransactionDetail, error) {
	return s.repo.ListByPlatform(ctx, platform)
}

func (s *TransactionService) ListByStatus(ctx context.Context, status string) ([]*model.TransactionDetail, error) {
	return s.repo.ListByStatus(ctx, status)
}

// Update merges the supplied fields, re-validates the enumerations, and
// re-derives the balance effect: the old Completed effect is reversed and
// the merged Completed effect applied, all in one unit of work.
func (s *TransactionService) Update(ctx context.Context, id string, p model.TransactionUpdateRequest) (*model.Transaction, error) {
	if p.Empty() {
		return nil, NewValidationError("no fields to update")
	}

	var updated *model.Transaction
	err := s.invoices.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetRow(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrTransactionNotFound) {
				return NewNotFoundError("transaction")
			}
			return err
		}

		merged := *existing
		if p.InvoiceID != nil {
			merged.InvoiceID = *p.InvoiceID
		}
		if p.Datetime != nil {
			merged.Datetime = *p.Datetime
		}
		if p.Amount != nil {
			merged.Amount = *p.Amount
		}
		if p.Status != nil {
			merged.Status = *p.Status
		}
		if p.Type != nil {
			merged.Type = *p.Type
		}
		if p.Platform != nil {
			merged.Platform = *p.Platform
		}

		if !merged.Amount.IsPositive() {
			return NewValidationError("transaction amount must be greater than 0")
		}
		if !merged.Status.Valid() {
			return NewValidationError(fmt.Sprintf("invalid transaction status. Must be one of: %s, %s, %s",
				model.TransactionStatusPending, model.TransactionStatusCompleted, model.TransactionStatusFailed))
		}
		if !merged.Platform.Valid() {
			return NewValidationError(fmt.Sprintf("invalid platform. Must be one of: %s, %s",
				model.PlatformNequi, model.PlatformDaviplata))
		}

		if p.InvoiceID != nil && *p.InvoiceID != existing.InvoiceID {
			exists, err := s.invoices.Exists(ctx, *p.InvoiceID)
			if err != nil {
				return err
			}
			if !exists {
				return NewForeignNotFoundError("invoice")
			}
		}

		if existing.Status == model.TransactionStatusCompleted {
			if err := s.invoices.AdjustAmountPaid(ctx, existing.InvoiceID, existing.Amount.Neg()); err != nil {
				return fmt.Errorf("reverse payment: %w", err)
			}
		}

		cols := map[string]any{}
		if p.InvoiceID != nil {
			cols["invoice_id"] = *p.InvoiceID
		}
		if p.Datetime != nil {
			cols["transaction_datetime"] = *p.Datetime
		}
		if p.Amount != nil {
			cols["transaction_amount"] = *p.Amount
		}
		if p.Status != nil {
			cols["transaction_status"] = string(*p.Status)
		}
		if p.Type != nil {
			cols["transaction_type"] = *p.Type
		}
		if p.Platform != nil {
			cols["platform"] = string(*p.Platform)
		}

		updated, err = s.repo.Update(ctx, id, cols)
		if err != nil {
			return err
		}

		if merged.Status == model.TransactionStatusCompleted {
			if err := s.invoices.AdjustAmountPaid(ctx, merged.InvoiceID, merged.Amount); err != nil {
				return fmt.Errorf("apply payment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a payment event, reversing its Completed effect on the
// parent invoice in the same unit of work.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	reversed := false
	err := s.invoices.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetRow(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrTransactionNotFound) {
				return NewNotFoundError("transaction")
			}
			return err
		}

		if existing.Status == model.TransactionStatusCompleted {
			if err := s.invoices.AdjustAmountPaid(ctx, existing.InvoiceID, existing.Amount.Neg()); err != nil {
				return fmt.Errorf("reverse payment: %w", err)
			}
			reversed = true
		}

		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if reversed {
		prom.IncPaymentsApplied("reversal")
	}
	return nil
}
