package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/camilogv/billing-gateway/internal/model"
	"github.com/camilogv/billing-gateway/internal/repository"
	"github.com/camilogv/billing-gateway/pkg/prom"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *model.Invoice) (*model.Invoice, error)
	Get(ctx context.Context, id string) (*model.InvoiceWithCustomer, error)
	GetRow(ctx context.Context, id string) (*model.Invoice, error)
	List(ctx context.Context) ([]*model.InvoiceWithCustomer, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*model.InvoiceWithCustomer, error)
	Update(ctx context.Context, id string, cols map[string]any) (*model.Invoice, error)
	Delete(ctx context.Context, id string) error
	CountTransactions(ctx context.Context, id string) (int64, error)
}

// CustomerChecker is the slice of the customer repository the invoice rules
// need: referential existence checks.
type CustomerChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type InvoiceService struct {
	repo      InvoiceRepository
	customers CustomerChecker
}

func NewInvoiceService(repo InvoiceRepository, customers CustomerChecker) *InvoiceService {
	return &InvoiceService{
		repo:      repo,
		customers: customers,
	}
}

func (s *InvoiceService) Create(ctx context.Context, p model.InvoiceCreateRequest) (*model.Invoice, error) {
	if err := p.Validate(); err != nil {
		return nil, NewValidationError(err.Error())
	}

	exists, err := s.customers.Exists(ctx, p.CustomerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, NewForeignNotFoundError("customer")
	}

	inv := &model.Invoice{
		ID:            model.NewInvoiceID(),
		CustomerID:    p.CustomerID,
		BillingPeriod: p.BillingPeriod,
		InvoiceAmount: p.InvoiceAmount,
		AmountPaid:    p.AmountPaid,
	}

	created, err := s.repo.Create(ctx, inv)
	if err != nil {
		return nil, err
	}

	prom.IncInvoicesCreated()
	return created, nil
}

func (s *InvoiceService) Get(ctx context.Context, id string) (*model.InvoiceWithCustomer, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			return nil, NewNotFoundError("invoice")
		}
		return nil, err
	}
	return inv, nil
}

func (s *InvoiceService) List(ctx context.Context) ([]*model.InvoiceWithCustomer, error) {
	return s.repo.List(ctx)
}

func (s *InvoiceService) ListByCustomer(ctx context.Context, customerID int64) ([]*model.InvoiceWithCustomer, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

// Update merges the supplied fields over the stored row and validates the
// merged result, so a partial update can never break
// 0 <= amount_paid <= invoice_amount.
func (s *InvoiceService) Update(ctx context.Context, id string, p model.InvoiceUpdateRequest) (*model.Invoice, error) {
	current, err := s.repo.GetRow(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			return nil, NewNotFoundError("invoice")
		}
		return nil, err
	}

	if p.Empty() {
		return nil, NewValidationError("no fields to update")
	}

	amount := current.InvoiceAmount
	if p.InvoiceAmount != nil {
		amount = *p.InvoiceAmount
	}
	paid := current.AmountPaid
	if p.AmountPaid != nil {
		paid = *p.AmountPaid
	}

	if !amount.IsPositive() {
		return nil, NewValidationError("invoice amount must be greater than 0")
	}
	if paid.IsNegative() {
		return nil, NewValidationError("amount paid cannot be negative")
	}
	if paid.GreaterThan(amount) {
		return nil, NewValidationError("amount paid cannot exceed invoice amount")
	}

	if p.CustomerID != nil {
		exists, err := s.customers.Exists(ctx, *p.CustomerID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, NewForeignNotFoundError("customer")
		}
	}

	cols := map[string]any{}
	if p.CustomerID != nil {
		cols["customer_id"] = *p.CustomerID
	}
	if p.BillingPeriod != nil {
		cols["billing_period"] = *p.BillingPeriod
	}
	if p.InvoiceAmount != nil {
		cols["invoice_amount"] = *p.InvoiceAmount
	}
	if p.AmountPaid != nil {
		cols["amount_paid"] = *p.AmountPaid
	}

	updated, err := s.repo.Update(ctx, id, cols)
	if err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			return nil, NewNotFoundError("invoice")
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes an invoice, refusing while transactions still reference it.
// No cascade is performed; callers delete dependent transactions first.
func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetRow(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			return NewNotFoundError("invoice")
		}
		return err
	}

	count, err := s.repo.CountTransactions(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return NewConflictError(fmt.Sprintf("cannot delete invoice with %d related transactions; delete transactions first", count))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			return NewNotFoundError("invoice")
		}
		return err
	}
	return nil
}
