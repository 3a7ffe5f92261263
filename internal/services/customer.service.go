package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/camilogv/billing-gateway/internal/model"
	"github.com/camilogv/billing-gateway/internal/repository"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) (*model.Customer, error)
	Get(ctx context.Context, id int64) (*model.Customer, error)
	List(ctx context.Context) ([]*model.Customer, error)
	Update(ctx context.Context, id int64, cols map[string]any) (*model.Customer, error)
	Delete(ctx context.Context, id int64) error
	CountInvoices(ctx context.Context, id int64) (int64, error)
}

type CustomerService struct {
	repo CustomerRepository
}

func NewCustomerService(repo CustomerRepository) *CustomerService {
	return &CustomerService{
		repo: repo,
	}
}

// Create persists a customer. All attributes are free text; no validation
// beyond the column schema applies.
func (s *CustomerService) Create(ctx context.Context, p model.CustomerCreateRequest) (*model.Customer, error) {
	c := &model.Customer{
		Name:    p.Name,
		Address: p.Address,
		Phone:   p.Phone,
		Email:   p.Email,
	}
	return s.repo.Create(ctx, c)
}

func (s *CustomerService) Get(ctx context.Context, id int64) (*model.Customer, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, NewNotFoundError("customer")
		}
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) List(ctx context.Context) ([]*model.Customer, error) {
	return s.repo.List(ctx)
}

func (s *CustomerService) Update(ctx context.Context, id int64, p model.CustomerUpdateRequest) (*model.Customer, error) {
	if p.Empty() {
		return nil, NewValidationError("no fields to update")
	}

	cols := map[string]any{}
	if p.Name != nil {
		cols["customer_name"] = *p.Name
	}
	if p.Address != nil {
		cols["customer_address"] = *p.Address
	}
	if p.Phone != nil {
		cols["customer_phone"] = *p.Phone
	}
	if p.Email != nil {
		cols["customer_email"] = *p.Email
	}

	updated, err := s.repo.Update(ctx, id, cols)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, NewNotFoundError("customer")
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a customer. It refuses while invoices still reference the
// customer, mirroring the invoice/transaction deletion order.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	count, err := s.repo.CountInvoices(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return NewConflictError(fmt.Sprintf("cannot delete customer with %d related invoices; delete invoices first", count))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return NewNotFoundError("customer")
		}
		return err
	}
	return nil
}
