package handlers

import (
	"context"
	"strconv"

	"github.com/camilogv/billing-gateway/internal/model"
	xhttp "github.com/camilogv/billing-gateway/pkg/http"
	"github.com/fasthttp/router"
)

type CustomerService interface {
	Create(ctx context.Context, p model.CustomerCreateRequest) (*model.Customer, error)
	Get(ctx context.Context, id int64) (*model.Customer, error)
	List(ctx context.Context) ([]*model.Customer, error)
	Update(ctx context.Context, id int64, p model.CustomerUpdateRequest) (*model.Customer, error)
	Delete(ctx context.Context, id int64) error
}

type CustomerHandler struct {
	svc CustomerService
}

func RegisterCustomerRoutes(e *router.Group, h *CustomerHandler) {
	e.GET("/customers", h.ListCustomers)
	e.GET("/customers/{id}", h.GetCustomer)
	e.POST("/customers", h.CreateCustomer)
	e.PUT("/customers/{id}", h.UpdateCustomer)
	e.DELETE("/customers/{id}", h.DeleteCustomer)
}

func NewCustomerHandler(svc CustomerService) *CustomerHandler {
	return &CustomerHandler{
		svc: svc,
	}
}

type customerRequest struct {
	Name    *string `json:"customer_name"`
	Address *string `json:"customer_address"`
	Phone   *string `json:"customer_phone"`
	Email   *string `json:"customer_email"`
}

func (h *CustomerHandler) ListCustomers(ctx *xhttp.RequestCtx) {
	customers, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(ctx, err, "failed to fetch customers")
		return
	}
	writeList(ctx, customers, len(customers))
}

func (h *CustomerHandler) GetCustomer(ctx *xhttp.RequestCtx) {
	id, err := customerID(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid customer id")
		return
	}

	customer, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err, "failed to fetch customer")
		return
	}
	writeData(ctx, xhttp.StatusOK, customer)
}

func (h *CustomerHandler) CreateCustomer(ctx *xhttp.RequestCtx) {
	var req customerRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	p := model.CustomerCreateRequest{}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.Email != nil {
		p.Email = *req.Email
	}

	customer, err := h.svc.Create(ctx, p)
	if err != nil {
		writeServiceError(ctx, err, "failed to create customer")
		return
	}
	writeData(ctx, xhttp.StatusCreated, customer)
}

func (h *CustomerHandler) UpdateCustomer(ctx *xhttp.RequestCtx) {
	id, err := customerID(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid customer id")
		return
	}

	var req customerRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	customer, err := h.svc.Update(ctx, id, model.CustomerUpdateRequest{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil {
		writeServiceError(ctx, err, "failed to update customer")
		return
	}
	writeMessage(ctx, xhttp.StatusOK, "Customer updated successfully", customer)
}

func (h *CustomerHandler) DeleteCustomer(ctx *xhttp.RequestCtx) {
	id, err := customerID(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid customer id")
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		writeServiceError(ctx, err, "failed to delete customer")
		return
	}
	writeMessage(ctx, xhttp.StatusOK, "Customer deleted successfully", nil)
}

func customerID(ctx *xhttp.RequestCtx) (int64, error) {
	return strconv.ParseInt(param(ctx, "id"), 10, 64)
}
