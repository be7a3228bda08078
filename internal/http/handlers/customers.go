package handlers

import (
	"errors"
	"net/http"

	"github.com/hongminglow/finance-be/internal/apperr"
	"github.com/hongminglow/finance-be/internal/auth"
	"github.com/hongminglow/finance-be/internal/http/respond"
	"github.com/hongminglow/finance-be/internal/models"
	"github.com/hongminglow/finance-be/internal/models/dto"
	"github.com/hongminglow/finance-be/internal/storage"
	"github.com/hongminglow/finance-be/internal/validate"
)

var (
	errCustomerNotFound    = apperr.NotFound("客户未找到")
	errCustomerNameTaken   = apperr.Conflict("客户名称已存在")
	errCustomerRenameTaken = apperr.Conflict("新的客户名称已被其他客户使用")
	errCustomerDisabled    = apperr.Business(http.StatusBadRequest, "客户已经被禁用")
)

// CustomerHandler serves customer CRUD for active employees.
type CustomerHandler struct {
	store storage.CustomerStore
	v     *validate.Validator
}

func NewCustomerHandler(store storage.CustomerStore, v *validate.Validator) *CustomerHandler {
	return &CustomerHandler{store: store, v: v}
}

func (h *CustomerHandler) Register(rt *Router) {
	rt.Guarded("GET /customers", auth.RequireActive, h.handleList)
	rt.Guarded("POST /customers", auth.RequireActive, h.handleCreate)
	rt.Guarded("GET /customers/{guid}", auth.RequireActive, h.handleGet)
	rt.Guarded("PUT /customers/{guid}", auth.RequireActive, h.handleUpdate)
	rt.Guarded("DELETE /customers/{guid}", auth.RequireActive, h.handleDelete)
}

func (h *CustomerHandler) handleList(w http.ResponseWriter, r *http.Request) error {
	page, err := pageFromQuery(r)
	if err != nil {
		return err
	}
	customers, err := h.store.ListCustomers(r.Context(), page)
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusOK, customers)
	return nil
}

func (h *CustomerHandler) handleCreate(w http.ResponseWriter, r *http.Request) error {
	var req dto.CustomerCreate
	if err := bindJSON(h.v, r, &req); err != nil {
		return err
	}

	_, err := h.store.FindCustomerByName(r.Context(), req.Name)
	switch {
	case err == nil:
		return errCustomerNameTaken
	case !errors.Is(err, storage.ErrNotFound):
		return err
	}

	created, err := h.store.CreateCustomer(r.Context(), models.Customer{
		Name:    req.Name,
		Contact: req.Contact,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Notes:   req.Notes,
		Active:  true,
	})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return errCustomerNameTaken.WithCause(err)
	}
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusCreated, created)
	return nil
}

func (h *CustomerHandler) handleGet(w http.ResponseWriter, r *http.Request) error {
	customer, err := h.load(r)
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusOK, customer)
	return nil
}

func (h *CustomerHandler) handleUpdate(w http.ResponseWriter, r *http.Request) error {
	customer, err := h.load(r)
	if err != nil {
		return err
	}
	var req dto.CustomerUpdate
	if err := bindJSON(h.v, r, &req); err != nil {
		return err
	}

	if req.Name != nil && *req.Name != customer.Name {
		_, err := h.store.FindCustomerByName(r.Context(), *req.Name)
		switch {
		case err == nil:
			return errCustomerRenameTaken
		case !errors.Is(err, storage.ErrNotFound):
			return err
		}
	}

	req.ApplyTo(&customer)
	updated, err := h.store.UpdateCustomer(r.Context(), customer)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return errCustomerRenameTaken.WithCause(err)
	}
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusOK, updated)
	return nil
}

// handleDelete disables the customer; rows are kept for invoice history.
func (h *CustomerHandler) handleDelete(w http.ResponseWriter, r *http.Request) error {
	customer, err := h.load(r)
	if err != nil {
		return err
	}
	if !customer.Active {
		return errCustomerDisabled
	}
	customer.Active = false
	if _, err := h.store.UpdateCustomer(r.Context(), customer); err != nil {
		return err
	}
	respond.NoContent(w)
	return nil
}

func (h *CustomerHandler) load(r *http.Request) (models.Customer, error) {
	customer, err := h.store.GetCustomer(r.Context(), r.PathValue("guid"))
	if errors.Is(err, storage.ErrNotFound) {
		return models.Customer{}, errCustomerNotFound.WithCause(err)
	}
	return customer, err
}
