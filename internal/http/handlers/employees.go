package handlers

import (
	"errors"
	"fmt"
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
	errEmployeeNotFound    = apperr.NotFound("员工未找到")
	errEmployeeExists      = apperr.Conflict("用户名或ID已存在")
	errEmployeeUpdateClash = apperr.Conflict("更新失败，数据冲突（如用户名已被占用）。")
)

// EmployeeHandler manages employee accounts; every route requires an admin.
type EmployeeHandler struct {
	store storage.EmployeeStore
	v     *validate.Validator
}

func NewEmployeeHandler(store storage.EmployeeStore, v *validate.Validator) *EmployeeHandler {
	return &EmployeeHandler{store: store, v: v}
}

func (h *EmployeeHandler) Register(rt *Router) {
	rt.Guarded("GET /employees", auth.RequireAdmin, h.handleList)
	rt.Guarded("POST /employees", auth.RequireAdmin, h.handleCreate)
	rt.Guarded("GET /employees/{guid}", auth.RequireAdmin, h.handleGet)
	rt.Guarded("PUT /employees/{guid}", auth.RequireAdmin, h.handleUpdate)
}

func (h *EmployeeHandler) handleList(w http.ResponseWriter, r *http.Request) error {
	page, err := pageFromQuery(r)
	if err != nil {
		return err
	}
	employees, err := h.store.ListEmployees(r.Context(), page)
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusOK, employees)
	return nil
}

// handleCreate relies on the store's unique constraint rather than a lookup, so
// a duplicate username fails inside the insert transaction and is rolled back.
func (h *EmployeeHandler) handleCreate(w http.ResponseWriter, r *http.Request) error {
	var req dto.EmployeeCreate
	if err := bindJSON(h.v, r, &req); err != nil {
		return err
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	acl := req.ACL
	if acl == "" {
		acl = models.RoleStaff
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	created, err := h.store.CreateEmployee(r.Context(), models.Employee{
		Username:       req.Username,
		FullName:       req.FullName,
		Email:          req.Email,
		HashedPassword: hash,
		ACL:            acl,
		Active:         active,
	})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return errEmployeeExists.WithCause(err)
	}
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusCreated, created)
	return nil
}

func (h *EmployeeHandler) handleGet(w http.ResponseWriter, r *http.Request) error {
	employee, err := h.load(r)
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusOK, employee)
	return nil
}

func (h *EmployeeHandler) handleUpdate(w http.ResponseWriter, r *http.Request) error {
	employee, err := h.load(r)
	if err != nil {
		return err
	}
	var req dto.EmployeeUpdate
	if err := bindJSON(h.v, r, &req); err != nil {
		return err
	}
	req.ApplyTo(&employee)
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		employee.HashedPassword = hash
	}

	updated, err := h.store.UpdateEmployee(r.Context(), employee)
	switch {
	case errors.Is(err, storage.ErrAlreadyExists):
		return errEmployeeUpdateClash.WithCause(err)
	case errors.Is(err, storage.ErrNotFound):
		return errEmployeeNotFound.WithCause(err)
	case err != nil:
		return err
	}
	respond.JSON(w, http.StatusOK, updated)
	return nil
}

func (h *EmployeeHandler) load(r *http.Request) (models.Employee, error) {
	employee, err := h.store.GetEmployee(r.Context(), r.PathValue("guid"))
	if errors.Is(err, storage.ErrNotFound) {
		return models.Employee{}, errEmployeeNotFound.WithCause(err)
	}
	return employee, err
}
