package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/hongminglow/finance-be/internal/apperr"
	"github.com/hongminglow/finance-be/internal/auth"
	"github.com/hongminglow/finance-be/internal/http/respond"
	"github.com/hongminglow/finance-be/internal/models"
	"github.com/hongminglow/finance-be/internal/models/dto"
	"github.com/hongminglow/finance-be/internal/storage"
	"github.com/hongminglow/finance-be/internal/validate"
)

const defaultCurrency = "CNY"

var (
	errInvoiceNotFound    = apperr.NotFound("发票未找到")
	errInvoiceNumberTaken = apperr.Conflict("发票编号已存在")
	errInvoiceAlreadyVoid = apperr.Business(http.StatusBadRequest, "发票已经被作废")
	errInvoiceNotVoid     = apperr.Business(http.StatusBadRequest, "发票未被作废，无需取消")
	errInvoiceSendVoided  = apperr.Business(http.StatusBadRequest, "不能发送已作废的发票")
)

// InvoiceHandler serves the sales-invoice lifecycle for active employees.
type InvoiceHandler struct {
	store storage.InvoiceStore
	v     *validate.Validator
	now   func() time.Time
}

func NewInvoiceHandler(store storage.InvoiceStore, v *validate.Validator) *InvoiceHandler {
	return &InvoiceHandler{store: store, v: v, now: time.Now}
}

func (h *InvoiceHandler) Register(rt *Router) {
	rt.Guarded("GET /sales-invoices", auth.RequireActive, h.handleList)
	rt.Guarded("POST /sales-invoices", auth.RequireActive, h.handleCreate)
	rt.Guarded("GET /sales-invoices/{guid}", auth.RequireActive, h.handleGet)
	rt.Guarded("PUT /sales-invoices/{guid}", auth.RequireActive, h.handleUpdate)
	rt.Guarded("POST /sales-invoices/{guid}/void", auth.RequireActive, h.handleVoid)
	rt.Guarded("POST /sales-invoices/{guid}/unvoid", auth.RequireActive, h.handleUnvoid)
	rt.Guarded("POST /sales-invoices/{guid}/send", auth.RequireActive, h.handleSend)
}

func (h *InvoiceHandler) handleList(w http.ResponseWriter, r *http.Request) error {
	page, err := pageFromQuery(r)
	if err != nil {
		return err
	}
	invoices, err := h.store.ListInvoices(r.Context(), page)
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusOK, invoices)
	return nil
}

// handleCreate stores a new invoice. An unknown customer is left to the
// store's foreign key and answered as an integrity error.
func (h *InvoiceHandler) handleCreate(w http.ResponseWriter, r *http.Request) error {
	var req dto.InvoiceCreate
	if err := bindJSON(h.v, r, &req); err != nil {
		return err
	}
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = defaultCurrency
	}

	created, err := h.store.CreateInvoice(r.Context(), models.Invoice{
		Number:      req.Number,
		CustomerID:  req.CustomerID,
		AmountCents: req.AmountCents,
		Currency:    currency,
		IssueDate:   req.IssueDate,
		DueDate:     req.DueDate,
		Description: req.Description,
		Active:      true,
	})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return errInvoiceNumberTaken.WithCause(err)
	}
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusCreated, created)
	return nil
}

func (h *InvoiceHandler) handleGet(w http.ResponseWriter, r *http.Request) error {
	invoice, err := h.load(r)
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusOK, invoice)
	return nil
}

func (h *InvoiceHandler) handleUpdate(w http.ResponseWriter, r *http.Request) error {
	invoice, err := h.load(r)
	if err != nil {
		return err
	}
	var req dto.InvoiceUpdate
	if err := bindJSON(h.v, r, &req); err != nil {
		return err
	}
	req.ApplyTo(&invoice)
	invoice.Currency = strings.ToUpper(invoice.Currency)

	updated, err := h.save(r, invoice)
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusOK, updated)
	return nil
}

func (h *InvoiceHandler) handleVoid(w http.ResponseWriter, r *http.Request) error {
	invoice, err := h.load(r)
	if err != nil {
		return err
	}
	if !invoice.Active {
		return errInvoiceAlreadyVoid
	}
	invoice.Active = false
	if _, err := h.save(r, invoice); err != nil {
		return err
	}
	respond.NoContent(w)
	return nil
}

func (h *InvoiceHandler) handleUnvoid(w http.ResponseWriter, r *http.Request) error {
	invoice, err := h.load(r)
	if err != nil {
		return err
	}
	if invoice.Active {
		return errInvoiceNotVoid
	}
	invoice.Active = true
	updated, err := h.save(r, invoice)
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusOK, updated)
	return nil
}

func (h *InvoiceHandler) handleSend(w http.ResponseWriter, r *http.Request) error {
	invoice, err := h.load(r)
	if err != nil {
		return err
	}
	if !invoice.Active {
		return errInvoiceSendVoided
	}
	sentAt := h.now().UTC()
	invoice.SentAt = &sentAt
	updated, err := h.save(r, invoice)
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusOK, updated)
	return nil
}

func (h *InvoiceHandler) load(r *http.Request) (models.Invoice, error) {
	invoice, err := h.store.GetInvoice(r.Context(), r.PathValue("guid"))
	if errors.Is(err, storage.ErrNotFound) {
		return models.Invoice{}, errInvoiceNotFound.WithCause(err)
	}
	return invoice, err
}

func (h *InvoiceHandler) save(r *http.Request, invoice models.Invoice) (models.Invoice, error) {
	updated, err := h.store.UpdateInvoice(r.Context(), invoice)
	switch {
	case errors.Is(err, storage.ErrAlreadyExists):
		return models.Invoice{}, errInvoiceNumberTaken.WithCause(err)
	case errors.Is(err, storage.ErrNotFound):
		return models.Invoice{}, errInvoiceNotFound.WithCause(err)
	}
	return updated, err
}
