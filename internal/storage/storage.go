package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/finance-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrIntegrity indicates any other constraint violation (foreign key, not null, check).
var ErrIntegrity = errors.New("integrity constraint violated")

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Page selects a window of a listing.
type Page struct {
	Skip  int
	Limit int
}

// Normalize clamps p to sane bounds.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// EmployeeStore captures persistence operations for employee accounts.
type EmployeeStore interface {
	CreateEmployee(ctx context.Context, e models.Employee) (models.Employee, error)
	FindByUsername(ctx context.Context, username string) (models.Employee, error)
	GetEmployee(ctx context.Context, id string) (models.Employee, error)
	ListEmployees(ctx context.Context, page Page) ([]models.Employee, error)
	UpdateEmployee(ctx context.Context, e models.Employee) (models.Employee, error)
}

// CustomerStore captures persistence operations for customers.
type CustomerStore interface {
	CreateCustomer(ctx context.Context, c models.Customer) (models.Customer, error)
	GetCustomer(ctx context.Context, id string) (models.Customer, error)
	FindCustomerByName(ctx context.Context, name string) (models.Customer, error)
	ListCustomers(ctx context.Context, page Page) ([]models.Customer, error)
	UpdateCustomer(ctx context.Context, c models.Customer) (models.Customer, error)
}

// InvoiceStore captures persistence operations for sales invoices.
type InvoiceStore interface {
	CreateInvoice(ctx context.Context, inv models.Invoice) (models.Invoice, error)
	GetInvoice(ctx context.Context, id string) (models.Invoice, error)
	ListInvoices(ctx context.Context, page Page) ([]models.Invoice, error)
	UpdateInvoice(ctx context.Context, inv models.Invoice) (models.Invoice, error)
}

// Store is everything the HTTP layer needs from persistence.
type Store interface {
	EmployeeStore
	CustomerStore
	InvoiceStore
	Ping(ctx context.Context) error
	Close()
}
