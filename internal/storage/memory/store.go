// Package memory is an in-process storage.Store. It enforces the same
// uniqueness and foreign-key rules as the Postgres schema so handlers behave
// identically against either backend.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hongminglow/finance-be/internal/models"
	"github.com/hongminglow/finance-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type Store struct {
	mu        sync.RWMutex
	employees map[string]models.Employee
	customers map[string]models.Customer
	invoices  map[string]models.Invoice
	now       func() time.Time
}

func NewStore() *Store {
	return &Store{
		employees: make(map[string]models.Employee),
		customers: make(map[string]models.Customer),
		invoices:  make(map[string]models.Invoice),
		now:       time.Now,
	}
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() {}

func (s *Store) CreateEmployee(_ context.Context, e models.Employee) (models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if _, ok := s.employees[e.ID]; ok {
		return models.Employee{}, fmt.Errorf("%w: employees_pkey", storage.ErrAlreadyExists)
	}
	for _, existing := range s.employees {
		if existing.Username == e.Username {
			return models.Employee{}, fmt.Errorf("%w: employees_username_key", storage.ErrAlreadyExists)
		}
	}
	if e.Username == "" || e.HashedPassword == "" {
		return models.Employee{}, fmt.Errorf("%w: employees not null", storage.ErrIntegrity)
	}
	e.CreatedAt = s.now()
	e.UpdatedAt = e.CreatedAt
	s.employees[e.ID] = e
	return e, nil
}

func (s *Store) FindByUsername(_ context.Context, username string) (models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.employees {
		if e.Username == username {
			return e, nil
		}
	}
	return models.Employee{}, storage.ErrNotFound
}

func (s *Store) GetEmployee(_ context.Context, id string) (models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[id]
	if !ok {
		return models.Employee{}, storage.ErrNotFound
	}
	return e, nil
}

func (s *Store) ListEmployees(_ context.Context, page storage.Page) ([]models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		return less(all[i].CreatedAt, all[j].CreatedAt, all[i].ID, all[j].ID)
	})
	return window(all, page), nil
}

func (s *Store) UpdateEmployee(_ context.Context, e models.Employee) (models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.employees[e.ID]
	if !ok {
		return models.Employee{}, storage.ErrNotFound
	}
	current.FullName = e.FullName
	current.Email = e.Email
	current.HashedPassword = e.HashedPassword
	current.ACL = e.ACL
	current.Active = e.Active
	current.UpdatedAt = s.now()
	s.employees[e.ID] = current
	return current, nil
}

func (s *Store) CreateCustomer(_ context.Context, c models.Customer) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if _, ok := s.customers[c.ID]; ok {
		return models.Customer{}, fmt.Errorf("%w: customers_pkey", storage.ErrAlreadyExists)
	}
	if s.customerNameTaken(c.Name, c.ID) {
		return models.Customer{}, fmt.Errorf("%w: customers_name_unique_idx", storage.ErrAlreadyExists)
	}
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt
	s.customers[c.ID] = c
	return c, nil
}

func (s *Store) GetCustomer(_ context.Context, id string) (models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return models.Customer{}, storage.ErrNotFound
	}
	return c, nil
}

func (s *Store) FindCustomerByName(_ context.Context, name string) (models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.customers {
		if c.Name == name {
			return c, nil
		}
	}
	return models.Customer{}, storage.ErrNotFound
}

func (s *Store) ListCustomers(_ context.Context, page storage.Page) ([]models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool {
		return less(all[i].CreatedAt, all[j].CreatedAt, all[i].ID, all[j].ID)
	})
	return window(all, page), nil
}

func (s *Store) UpdateCustomer(_ context.Context, c models.Customer) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.customers[c.ID]
	if !ok {
		return models.Customer{}, storage.ErrNotFound
	}
	if s.customerNameTaken(c.Name, c.ID) {
		return models.Customer{}, fmt.Errorf("%w: customers_name_unique_idx", storage.ErrAlreadyExists)
	}
	c.CreatedAt = current.CreatedAt
	c.UpdatedAt = s.now()
	s.customers[c.ID] = c
	return c, nil
}

func (s *Store) CreateInvoice(_ context.Context, inv models.Invoice) (models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if _, ok := s.invoices[inv.ID]; ok {
		return models.Invoice{}, fmt.Errorf("%w: invoices_pkey", storage.ErrAlreadyExists)
	}
	if s.invoiceNumberTaken(inv.Number, inv.ID) {
		return models.Invoice{}, fmt.Errorf("%w: invoices_number_key", storage.ErrAlreadyExists)
	}
	if _, ok := s.customers[inv.CustomerID]; !ok {
		return models.Invoice{}, fmt.Errorf("%w: invoices_customer_id_fkey", storage.ErrIntegrity)
	}
	if inv.AmountCents < 0 {
		return models.Invoice{}, fmt.Errorf("%w: invoices_amount_cents_check", storage.ErrIntegrity)
	}
	inv.CreatedAt = s.now()
	inv.UpdatedAt = inv.CreatedAt
	s.invoices[inv.ID] = inv
	return inv, nil
}

func (s *Store) GetInvoice(_ context.Context, id string) (models.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.invoices[id]
	if !ok {
		return models.Invoice{}, storage.ErrNotFound
	}
	return inv, nil
}

func (s *Store) ListInvoices(_ context.Context, page storage.Page) ([]models.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		all = append(all, inv)
	}
	sort.Slice(all, func(i, j int) bool {
		return less(all[i].CreatedAt, all[j].CreatedAt, all[i].ID, all[j].ID)
	})
	return window(all, page), nil
}

func (s *Store) UpdateInvoice(_ context.Context, inv models.Invoice) (models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.invoices[inv.ID]
	if !ok {
		return models.Invoice{}, storage.ErrNotFound
	}
	if s.invoiceNumberTaken(inv.Number, inv.ID) {
		return models.Invoice{}, fmt.Errorf("%w: invoices_number_key", storage.ErrAlreadyExists)
	}
	if inv.AmountCents < 0 {
		return models.Invoice{}, fmt.Errorf("%w: invoices_amount_cents_check", storage.ErrIntegrity)
	}
	inv.CustomerID = current.CustomerID
	inv.CreatedAt = current.CreatedAt
	inv.UpdatedAt = s.now()
	s.invoices[inv.ID] = inv
	return inv, nil
}

func (s *Store) customerNameTaken(name, exceptID string) bool {
	for id, c := range s.customers {
		if id != exceptID && c.Name == name {
			return true
		}
	}
	return false
}

func (s *Store) invoiceNumberTaken(number, exceptID string) bool {
	for id, inv := range s.invoices {
		if id != exceptID && inv.Number == number {
			return true
		}
	}
	return false
}

func less(a, b time.Time, aID, bID string) bool {
	if a.Equal(b) {
		return aID < bID
	}
	return a.Before(b)
}

func window[T any](all []T, page storage.Page) []T {
	page = page.Normalize()
	if page.Skip >= len(all) {
		return []T{}
	}
	end := page.Skip + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[page.Skip:end]
}
