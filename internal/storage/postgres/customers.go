package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/finance-be/internal/models"
	"github.com/hongminglow/finance-be/internal/storage"
)

const customerColumns = `id, name, contact, phone, email, address, notes, active, created_at, updated_at`

// CreateCustomer inserts a new customer.
func (s *Store) CreateCustomer(ctx context.Context, c models.Customer) (models.Customer, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO customers (id, name, contact, phone, email, address, notes, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + customerColumns

	var created models.Customer
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		created, err = scanCustomer(tx.QueryRow(ctx, query, c.ID, c.Name, c.Contact, c.Phone, c.Email, c.Address, c.Notes, c.Active))
		return err
	})
	if err != nil {
		return models.Customer{}, mapError(err)
	}
	return created, nil
}

// GetCustomer fetches a customer by id.
func (s *Store) GetCustomer(ctx context.Context, id string) (models.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(s.pool.QueryRow(ctx, query, id))
	return c, mapError(err)
}

// FindCustomerByName fetches a customer by exact name.
func (s *Store) FindCustomerByName(ctx context.Context, name string) (models.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE name = $1`
	c, err := scanCustomer(s.pool.QueryRow(ctx, query, name))
	return c, mapError(err)
}

// ListCustomers returns a page of customers ordered by creation time.
func (s *Store) ListCustomers(ctx context.Context, page storage.Page) ([]models.Customer, error) {
	page = page.Normalize()
	const query = `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at, id OFFSET $1 LIMIT $2`
	rows, err := s.pool.Query(ctx, query, page.Skip, page.Limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := make([]models.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, mapError(err)
		}
		out = append(out, c)
	}
	return out, mapError(rows.Err())
}

// UpdateCustomer writes every mutable column of c.
func (s *Store) UpdateCustomer(ctx context.Context, c models.Customer) (models.Customer, error) {
	const query = `
		UPDATE customers
		SET name = $2, contact = $3, phone = $4, email = $5, address = $6, notes = $7, active = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + customerColumns

	var updated models.Customer
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		updated, err = scanCustomer(tx.QueryRow(ctx, query, c.ID, c.Name, c.Contact, c.Phone, c.Email, c.Address, c.Notes, c.Active))
		return err
	})
	if err != nil {
		return models.Customer{}, mapError(err)
	}
	return updated, nil
}

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var c models.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Contact, &c.Phone, &c.Email, &c.Address, &c.Notes, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return models.Customer{}, err
	}
	return c, nil
}
