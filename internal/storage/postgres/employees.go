package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/finance-be/internal/models"
	"github.com/hongminglow/finance-be/internal/storage"
)

const employeeColumns = `id, username, full_name, email, hashed_password, acl, active, created_at, updated_at`

// CreateEmployee inserts a new employee inside a transaction; a constraint
// failure rolls it back and surfaces as a storage sentinel.
func (s *Store) CreateEmployee(ctx context.Context, e models.Employee) (models.Employee, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO employees (id, username, full_name, email, hashed_password, acl, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + employeeColumns

	var created models.Employee
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, query, e.ID, e.Username, e.FullName, e.Email, e.HashedPassword, e.ACL, e.Active)
		var err error
		created, err = scanEmployee(row)
		return err
	})
	if err != nil {
		return models.Employee{}, mapError(err)
	}
	return created, nil
}

// FindByUsername fetches an employee by exact username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE username = $1`
	e, err := scanEmployee(s.pool.QueryRow(ctx, query, username))
	return e, mapError(err)
}

// GetEmployee fetches an employee by id.
func (s *Store) GetEmployee(ctx context.Context, id string) (models.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	e, err := scanEmployee(s.pool.QueryRow(ctx, query, id))
	return e, mapError(err)
}

// ListEmployees returns a page of employees ordered by creation time.
func (s *Store) ListEmployees(ctx context.Context, page storage.Page) ([]models.Employee, error) {
	page = page.Normalize()
	const query = `SELECT ` + employeeColumns + ` FROM employees ORDER BY created_at, id OFFSET $1 LIMIT $2`
	rows, err := s.pool.Query(ctx, query, page.Skip, page.Limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := make([]models.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, mapError(err)
		}
		out = append(out, e)
	}
	return out, mapError(rows.Err())
}

// UpdateEmployee writes every mutable column of e.
func (s *Store) UpdateEmployee(ctx context.Context, e models.Employee) (models.Employee, error) {
	const query = `
		UPDATE employees
		SET full_name = $2, email = $3, hashed_password = $4, acl = $5, active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employeeColumns

	var updated models.Employee
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		updated, err = scanEmployee(tx.QueryRow(ctx, query, e.ID, e.FullName, e.Email, e.HashedPassword, e.ACL, e.Active))
		return err
	})
	if err != nil {
		return models.Employee{}, mapError(err)
	}
	return updated, nil
}

func scanEmployee(row pgx.Row) (models.Employee, error) {
	var e models.Employee
	if err := row.Scan(&e.ID, &e.Username, &e.FullName, &e.Email, &e.HashedPassword, &e.ACL, &e.Active, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return models.Employee{}, err
	}
	return e, nil
}
