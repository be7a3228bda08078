package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/finance-be/internal/models"
	"github.com/hongminglow/finance-be/internal/storage"
)

const invoiceColumns = `id, number, customer_id, amount_cents, currency, issue_date, due_date, description, active, sent_at, created_at, updated_at`

// CreateInvoice inserts a new invoice. An unknown customer trips the foreign key
// and comes back as storage.ErrIntegrity.
func (s *Store) CreateInvoice(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO invoices (id, number, customer_id, amount_cents, currency, issue_date, due_date, description, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + invoiceColumns

	var created models.Invoice
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		created, err = scanInvoice(tx.QueryRow(ctx, query,
			inv.ID, inv.Number, inv.CustomerID, inv.AmountCents, inv.Currency,
			inv.IssueDate, inv.DueDate, inv.Description, inv.Active))
		return err
	})
	if err != nil {
		return models.Invoice{}, mapError(err)
	}
	return created, nil
}

// GetInvoice fetches an invoice by id.
func (s *Store) GetInvoice(ctx context.Context, id string) (models.Invoice, error) {
	const query = `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(s.pool.QueryRow(ctx, query, id))
	return inv, mapError(err)
}

// ListInvoices returns a page of invoices ordered by creation time.
func (s *Store) ListInvoices(ctx context.Context, page storage.Page) ([]models.Invoice, error) {
	page = page.Normalize()
	const query = `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY created_at, id OFFSET $1 LIMIT $2`
	rows, err := s.pool.Query(ctx, query, page.Skip, page.Limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := make([]models.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, mapError(err)
		}
		out = append(out, inv)
	}
	return out, mapError(rows.Err())
}

// UpdateInvoice writes every mutable column of inv.
func (s *Store) UpdateInvoice(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	const query = `
		UPDATE invoices
		SET number = $2, amount_cents = $3, currency = $4, issue_date = $5, due_date = $6,
			description = $7, active = $8, sent_at = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + invoiceColumns

	var updated models.Invoice
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		updated, err = scanInvoice(tx.QueryRow(ctx, query,
			inv.ID, inv.Number, inv.AmountCents, inv.Currency, inv.IssueDate, inv.DueDate,
			inv.Description, inv.Active, inv.SentAt))
		return err
	})
	if err != nil {
		return models.Invoice{}, mapError(err)
	}
	return updated, nil
}

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var inv models.Invoice
	if err := row.Scan(&inv.ID, &inv.Number, &inv.CustomerID, &inv.AmountCents, &inv.Currency,
		&inv.IssueDate, &inv.DueDate, &inv.Description, &inv.Active, &inv.SentAt,
		&inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}
