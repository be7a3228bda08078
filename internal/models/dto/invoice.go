package dto

import (
	"time"

	"github.com/hongminglow/finance-be/internal/models"
)

type InvoiceCreate struct {
	Number      string     `json:"number" validate:"required,max=64"`
	CustomerID  string     `json:"customer_guid" validate:"required,uuid"`
	AmountCents int64      `json:"amount_cents" validate:"gte=0"`
	Currency    string     `json:"currency" validate:"omitempty,len=3"`
	IssueDate   time.Time  `json:"issue_date" validate:"required"`
	DueDate     *time.Time `json:"due_date"`
	Description string     `json:"description" validate:"max=1000"`
}

// InvoiceUpdate lists the only invoice fields a client may change. Voiding and
// sending have their own endpoints.
type InvoiceUpdate struct {
	Number      *string    `json:"number" validate:"omitempty,min=1,max=64"`
	AmountCents *int64     `json:"amount_cents" validate:"omitempty,gte=0"`
	Currency    *string    `json:"currency" validate:"omitempty,len=3"`
	IssueDate   *time.Time `json:"issue_date"`
	DueDate     *time.Time `json:"due_date"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
}

func (u InvoiceUpdate) ApplyTo(inv *models.Invoice) {
	if u.Number != nil {
		inv.Number = *u.Number
	}
	if u.AmountCents != nil {
		inv.AmountCents = *u.AmountCents
	}
	if u.Currency != nil {
		inv.Currency = *u.Currency
	}
	if u.IssueDate != nil {
		inv.IssueDate = *u.IssueDate
	}
	if u.DueDate != nil {
		inv.DueDate = u.DueDate
	}
	if u.Description != nil {
		inv.Description = *u.Description
	}
}
