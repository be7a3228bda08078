package models

import "time"

// Invoice is a sales invoice. Amounts are kept in minor currency units.
// A voided invoice has Active set to false.
type Invoice struct {
	ID          string     `json:"guid"`
	Number      string     `json:"number"`
	CustomerID  string     `json:"customer_guid"`
	AmountCents int64      `json:"amount_cents"`
	Currency    string     `json:"currency"`
	IssueDate   time.Time  `json:"issue_date"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Description string     `json:"description"`
	Active      bool       `json:"active"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
