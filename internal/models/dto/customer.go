package dto

import (
	"strings"

	"github.com/hongminglow/finance-be/internal/models"
)

type CustomerCreate struct {
	Name    string `json:"name" validate:"required,max=200"`
	Contact string `json:"contact" validate:"max=100"`
	Phone   string `json:"phone" validate:"max=50"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"max=500"`
	Notes   string `json:"notes"`
}

func (c *CustomerCreate) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
}

// CustomerUpdate lists the only customer fields a client may change; the active
// flag is driven by DELETE.
type CustomerUpdate struct {
	Name    *string `json:"name" validate:"omitnil,min=1,max=200"`
	Contact *string `json:"contact" validate:"omitempty,max=100"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,max=500"`
	Notes   *string `json:"notes"`
}

func (u *CustomerUpdate) Normalize() {
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		u.Name = &name
	}
}

func (u CustomerUpdate) ApplyTo(c *models.Customer) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Contact != nil {
		c.Contact = *u.Contact
	}
	if u.Phone != nil {
		c.Phone = *u.Phone
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.Address != nil {
		c.Address = *u.Address
	}
	if u.Notes != nil {
		c.Notes = *u.Notes
	}
}
