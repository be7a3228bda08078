package dto

import (
	"strings"

	"github.com/hongminglow/finance-be/internal/models"
)

type EmployeeCreate struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,bcryptlen"`
	FullName string `json:"full_name" validate:"max=128"`
	Email    string `json:"email" validate:"omitempty,email"`
	ACL      string `json:"acl" validate:"omitempty,oneof=admin staff"`
	Active   *bool  `json:"active"`
}

// Normalize trims the username so length rules see what will be stored.
func (c *EmployeeCreate) Normalize() {
	c.Username = strings.TrimSpace(c.Username)
}

// EmployeeUpdate lists the only employee fields a client may change. Password
// is hashed by the caller and is not copied by ApplyTo.
type EmployeeUpdate struct {
	FullName *string `json:"full_name" validate:"omitempty,max=128"`
	Email    *string `json:"email" validate:"omitempty,email"`
	ACL      *string `json:"acl" validate:"omitempty,oneof=admin staff"`
	Active   *bool   `json:"active"`
	Password *string `json:"password" validate:"omitnil,min=8,bcryptlen"`
}

func (u EmployeeUpdate) ApplyTo(e *models.Employee) {
	if u.FullName != nil {
		e.FullName = *u.FullName
	}
	if u.Email != nil {
		e.Email = *u.Email
	}
	if u.ACL != nil {
		e.ACL = *u.ACL
	}
	if u.Active != nil {
		e.Active = *u.Active
	}
}
