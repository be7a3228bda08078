package models

import "time"

// Employee is a staff account allowed to sign in to the API.
type Employee struct {
	ID             string    `json:"guid"`
	Username       string    `json:"username"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	ACL            string    `json:"acl"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
