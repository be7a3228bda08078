package auth

import (
	"context"
	"errors"

	"github.com/hongminglow/finance-be/internal/models"
	"github.com/hongminglow/finance-be/internal/storage"
)

// UserLookup finds an employee by exact username. A miss is storage.ErrNotFound.
type UserLookup interface {
	FindByUsername(ctx context.Context, username string) (models.Employee, error)
}

// Resolver maps a token subject to a stored employee.
type Resolver struct {
	users UserLookup
}

func NewResolver(users UserLookup) *Resolver {
	return &Resolver{users: users}
}

// Resolve returns the employee named subject. ok is false on a miss, which is
// not an error; err is only set when the lookup itself failed.
func (r *Resolver) Resolve(ctx context.Context, subject string) (models.Employee, bool, error) {
	e, err := r.users.FindByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Employee{}, false, nil
		}
		return models.Employee{}, false, err
	}
	return e, true, nil
}
