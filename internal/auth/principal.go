package auth

import (
	"context"

	"github.com/hongminglow/finance-be/internal/models"
)

// Principal is the authenticated caller for the duration of one request.
type Principal struct {
	ID       string
	Username string
	ACL      string
	Active   bool

	employee models.Employee
}

func newPrincipal(e models.Employee) *Principal {
	return &Principal{
		ID:       e.ID,
		Username: e.Username,
		ACL:      e.ACL,
		Active:   e.Active,
		employee: e,
	}
}

// Employee returns the stored record the principal was resolved from.
func (p *Principal) Employee() models.Employee {
	return p.employee
}

type contextKey string

const principalContextKey contextKey = "finance_principal"

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(*Principal)
	return p, ok && p != nil
}
