package auth

import (
	"context"
	"fmt"

	"github.com/hongminglow/finance-be/internal/models"
)

// Requirement is how far along the check chain an endpoint needs a caller to get.
type Requirement int

const (
	// RequireAuthenticated: valid token for a stored user.
	RequireAuthenticated Requirement = iota + 1
	// RequireActive additionally demands an active account.
	RequireActive
	// RequireAdmin additionally demands the admin privilege marker.
	RequireAdmin
)

func (r Requirement) String() string {
	switch r {
	case RequireAuthenticated:
		return "authenticated"
	case RequireActive:
		return "active"
	case RequireAdmin:
		return "admin"
	default:
		return fmt.Sprintf("requirement(%d)", int(r))
	}
}

// Verifier turns a bearer token into verified claims.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// Decision is the outcome of one gate evaluation: either Principal is set and
// Reason is nil (authorized), or Reason says why the caller was rejected.
type Decision struct {
	Principal *Principal
	Reason    error
}

func (d Decision) Authorized() bool {
	return d.Reason == nil && d.Principal != nil
}

func authorized(p *Principal) Decision { return Decision{Principal: p} }

func rejected(reason error) Decision { return Decision{Reason: reason} }

// Gate runs the per-request authorization chain. It keeps no state between
// evaluations.
type Gate struct {
	verifier  Verifier
	resolver  *Resolver
	adminRole string
}

func NewGate(verifier Verifier, users UserLookup) *Gate {
	return &Gate{
		verifier:  verifier,
		resolver:  NewResolver(users),
		adminRole: models.RoleAdmin,
	}
}

// Evaluate verifies token and walks the checks up to req. The first failing
// check decides the outcome.
func (g *Gate) Evaluate(ctx context.Context, token string, req Requirement) Decision {
	claims, err := g.verifier.Verify(token)
	if err != nil {
		return rejected(err)
	}

	user, ok, err := g.resolver.Resolve(ctx, claims.Subject)
	if err != nil {
		return rejected(fmt.Errorf("resolve subject: %w", err))
	}
	if !ok {
		return rejected(ErrInvalidCredentials.WithCause(fmt.Errorf("unknown subject %q", claims.Subject)))
	}
	principal := newPrincipal(user)
	if req <= RequireAuthenticated {
		return authorized(principal)
	}

	if !principal.Active {
		return rejected(ErrInactiveUser)
	}
	if req == RequireActive {
		return authorized(principal)
	}

	if principal.ACL != g.adminRole {
		return rejected(ErrForbidden)
	}
	return authorized(principal)
}
