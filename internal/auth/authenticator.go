package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// dummyHash is compared against when the username is unknown so a miss costs
// the same bcrypt work as a wrong password.
var dummyHash = sync.OnceValue(func() string {
	hash, _ := HashPassword("finance-backend-dummy-password")
	return hash
})

// Authenticator checks username/password pairs and issues access tokens.
type Authenticator struct {
	resolver *Resolver
	tokens   *TokenManager
}

func NewAuthenticator(users UserLookup, tokens *TokenManager) *Authenticator {
	return &Authenticator{resolver: NewResolver(users), tokens: tokens}
}

// Login returns a signed token for valid, active credentials. Unknown users,
// inactive users and wrong passwords all fail with ErrInvalidCredentials.
func (a *Authenticator) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	user, ok, err := a.resolver.Resolve(ctx, username)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("lookup %q: %w", username, err)
	}
	if !ok {
		CheckPassword(dummyHash(), password)
		return "", time.Time{}, ErrInvalidCredentials.WithCause(errors.New("unknown username"))
	}
	if !CheckPassword(user.HashedPassword, password) {
		return "", time.Time{}, ErrInvalidCredentials.WithCause(errors.New("password mismatch"))
	}
	if !user.Active {
		return "", time.Time{}, ErrInvalidCredentials.WithCause(errors.New("inactive account"))
	}
	return a.tokens.Generate(user.Username)
}
