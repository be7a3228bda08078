package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/finance-be/internal/models"
	"github.com/hongminglow/finance-be/internal/storage/memory"
)

func seedUsers(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	users := []models.Employee{
		{Username: "alice", HashedPassword: "h", ACL: models.RoleStaff, Active: true},
		{Username: "bob", HashedPassword: "h", ACL: models.RoleStaff, Active: false},
		{Username: "root", HashedPassword: "h", ACL: models.RoleAdmin, Active: true},
		{Username: "retired", HashedPassword: "h", ACL: models.RoleAdmin, Active: false},
	}
	for _, u := range users {
		_, err := store.CreateEmployee(context.Background(), u)
		require.NoError(t, err)
	}
	return store
}

func TestGate_Evaluate(t *testing.T) {
	tokens := newTestTokens(t)
	gate := NewGate(tokens, seedUsers(t))

	tests := []struct {
		user string
		req  Requirement
		want error
	}{
		{user: "alice", req: RequireAuthenticated},
		{user: "alice", req: RequireActive},
		{user: "alice", req: RequireAdmin, want: ErrForbidden},
		{user: "bob", req: RequireAuthenticated},
		{user: "bob", req: RequireActive, want: ErrInactiveUser},
		{user: "bob", req: RequireAdmin, want: ErrInactiveUser},
		{user: "root", req: RequireAdmin},
		{user: "retired", req: RequireAdmin, want: ErrInactiveUser},
		{user: "ghost", req: RequireAuthenticated, want: ErrInvalidCredentials},
		{user: "ghost", req: RequireAdmin, want: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.user+"/"+tt.req.String(), func(t *testing.T) {
			token, _, err := tokens.Generate(tt.user)
			require.NoError(t, err)

			d := gate.Evaluate(context.Background(), token, tt.req)
			if tt.want == nil {
				require.True(t, d.Authorized(), "unexpected rejection: %v", d.Reason)
				assert.Equal(t, tt.user, d.Principal.Username)
				assert.Equal(t, tt.user, d.Principal.Employee().Username)
				return
			}
			assert.False(t, d.Authorized())
			assert.Nil(t, d.Principal)
			assert.ErrorIs(t, d.Reason, tt.want)
		})
	}
}

func TestGate_UnknownUserMatchesTamperedToken(t *testing.T) {
	tokens := newTestTokens(t)
	gate := NewGate(tokens, seedUsers(t))

	ghost, _, err := tokens.Generate("ghost")
	require.NoError(t, err)
	valid, _, err := tokens.Generate("alice")
	require.NoError(t, err)
	root, _, err := tokens.Generate("root")
	require.NoError(t, err)
	// alice's signature over root's payload
	parts := strings.Split(valid, ".")
	parts[1] = strings.Split(root, ".")[1]
	tampered := strings.Join(parts, ".")

	unknown := gate.Evaluate(context.Background(), ghost, RequireActive)
	forged := gate.Evaluate(context.Background(), tampered, RequireActive)

	assert.ErrorIs(t, unknown.Reason, ErrInvalidCredentials)
	assert.ErrorIs(t, forged.Reason, ErrInvalidCredentials)
}

func TestGate_IsIdempotent(t *testing.T) {
	tokens := newTestTokens(t)
	gate := NewGate(tokens, seedUsers(t))

	for _, user := range []string{"alice", "bob", "root"} {
		token, _, err := tokens.Generate(user)
		require.NoError(t, err)

		first := gate.Evaluate(context.Background(), token, RequireAdmin)
		second := gate.Evaluate(context.Background(), token, RequireAdmin)
		assert.Equal(t, first.Authorized(), second.Authorized(), user)
		assert.Equal(t, first.Reason, second.Reason, user)
	}
}

type failingLookup struct{ err error }

func (f failingLookup) FindByUsername(context.Context, string) (models.Employee, error) {
	return models.Employee{}, f.err
}

func TestGate_LookupFailureIsNotCredentialFailure(t *testing.T) {
	tokens := newTestTokens(t)
	boom := errors.New("connection refused")
	gate := NewGate(tokens, failingLookup{err: boom})

	token, _, err := tokens.Generate("alice")
	require.NoError(t, err)

	d := gate.Evaluate(context.Background(), token, RequireAuthenticated)
	assert.False(t, d.Authorized())
	assert.ErrorIs(t, d.Reason, boom)
	assert.NotErrorIs(t, d.Reason, ErrInvalidCredentials)
}

func TestPrincipalContext(t *testing.T) {
	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)

	p := newPrincipal(models.Employee{ID: "1", Username: "alice", ACL: models.RoleStaff, Active: true})
	got, ok := PrincipalFromContext(WithPrincipal(context.Background(), p))
	require.True(t, ok)
	assert.Same(t, p, got)
}
