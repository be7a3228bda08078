package seed

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/finance-be/internal/auth"
	"github.com/hongminglow/finance-be/internal/models"
	"github.com/hongminglow/finance-be/internal/storage"
	"github.com/hongminglow/finance-be/internal/storage/memory"
)

const seedYAML = `
employees:
  - username: root
    password: root-password
    full_name: Root Admin
    acl: admin
  - username: alice
    password: alice-password
  - username: bob
    password: bob-password
    active: false
  - username: ""
    password: ignored
customers:
  - name: Acme
    contact: Wile E.
  - name: "  "
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFromReader_CreatesRecords(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	res, err := FromReader(ctx, store, strings.NewReader(seedYAML), discardLogger())
	require.NoError(t, err)
	assert.Equal(t, Result{Employees: 3, Customers: 1}, res)

	root, err := store.FindByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, root.ACL)
	assert.True(t, root.Active)
	assert.True(t, auth.CheckPassword(root.HashedPassword, "root-password"))

	alice, err := store.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, alice.ACL)

	bob, err := store.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, bob.Active)

	acme, err := store.FindCustomerByName(ctx, "Acme")
	require.NoError(t, err)
	assert.True(t, acme.Active)
	assert.Equal(t, "Wile E.", acme.Contact)
}

func TestFromReader_SkipsExisting(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	_, err := FromReader(ctx, store, strings.NewReader(seedYAML), discardLogger())
	require.NoError(t, err)

	res, err := FromReader(ctx, store, strings.NewReader(seedYAML), discardLogger())
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)

	all, err := store.ListEmployees(ctx, storage.Page{}.Normalize())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFromReader_RejectsUnknownACL(t *testing.T) {
	doc := "employees:\n  - username: eve\n    password: eve-password\n    acl: superuser\n"
	_, err := FromReader(context.Background(), memory.NewStore(), strings.NewReader(doc), discardLogger())
	assert.ErrorContains(t, err, "unknown acl")
}

func TestFromReader_EmptyDocument(t *testing.T) {
	res, err := FromReader(context.Background(), memory.NewStore(), strings.NewReader(""), discardLogger())
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	res, err := FromFile(context.Background(), memory.NewStore(), path, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Employees)

	_, err = FromFile(context.Background(), memory.NewStore(), filepath.Join(t.TempDir(), "missing.yaml"), discardLogger())
	assert.Error(t, err)
}
