// Package seed loads bootstrap employees and customers from a YAML file so a
// fresh database has at least one administrator to log in with.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hongminglow/finance-be/internal/auth"
	"github.com/hongminglow/finance-be/internal/models"
	"github.com/hongminglow/finance-be/internal/storage"
)

// Store is the subset of persistence the seeder writes to.
type Store interface {
	storage.EmployeeStore
	storage.CustomerStore
}

type file struct {
	Employees []struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		FullName string `yaml:"full_name"`
		Email    string `yaml:"email"`
		ACL      string `yaml:"acl"`
		Active   *bool  `yaml:"active"`
	} `yaml:"employees"`
	Customers []struct {
		Name    string `yaml:"name"`
		Contact string `yaml:"contact"`
		Phone   string `yaml:"phone"`
		Email   string `yaml:"email"`
		Address string `yaml:"address"`
		Notes   string `yaml:"notes"`
	} `yaml:"customers"`
}

// Result counts records created by a seeding run.
type Result struct {
	Employees int
	Customers int
}

func FromFile(ctx context.Context, store Store, path string, logger *slog.Logger) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return FromReader(ctx, store, f, logger)
}

// FromReader creates every listed record that does not exist yet. Existing
// usernames and customer names are left untouched, so reseeding is harmless.
func FromReader(ctx context.Context, store Store, r io.Reader, logger *slog.Logger) (Result, error) {
	var sf file
	if err := yaml.NewDecoder(r).Decode(&sf); err != nil && !errors.Is(err, io.EOF) {
		return Result{}, fmt.Errorf("decode seed file: %w", err)
	}

	var res Result
	for _, e := range sf.Employees {
		username := strings.TrimSpace(e.Username)
		if username == "" || e.Password == "" {
			continue
		}
		acl := e.ACL
		if acl == "" {
			acl = models.RoleStaff
		}
		if !models.ValidRole(acl) {
			return res, fmt.Errorf("seed employee %q: unknown acl %q", username, acl)
		}
		if _, err := store.FindByUsername(ctx, username); err == nil {
			continue
		} else if !errors.Is(err, storage.ErrNotFound) {
			return res, fmt.Errorf("seed employee %q: %w", username, err)
		}

		hash, err := auth.HashPassword(e.Password)
		if err != nil {
			return res, fmt.Errorf("seed employee %q: %w", username, err)
		}
		active := true
		if e.Active != nil {
			active = *e.Active
		}
		if _, err := store.CreateEmployee(ctx, models.Employee{
			Username:       username,
			FullName:       e.FullName,
			Email:          e.Email,
			HashedPassword: hash,
			ACL:            acl,
			Active:         active,
		}); err != nil {
			return res, fmt.Errorf("seed employee %q: %w", username, err)
		}
		logger.Info("seeded employee", slog.String("username", username), slog.String("acl", acl))
		res.Employees++
	}

	for _, c := range sf.Customers {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		if _, err := store.FindCustomerByName(ctx, name); err == nil {
			continue
		} else if !errors.Is(err, storage.ErrNotFound) {
			return res, fmt.Errorf("seed customer %q: %w", name, err)
		}
		if _, err := store.CreateCustomer(ctx, models.Customer{
			Name:    name,
			Contact: c.Contact,
			Phone:   c.Phone,
			Email:   c.Email,
			Address: c.Address,
			Notes:   c.Notes,
			Active:  true,
		}); err != nil {
			return res, fmt.Errorf("seed customer %q: %w", name, err)
		}
		res.Customers++
	}
	return res, nil
}
