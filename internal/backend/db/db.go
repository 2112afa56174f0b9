// Package db persists permission overrides in the relational database through gorm.
package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ChurchAdmin/ChurchAdmin/internal/db/controller/override"
	"github.com/ChurchAdmin/ChurchAdmin/internal/rbac"
)

// Backend implements rbac.Backend on the permission_overrides table.
type Backend struct {
	db *gorm.DB
}

// New creates a backend on db. The schema must already be migrated.
func New(db *gorm.DB) *Backend {
	return &Backend{db: db}
}

// ReadOverrides implements rbac.Backend.
func (b *Backend) ReadOverrides(ctx context.Context) ([]rbac.StoredOverride, error) {
	rows, err := override.GetAll(b.conn(ctx))
	if err != nil {
		return nil, err
	}

	out := make([]rbac.StoredOverride, 0, len(rows))
	for _, row := range rows {
		out = append(out, rbac.StoredOverride{Role: row.Role, Payload: row.Payload})
	}

	return out, nil
}

// WriteOverride implements rbac.Backend.
func (b *Backend) WriteOverride(ctx context.Context, o rbac.StoredOverride) error {
	_, err := override.Set(b.conn(ctx), o.Role, o.Payload)
	return err
}

// DeleteOverride implements rbac.Backend.
func (b *Backend) DeleteOverride(ctx context.Context, role rbac.Role) error {
	err := override.DeleteByRole(b.conn(ctx), string(role))
	if errors.Is(err, override.ErrOverrideNotFound) {
		return nil
	}

	return err
}

func (b *Backend) conn(ctx context.Context) *gorm.DB {
	if b.db == nil {
		return nil
	}

	return b.db.WithContext(ctx)
}
