package daemon

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChurchAdmin/ChurchAdmin/internal/config"
	"github.com/ChurchAdmin/ChurchAdmin/internal/db"
	"github.com/ChurchAdmin/ChurchAdmin/internal/rbac"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		DB:        config.DB{Engine: config.EngineSQLite, Path: filepath.Join(t.TempDir(), "test.db")},
		Overrides: config.Overrides{Backend: config.BackendDB},
		Webserver: config.Webserver{Port: 8080},
	}
}

func TestNewNilConfig(t *testing.T) {
	_, err := New(context.Background(), nil)
	require.ErrorIs(t, err, db.ErrConfigNil)
}

func TestNewWithSQLite(t *testing.T) {
	d, err := New(context.Background(), sqliteConfig(t))
	require.NoError(t, err)

	t.Cleanup(d.Close)

	assert.NotNil(t, d.Store())
	assert.Empty(t, d.Store().All())
}

func TestOpenStorePersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)

	store, closeFn, err := OpenStore(ctx, cfg)
	require.NoError(t, err)

	_, err = store.Set(ctx, rbac.RoleGuest, rbac.Patch{}.With(rbac.CapResourcesAccess, true), "admin")
	require.NoError(t, err)
	require.NoError(t, closeFn())

	store, closeFn, err = OpenStore(ctx, cfg)
	require.NoError(t, err)

	t.Cleanup(func() { _ = closeFn() })

	o, ok := store.Get(rbac.RoleGuest)
	require.True(t, ok)
	assert.Equal(t, "admin", o.UpdatedBy)
}

func TestOpenBackendRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := &config.Config{
		Redis:     config.Redis{Addr: mr.Addr(), KeyPrefix: "test:"},
		Overrides: config.Overrides{Backend: config.BackendRedis},
	}

	store, closeFn, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)

	t.Cleanup(func() { _ = closeFn() })

	_, err = store.Set(context.Background(), rbac.RoleLeader, rbac.Patch{}.With(rbac.CapReportsAccess, true), "admin")
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:leader"))
}

func TestOpenBackendErrors(t *testing.T) {
	_, _, err := OpenBackend(context.Background(), &config.Config{Overrides: config.Overrides{Backend: "etcd"}})
	require.ErrorIs(t, err, config.ErrUnknownOverrideBackend)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, _, err = OpenBackend(context.Background(), &config.Config{
		Redis:     config.Redis{Addr: addr},
		Overrides: config.Overrides{Backend: config.BackendRedis},
	})
	require.Error(t, err)
}

func TestOpenStoreServesBaseOnCorruptRows(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("test:member", "{broken"))

	store, closeFn, err := OpenStore(context.Background(), &config.Config{
		Redis:     config.Redis{Addr: mr.Addr(), KeyPrefix: "test:"},
		Overrides: config.Overrides{Backend: config.BackendRedis},
	})
	require.NoError(t, err)

	t.Cleanup(func() { _ = closeFn() })

	_, ok := store.Get(rbac.RoleMember)
	assert.False(t, ok)
}
