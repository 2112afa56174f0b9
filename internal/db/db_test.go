package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChurchAdmin/ChurchAdmin/internal/config"
	"github.com/ChurchAdmin/ChurchAdmin/internal/db/models"
)

func TestDialector(t *testing.T) {
	tests := []struct {
		engine  string
		name    string
		wantErr bool
	}{
		{engine: config.EngineSQLite, name: "sqlite"},
		{engine: "", name: "sqlite"},
		{engine: config.EngineMySQL, name: "mysql"},
		{engine: config.EnginePostgres, name: "postgres"},
		{engine: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			d, err := Dialector(&config.Config{DB: config.DB{Engine: tt.engine, Path: "x.db"}})
			if tt.wantErr {
				require.ErrorIs(t, err, config.ErrUnknownDBEngine)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.name, d.Name())
		})
	}
}

func TestOpenSQLite(t *testing.T) {
	_, err := Open(nil)
	require.ErrorIs(t, err, ErrConfigNil)

	cfg := &config.Config{DB: config.DB{
		Engine: config.EngineSQLite,
		Path:   filepath.Join(t.TempDir(), "churchadmin.db"),
	}}

	gdb, err := Open(cfg)
	require.NoError(t, err)

	assert.True(t, gdb.Migrator().HasTable(&models.PermissionOverride{}))

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}
