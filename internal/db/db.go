// Package db opens the gorm connection for the configured database engine.
package db

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ChurchAdmin/ChurchAdmin/internal/config"
	"github.com/ChurchAdmin/ChurchAdmin/internal/db/dsn"
	"github.com/ChurchAdmin/ChurchAdmin/internal/db/models"
)

// ErrConfigNil is returned when Open is called without configuration.
var ErrConfigNil = errors.New("config is nil")

// Dialector returns the gorm dialector for the configured engine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.Engine {
	case config.EngineMySQL:
		return mysql.Open(dsn.Create(cfg)), nil
	case config.EnginePostgres:
		return postgres.Open(dsn.Create(cfg)), nil
	case config.EngineSQLite, "":
		return sqlite.Open(dsn.Create(cfg)), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDBEngine, cfg.DB.Engine)
	}
}

// Open connects to the database and migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := gormlogger.Warn
	if cfg.DevMode {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect %s database: %w", cfg.DB.Engine, err)
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}

	log.Info().Str("engine", cfg.DB.Engine).Msg("database ready")

	return db, nil
}

// Migrate creates or updates the tables used by ChurchAdmin.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.PermissionOverride{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}
