// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"

	"github.com/ChurchAdmin/ChurchAdmin/internal/config"
)

// Create builds the Data Source Name for the configured engine.
func Create(cfg *config.Config) string {
	switch cfg.DB.Engine {
	case config.EngineMySQL:
		return MySQL(cfg.DB)
	case config.EnginePostgres:
		return Postgres(cfg.DB)
	default:
		return SQLite(cfg.DB)
	}
}

// MySQL builds a go-sql-driver/mysql DSN.
func MySQL(db config.DB) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
		db.Extras,
	)
}

// Postgres builds a pgx keyword/value DSN. Extras is appended verbatim, e.g. "sslmode=disable".
func Postgres(db config.DB) string {
	out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		db.Host,
		db.Port,
		db.User,
		db.Password,
		db.Name,
	)

	if db.Extras != "" {
		out += " " + db.Extras
	}

	return out
}

// SQLite returns the database file path, with Extras appended as query parameters.
func SQLite(db config.DB) string {
	if db.Extras == "" {
		return db.Path
	}

	return db.Path + "?" + db.Extras
}
