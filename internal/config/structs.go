package config

import (
	"time"

	"github.com/ChurchAdmin/ChurchAdmin/internal/logger"
)

// Database engines.
const (
	EngineSQLite   = "sqlite"
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
)

// Override backends.
const (
	BackendDB    = "db"
	BackendRedis = "redis"
)

// Config overall data structure.
type Config struct {
	DevMode    bool // enable dev mode for development
	Title      string
	DB         DB
	Redis      Redis
	Overrides  Overrides
	Navigation Navigation
	Log        logger.Log
	Webserver  Webserver
}

// DB holds the database configuration settings.
type DB struct {
	Engine   string // sqlite, mysql or postgres
	Path     string // database file, sqlite only
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// Redis holds the redis connection used by the redis override backend.
type Redis struct {
	Addr        string
	Password    string
	DB          int
	KeyPrefix   string        // prefix of the per role override keys
	DialTimeout time.Duration // zero uses the go-redis default
}

// Overrides selects where permission overrides are persisted.
type Overrides struct {
	Backend string // db or redis
}

// Navigation holds the module order of the mobile navigation.
type Navigation struct {
	Modules []string // empty uses the built-in order
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool   // use clean path middleware to allow multi slash requests
	DisableRecover bool   // disable recover middleware
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
	UserHeader     string // header carrying the authenticated user id, set by the gateway
	RoleHeader     string // header carrying the authenticated user role, set by the gateway
}
