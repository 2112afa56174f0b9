// Package daemon wires configuration, persistence, the permission model and
// the web service together.
package daemon

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	dbbackend "github.com/ChurchAdmin/ChurchAdmin/internal/backend/db"
	redisbackend "github.com/ChurchAdmin/ChurchAdmin/internal/backend/redis"
	"github.com/ChurchAdmin/ChurchAdmin/internal/config"
	"github.com/ChurchAdmin/ChurchAdmin/internal/db"
	redislogger "github.com/ChurchAdmin/ChurchAdmin/internal/logger/adapter/redis"
	"github.com/ChurchAdmin/ChurchAdmin/internal/rbac"
	"github.com/ChurchAdmin/ChurchAdmin/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	webService *web.Service
	store      *rbac.Store
	closeFn    func() error
}

// Start starts the web service and blocks until it was shut down.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	defer d.Close()

	return d.webService.Start(d.webService.Addr())
}

// Close releases the connection of the override backend.
func (d *Daemon) Close() {
	if d.closeFn == nil {
		return
	}

	if err := d.closeFn(); err != nil {
		log.Error().Err(err).Msg("failed to close override backend")
	}
}

// Store returns the override store of the daemon.
func (d *Daemon) Store() *rbac.Store {
	return d.store
}

// New creates a new Daemon instance with the provided configuration.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, db.ErrConfigNil
	}

	if err := rbac.ValidateTable(); err != nil {
		return nil, err
	}

	store, closeFn, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	guard := rbac.NewGuard(rbac.NewResolver(store))

	return &Daemon{
		webService: web.New(cfg, guard, store),
		store:      store,
		closeFn:    closeFn,
	}, nil
}

// OpenStore connects the configured override backend and loads the store.
// A failing read is logged and the store starts empty, so every role
// resolves to its base permissions.
func OpenStore(ctx context.Context, cfg *config.Config) (*rbac.Store, func() error, error) {
	backend, closeFn, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	store := rbac.NewStore(backend)

	if err = store.Load(ctx); err != nil {
		log.Error().Err(err).Str("backend", cfg.Overrides.Backend).
			Msg("failed to load permission overrides, serving base permissions")
	}

	return store, closeFn, nil
}

// OpenBackend connects the override backend named in the configuration.
func OpenBackend(ctx context.Context, cfg *config.Config) (rbac.Backend, func() error, error) {
	switch cfg.Overrides.Backend {
	case config.BackendRedis:
		redislogger.Install(redislogger.New())

		client, err := redisbackend.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}

		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis override backend")

		return redisbackend.New(client, cfg.Redis.KeyPrefix), client.Close, nil
	case config.BackendDB, "":
		conn, err := db.Open(cfg)
		if err != nil {
			return nil, nil, err
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("daemon: sql handle: %w", err)
		}

		log.Info().Str("engine", cfg.DB.Engine).Msg("using database override backend")

		return dbbackend.New(conn), sqlDB.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownOverrideBackend, cfg.Overrides.Backend)
	}
}
