// Package web provides the fiber JSON API in front of the access guard.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/ChurchAdmin/ChurchAdmin/internal/config"
	fiberlogger "github.com/ChurchAdmin/ChurchAdmin/internal/logger/adapter/fiber"
	"github.com/ChurchAdmin/ChurchAdmin/internal/rbac"
	"github.com/ChurchAdmin/ChurchAdmin/internal/web/handler"
	"github.com/ChurchAdmin/ChurchAdmin/internal/web/handler/me"
	"github.com/ChurchAdmin/ChurchAdmin/internal/web/handler/messaging"
	"github.com/ChurchAdmin/ChurchAdmin/internal/web/handler/roles"
	"github.com/ChurchAdmin/ChurchAdmin/internal/web/middleware/identity"
)

const (
	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes prometheus metrics.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Addr returns the listen address of the configured port.
func (s *Service) Addr() string {
	return ":" + strconv.Itoa(s.cfg.Webserver.Port)
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan error, 1)

	go func() {
		err := s.App.Listen(addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("fiber listen error")
		}

		doneFiber <- err
	}()

	return <-doneFiber // wait for fiber to stop
}

// WaitShutdown waits for a termination signal and stops the web service gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// CheckAlive returns 200 while the service accepts traffic and 503 during shutdown.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, guard *rbac.Guard, store *rbac.Store) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if guard == nil || store == nil {
		panic("guard and store cannot be nil")
	}

	title := cfg.Title
	if title == "" {
		title = "ChurchAdmin"
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	service := &Service{
		App:          app,
		cfg:          cfg,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
		UserHeader:    cfg.Webserver.UserHeader,
		RoleHeader:    cfg.Webserver.RoleHeader,
	}))

	if cfg.Webserver.CleanPath {
		app.Use(cleanPath)
	}

	app.Get(CheckAlivePath, service.CheckAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group(handler.APIPath, identity.Middleware(identity.Config{
		UserHeader: cfg.Webserver.UserHeader,
		RoleHeader: cfg.Webserver.RoleHeader,
	}))

	deps := handler.Deps{Config: cfg, Guard: guard, Store: store}

	// init handlers (they register their own routes with capability checks)
	for _, h := range []handler.Service{roles.New(), me.New(), messaging.New()} {
		if err := h.Init(api, deps); err != nil {
			log.Fatal().Err(err).Msg(handler.ErrNilDepsFatalLogMsg)
		}
	}

	return service
}

// cleanPath collapses duplicate slashes and dot segments before routing.
func cleanPath(c *fiber.Ctx) error {
	p := c.Path()
	if cleaned := path.Clean(p); cleaned != p && p != "/" {
		c.Path(cleaned)
	}

	return c.Next()
}
