// Package me returns the effective permissions and menu of the caller.
package me

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ChurchAdmin/ChurchAdmin/internal/rbac"
	"github.com/ChurchAdmin/ChurchAdmin/internal/web/handler"
	"github.com/ChurchAdmin/ChurchAdmin/internal/web/middleware/identity"
	"github.com/ChurchAdmin/ChurchAdmin/internal/web/navigation"
)

// Path of the handler, relative to the API group.
const Path = "/me"

// Profile is the response of GET /me.
type Profile struct {
	identity.Caller
	Rank        int               `json:"rank"`
	Permissions rbac.Record       `json:"permissions"`
	Granted     []rbac.Capability `json:"granted"`
	Menu        *navigation.Menu  `json:"menu"`
}

// Service is the me handler service.
type Service struct {
	deps handler.Deps
}

// New creates the me handler service.
func New() *Service {
	return &Service{}
}

// Init registers the route on router.
func (s *Service) Init(router fiber.Router, deps handler.Deps) error {
	if router == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps
	router.Get(Path, s.Get)

	return nil
}

// Get handles GET /me.
func (s *Service) Get(c *fiber.Ctx) error {
	caller, ok := identity.FromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no caller identity"})
	}

	perms := s.deps.Guard.Resolver().Resolve(caller.Role)
	visible := rbac.VisibleModules(perms, s.deps.Config.Navigation.Order())

	return c.JSON(Profile{
		Caller:      caller,
		Rank:        caller.Role.Rank(),
		Permissions: perms,
		Granted:     perms.Granted(),
		Menu:        navigation.Build(caller.Role, visible, rbac.Module(c.Query("active"))),
	})
}
