// Package roles provides the role registry and permission override handlers.
package roles

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ChurchAdmin/ChurchAdmin/internal/rbac"
	"github.com/ChurchAdmin/ChurchAdmin/internal/web/handler"
	"github.com/ChurchAdmin/ChurchAdmin/internal/web/middleware/identity"
	"github.com/ChurchAdmin/ChurchAdmin/internal/web/navigation"
)

const (
	// Path is the base path of the role handlers, relative to the API group.
	Path = "/roles"

	defaultTimeout = 10 * time.Second
)

// RoleInfo describes a registered role.
type RoleInfo struct {
	Role rbac.Role `json:"role"`
	Rank int       `json:"rank"`
}

// SetRequest is the body of PUT /roles/:role/permissions.
type SetRequest struct {
	Permissions *rbac.Patch `json:"permissions" validate:"required"`
}

// Service is the role handler service.
type Service struct {
	deps      handler.Deps
	validator *validator.Validate
}

// New creates the role handler service.
func New() *Service {
	return &Service{validator: validator.New()}
}

// Init registers the role routes on router.
func (s *Service) Init(router fiber.Router, deps handler.Deps) error {
	if router == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps

	manage := identity.RequireCapability(deps.Guard, rbac.CapPermissionsManage)

	router.Get(Path, s.List)
	router.Get(Path+"/:role/permissions", manage, s.GetPermissions)
	router.Put(Path+"/:role/permissions", manage, s.SetPermissions)
	router.Delete(Path+"/:role/permissions", manage, s.ResetPermissions)
	router.Get(Path+"/:role/modules", manage, s.Modules)

	return nil
}

// List returns every role with its rank, highest first.
func (s *Service) List(c *fiber.Ctx) error {
	roles := rbac.Roles()
	out := make([]RoleInfo, 0, len(roles))

	for _, r := range roles {
		out = append(out, RoleInfo{Role: r, Rank: r.Rank()})
	}

	return c.JSON(out)
}

// GetPermissions returns the base, override and effective record of a role.
func (s *Service) GetPermissions(c *fiber.Ctx) error {
	role, err := rbac.ParseRole(c.Params("role"))
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(s.deps.Guard.Resolver().Explain(role))
}

// SetPermissions replaces the override of a role.
func (s *Service) SetPermissions(c *fiber.Ctx) error {
	role, err := rbac.ParseRole(c.Params("role"))
	if err != nil {
		return handler.Error(c, err)
	}

	req, err := s.decode(c.Body())
	if err != nil {
		return handler.Error(c, err)
	}

	caller, _ := identity.FromCtx(c)

	if lockedOut(caller.Role, role, *req.Permissions) {
		return handler.Error(c, handler.ErrSelfLockout)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), defaultTimeout)
	defer cancel()

	if _, err = s.deps.Store.Set(ctx, role, *req.Permissions, caller.UserID); err != nil {
		return handler.Error(c, err)
	}

	log.Info().Str("user", caller.UserID).Str("role", role.String()).Msg("permission override set via api")

	return c.JSON(s.deps.Guard.Resolver().Explain(role))
}

// ResetPermissions removes the override of a role.
func (s *Service) ResetPermissions(c *fiber.Ctx) error {
	role, err := rbac.ParseRole(c.Params("role"))
	if err != nil {
		return handler.Error(c, err)
	}

	caller, _ := identity.FromCtx(c)

	// a reset falls back to the base record
	if lockedOut(caller.Role, role, rbac.Patch{}) {
		return handler.Error(c, handler.ErrSelfLockout)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), defaultTimeout)
	defer cancel()

	if err = s.deps.Store.Reset(ctx, role); err != nil {
		return handler.Error(c, err)
	}

	log.Info().Str("user", caller.UserID).Str("role", role.String()).Msg("permission override reset via api")

	return c.JSON(s.deps.Guard.Resolver().Explain(role))
}

// Modules returns the navigation menu of a role.
func (s *Service) Modules(c *fiber.Ctx) error {
	role, err := rbac.ParseRole(c.Params("role"))
	if err != nil {
		return handler.Error(c, err)
	}

	visible := s.deps.Guard.Modules(role, s.deps.Config.Navigation.Order())

	return c.JSON(navigation.Build(role, visible, rbac.Module(c.Query("active"))))
}

func (s *Service) decode(body []byte) (SetRequest, error) {
	var req SetRequest

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("%w: %w", handler.ErrInvalidBody, err)
	}

	if err := s.validator.Struct(req); err != nil {
		return req, fmt.Errorf("%w: %w", handler.ErrInvalidBody, err)
	}

	return req, nil
}

// lockedOut reports whether storing p for target would leave the caller's own
// role without permissions.manage.
func lockedOut(caller, target rbac.Role, p rbac.Patch) bool {
	if caller != target {
		return false
	}

	return !rbac.Merge(rbac.BaseOf(target), p).PermissionsManage
}
