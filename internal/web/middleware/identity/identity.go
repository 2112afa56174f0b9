package identity

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ChurchAdmin/ChurchAdmin/internal/rbac"
)

const (
	// DefaultUserHeader is the header carrying the user id.
	DefaultUserHeader = "X-User-ID"

	// DefaultRoleHeader is the header carrying the role name.
	DefaultRoleHeader = "X-User-Role"

	localsKey = "caller"
)

// Caller is the identity of the user issuing the request.
type Caller struct {
	UserID string    `json:"userId"`
	Role   rbac.Role `json:"role"`
}

// Config of the identity middleware.
type Config struct {
	UserHeader string
	RoleHeader string
}

func (c Config) withDefaults() Config {
	if c.UserHeader == "" {
		c.UserHeader = DefaultUserHeader
	}

	if c.RoleHeader == "" {
		c.RoleHeader = DefaultRoleHeader
	}

	return c
}

// Middleware stores the caller in fiber.Locals or rejects the request.
func Middleware(cfg Config) fiber.Handler {
	cfg = cfg.withDefaults()

	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Get(cfg.UserHeader))
		if userID == "" {
			return unauthorized(c, "missing "+cfg.UserHeader+" header")
		}

		role, err := rbac.ParseRole(c.Get(cfg.RoleHeader))
		if err != nil {
			log.Warn().Str("user", userID).Str("role", c.Get(cfg.RoleHeader)).Msg("rejecting request with unknown role")

			return unauthorized(c, err.Error())
		}

		c.Locals(localsKey, Caller{UserID: userID, Role: role})

		return c.Next()
	}
}

// FromCtx returns the caller stored by Middleware.
func FromCtx(c *fiber.Ctx) (Caller, bool) {
	caller, ok := c.Locals(localsKey).(Caller)

	return caller, ok
}

// RequireCapability creates fiber middleware that requires the caller's
// effective permissions to grant capability. The role is resolved on every
// request, so overrides apply as soon as they are stored.
func RequireCapability(guard *rbac.Guard, capability rbac.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, ok := FromCtx(c)
		if !ok {
			return unauthorized(c, "no caller identity")
		}

		if !guard.Allowed(caller.Role, capability) {
			log.Warn().Str("user", caller.UserID).Str("role", caller.Role.String()).
				Str("capability", string(capability)).Msg("caller lacks required capability")

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "forbidden: missing capability " + string(capability),
			})
		}

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}
