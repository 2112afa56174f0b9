// Package messaging exposes the messaging rules of the role hierarchy.
package messaging

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ChurchAdmin/ChurchAdmin/internal/rbac"
	"github.com/ChurchAdmin/ChurchAdmin/internal/web/handler"
	"github.com/ChurchAdmin/ChurchAdmin/internal/web/middleware/identity"
)

// Path is the base path of the messaging handlers, relative to the API group.
const Path = "/messaging"

// Decision is the response of GET /messaging/can-message.
type Decision struct {
	From    rbac.Role `json:"from"`
	To      rbac.Role `json:"to"`
	Allowed bool      `json:"allowed"`
}

// Recipients is the response of GET /messaging/recipients.
type Recipients struct {
	Sender rbac.Role   `json:"sender"`
	Roles  []rbac.Role `json:"roles"`
}

// Service is the messaging handler service.
type Service struct {
	deps handler.Deps
}

// New creates the messaging handler service.
func New() *Service {
	return &Service{}
}

// Init registers the messaging routes on router.
func (s *Service) Init(router fiber.Router, deps handler.Deps) error {
	if router == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps

	router.Get(Path+"/recipients", identity.RequireCapability(deps.Guard, rbac.CapMessagesAccess), s.Recipients)
	router.Get(Path+"/can-message", s.CanMessage)

	return nil
}

// Recipients lists the roles the caller may message, highest first.
func (s *Service) Recipients(c *fiber.Ctx) error {
	caller, _ := identity.FromCtx(c)

	return c.JSON(Recipients{Sender: caller.Role, Roles: rbac.Recipients(caller.Role)})
}

// CanMessage answers whether role "from" may message role "to".
// "from" defaults to the caller's role.
func (s *Service) CanMessage(c *fiber.Ctx) error {
	caller, _ := identity.FromCtx(c)

	from := caller.Role

	if q := c.Query("from"); q != "" {
		r, err := rbac.ParseRole(q)
		if err != nil {
			return handler.Error(c, err)
		}

		from = r
	}

	to, err := rbac.ParseRole(c.Query("to"))
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(Decision{From: from, To: to, Allowed: rbac.CanMessage(from, to)})
}
