// Package handler holds the shared contract and helpers of the JSON API handlers.
package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ChurchAdmin/ChurchAdmin/internal/config"
	"github.com/ChurchAdmin/ChurchAdmin/internal/rbac"
)

// Deps are the collaborators every handler receives.
type Deps struct {
	Config *config.Config
	Guard  *rbac.Guard
	Store  *rbac.Store
}

// Valid reports whether every dependency is set.
func (d Deps) Valid() bool {
	return d.Config != nil && d.Guard != nil && d.Store != nil
}

// Service is the interface for a web handler service.
type Service interface {
	Init(router fiber.Router, deps Deps) error
}
