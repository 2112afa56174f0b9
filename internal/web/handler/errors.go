package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ChurchAdmin/ChurchAdmin/internal/rbac"
)

var (
	// ErrInvalidBody is returned for request bodies that fail to decode or validate.
	ErrInvalidBody = errors.New("invalid request body")

	// ErrSelfLockout is returned when a caller would revoke permissions.manage from their own role.
	ErrSelfLockout = errors.New("override would revoke permissions.manage from the caller's own role")

	// ErrNilDeps is returned by Init when a dependency is missing.
	ErrNilDeps = errors.New(ErrNilDepsFatalLogMsg)
)

// StatusOf maps an error to the HTTP status reported to the client.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, rbac.ErrUnknownRole):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidBody),
		errors.Is(err, rbac.ErrUnknownCapability),
		errors.Is(err, rbac.ErrUnknownModule),
		errors.Is(err, rbac.ErrActorRequired),
		errors.Is(err, rbac.ErrInvalidOverride):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrSelfLockout):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadGateway
	}
}

// Error writes err as a JSON error document.
func Error(c *fiber.Ctx, err error) error {
	status := StatusOf(err)

	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
