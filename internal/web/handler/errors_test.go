package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/ChurchAdmin/ChurchAdmin/internal/rbac"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown role", fmt.Errorf("path: %w", rbac.ErrUnknownRole), fiber.StatusNotFound},
		{"invalid body", ErrInvalidBody, fiber.StatusBadRequest},
		{"unknown capability", rbac.ErrUnknownCapability, fiber.StatusBadRequest},
		{"unknown module", fmt.Errorf("nav: %w", rbac.ErrUnknownModule), fiber.StatusBadRequest},
		{"invalid override", rbac.ErrInvalidOverride, fiber.StatusBadRequest},
		{"missing actor", rbac.ErrActorRequired, fiber.StatusBadRequest},
		{"lock-out", ErrSelfLockout, fiber.StatusConflict},
		{"backend", errors.New("connection refused"), fiber.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}
