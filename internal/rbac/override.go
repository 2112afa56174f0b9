package rbac

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Override is an administrator authored deviation from a role's base record.
type Override struct {
	Role      Role      `json:"role"`
	Patch     Patch     `json:"permissions"`
	UpdatedBy string    `json:"updatedBy"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StoredOverride is the raw form of an override as kept by a Backend.
type StoredOverride struct {
	Role    string
	Payload []byte
}

// storedPayload is the persisted JSON document of an override.
type storedPayload struct {
	Role        string    `json:"role"        validate:"required"`
	Permissions Patch     `json:"permissions"`
	UpdatedBy   string    `json:"updatedBy"   validate:"required,max=255"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var validate = validator.New() //nolint:gochecknoglobals

var errMissingUpdatedAt = errors.New("missing updatedAt")

// check applies the rules every persisted document has to satisfy.
func (doc storedPayload) check() error {
	if err := validate.Struct(doc); err != nil {
		return err //nolint: wrapcheck
	}

	if doc.UpdatedAt.IsZero() {
		return errMissingUpdatedAt
	}

	return nil
}

// EncodeOverride returns the persisted JSON document of o.
// Overrides that DecodeOverride would reject are refused with ErrInvalidOverride.
func EncodeOverride(o Override) ([]byte, error) {
	doc := storedPayload{
		Role:        string(o.Role),
		Permissions: o.Patch,
		UpdatedBy:   o.UpdatedBy,
		UpdatedAt:   o.UpdatedAt.UTC(),
	}

	if err := doc.check(); err != nil {
		return nil, fmt.Errorf("%w: role %s: %w", ErrInvalidOverride, o.Role, err)
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode override for role %s: %w", o.Role, err)
	}

	return out, nil
}

// DecodeOverride parses and validates the document stored under key.
// Payloads that are empty, not a JSON object, carry unknown capabilities,
// miss audit fields or name a different role are rejected with ErrInvalidOverride.
func DecodeOverride(key string, payload []byte) (Override, error) {
	role, err := ParseRole(key)
	if err != nil {
		return Override{}, fmt.Errorf("%w: %w", ErrInvalidOverride, err)
	}

	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Override{}, fmt.Errorf("%w: payload for role %s is not a JSON object", ErrInvalidOverride, role)
	}

	var doc storedPayload

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	if err = dec.Decode(&doc); err != nil {
		return Override{}, fmt.Errorf("%w: role %s: %w", ErrInvalidOverride, role, err)
	}

	if dec.More() {
		return Override{}, fmt.Errorf("%w: role %s: trailing data after payload", ErrInvalidOverride, role)
	}

	if err = doc.check(); err != nil {
		return Override{}, fmt.Errorf("%w: role %s: %w", ErrInvalidOverride, role, err)
	}

	if docRole, errRole := ParseRole(doc.Role); errRole != nil || docRole != role {
		return Override{}, fmt.Errorf("%w: payload role %q stored under %s", ErrInvalidOverride, doc.Role, role)
	}

	return Override{
		Role:      role,
		Patch:     doc.Permissions,
		UpdatedBy: doc.UpdatedBy,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}
