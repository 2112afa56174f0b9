package rbac

import "errors"

var (
	// ErrUnknownRole is returned when a role name is not part of the registry.
	ErrUnknownRole = errors.New("unknown role")

	// ErrUnknownCapability is returned when a capability key is not part of the permission record.
	ErrUnknownCapability = errors.New("unknown capability")

	// ErrUnknownModule is returned when a module key is not part of the navigation.
	ErrUnknownModule = errors.New("unknown module")

	// ErrActorRequired is returned when an override is written without naming who changed it.
	ErrActorRequired = errors.New("override actor can not be empty")

	// ErrInvalidOverride is returned when a stored override payload can not be decoded.
	ErrInvalidOverride = errors.New("invalid permission override")

	// ErrBackendNil is returned when a store is used without a backend.
	ErrBackendNil = errors.New("override backend is nil")

	// ErrIncompleteTable is returned when the base table misses an entry for a registered role.
	ErrIncompleteTable = errors.New("base permission table is incomplete")
)
