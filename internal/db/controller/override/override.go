// Package override provides CRUD operations for stored permission overrides.
package override

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ChurchAdmin/ChurchAdmin/internal/db/models"
)

const (
	roleQueryPattern = "role = ?"
)

var (
	// ErrOverrideNotFound is returned when no override is stored for a role.
	ErrOverrideNotFound = errors.New("permission override not found")
	// ErrRoleEmpty is returned when a role name is empty.
	ErrRoleEmpty = errors.New("override role cannot be empty")
	// ErrPayloadEmpty is returned when attempting to store an empty payload.
	ErrPayloadEmpty = errors.New("override payload cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves the override stored for role.
func Get(db *gorm.DB, role string) (*models.PermissionOverride, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if role == "" {
		return nil, ErrRoleEmpty
	}

	var override models.PermissionOverride
	result := db.Where(roleQueryPattern, role).First(&override)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOverrideNotFound
		}
		return nil, result.Error
	}

	return &override, nil
}

// GetAll retrieves every stored override ordered by role name.
func GetAll(db *gorm.DB) ([]models.PermissionOverride, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var overrides []models.PermissionOverride
	result := db.Order("role").Find(&overrides)
	if result.Error != nil {
		return nil, result.Error
	}

	return overrides, nil
}

// Set creates or replaces the override of role (upsert operation).
func Set(db *gorm.DB, role string, payload []byte) (*models.PermissionOverride, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if role == "" {
		return nil, ErrRoleEmpty
	}
	if len(payload) == 0 {
		return nil, ErrPayloadEmpty
	}

	var override models.PermissionOverride

	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where(roleQueryPattern, role).First(&override)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			override = models.PermissionOverride{
				Role:    role,
				Payload: payload,
			}
			return tx.Create(&override).Error
		}
		if result.Error != nil {
			return result.Error
		}

		override.Payload = payload
		return tx.Save(&override).Error
	})
	if err != nil {
		return nil, err
	}

	return &override, nil
}

// DeleteByRole deletes the override of role.
func DeleteByRole(db *gorm.DB, role string) error {
	if db == nil {
		return ErrDBNil
	}
	if role == "" {
		return ErrRoleEmpty
	}

	result := db.Where(roleQueryPattern, role).Delete(&models.PermissionOverride{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}
