package models

import "time"

// PermissionOverride stores the administrator authored permission override of one role.
// The payload is the JSON document produced by rbac.EncodeOverride; it carries the
// partial permission record together with its audit fields.
type PermissionOverride struct {
	// ID is the unique identifier for the override row.
	ID uint64 `gorm:"primaryKey"`
	// Role is the role name the override applies to. At most one row exists per role.
	Role string `gorm:"unique;size:32;not null"`
	// Payload is the encoded override document.
	Payload []byte `gorm:"not null"`
	// CreatedAt is the timestamp when the override was first stored (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp of the last write (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the PermissionOverride model.
func (PermissionOverride) TableName() string {
	return "permission_overrides"
}
