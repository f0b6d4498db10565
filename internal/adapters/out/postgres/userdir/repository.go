// Package userdir implements the read-only user directory on the shared
// users table. Accounts are written by the identity system; this engine
// only looks profiles up for receipts, notifications, and role checks.
package userdir

import (
	"context"
	"errors"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/ports"
	"canteen/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserDTO mirrors the relevant columns of the shared users table.
type UserDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string
	Email string
	Role  string `gorm:"type:varchar(16)"`
}

// TableName overrides GORM's default naming to use "users".
func (UserDTO) TableName() string {
	return "users"
}

// GormUserDirectory implements ports.UserDirectory using GORM.
type GormUserDirectory struct {
	db *gorm.DB
}

// NewGormUserDirectory creates a new GORM user directory.
func NewGormUserDirectory(db *gorm.DB) *GormUserDirectory {
	return &GormUserDirectory{db: db}
}

// Get retrieves the profile for the given user id.
func (d *GormUserDirectory) Get(ctx context.Context, id kernel.UUID) (ports.UserProfile, error) {
	if err := id.Validate(); err != nil {
		return ports.UserProfile{}, err
	}

	var dto UserDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.UserProfile{}, errs.NewObjectNotFoundError("user", id.String())
		}
		return ports.UserProfile{}, err
	}

	userID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.UserProfile{}, err
	}

	role, err := kernel.RoleFromString(dto.Role)
	if err != nil {
		return ports.UserProfile{}, err
	}

	return ports.UserProfile{
		ID:    userID,
		Name:  dto.Name,
		Email: dto.Email,
		Role:  role,
	}, nil
}
