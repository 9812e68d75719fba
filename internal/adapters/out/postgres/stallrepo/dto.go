// Package stallrepo reads the stall side of the catalogue: accounts, stalls and menu
// items. The fulfillment service never writes these tables outside of seeding.
package stallrepo

import (
	"strings"

	"hawker/internal/core/application/access"
	"hawker/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email string    `gorm:"not null;uniqueIndex"`
	Role  string    `gorm:"not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

type StallDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name    string    `gorm:"not null"`
}

func (StallDTO) TableName() string {
	return "stalls"
}

type MenuItemDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	StallID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Name            string    `gorm:"not null"`
	PrepTimeMinutes int       `gorm:"not null;default:0"`
	PriceCents      int64     `gorm:"not null;default:0"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func userToAccess(dto UserDTO) (access.User, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return access.User{}, err
	}
	return access.User{
		ID:    id,
		Email: strings.ToLower(dto.Email),
		Role:  dto.Role,
	}, nil
}
