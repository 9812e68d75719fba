package stallrepo

import (
	"context"
	"errors"
	"strings"

	"hawker/internal/core/application/access"
	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDirectory implements access.Directory.
type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

// FindUserByEmail matches emails case-insensitively.
func (r *GormDirectory) FindUserByEmail(ctx context.Context, email string) (access.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return access.User{}, errs.NewValueIsRequiredError("email")
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "LOWER(email) = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return access.User{}, errs.NewObjectNotFoundError("user", email)
		}
		return access.User{}, err
	}

	return userToAccess(dto)
}

func (r *GormDirectory) ListStallIDsByOwner(ctx context.Context, ownerID kernel.UUID) ([]kernel.UUID, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&StallDTO{}).
		Where("owner_id = ?", ownerID.Google()).
		Order("name").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	stallIDs := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		stallID, convErr := kernel.UUIDFromGoogle(id)
		if convErr != nil {
			return nil, convErr
		}
		stallIDs = append(stallIDs, stallID)
	}
	return stallIDs, nil
}

// Seed writes catalogue rows. It backs the demo seeding command and tests.
func (r *GormDirectory) Seed(ctx context.Context, users []UserDTO, stalls []StallDTO, menu []MenuItemDTO) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(users) > 0 {
			if err := tx.Create(&users).Error; err != nil {
				return err
			}
		}
		if len(stalls) > 0 {
			if err := tx.Create(&stalls).Error; err != nil {
				return err
			}
		}
		if len(menu) > 0 {
			if err := tx.Create(&menu).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
