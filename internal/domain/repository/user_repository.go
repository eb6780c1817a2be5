package repository

import (
	"context"

	"clinic-management/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*entity.User, error)
	FindByUsernameAndRole(ctx context.Context, db *gorm.DB, username string, role entity.Role) (*entity.User, error)
	FindAllByRole(ctx context.Context, db *gorm.DB, role entity.Role) ([]entity.User, error)
}
