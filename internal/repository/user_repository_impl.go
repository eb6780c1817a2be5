package repository

import (
	"context"
	"errors"

	"clinic-management/internal/domain/entity"
	domainRepo "clinic-management/internal/domain/repository"

	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByUsername(ctx context.Context, db *gorm.DB, username string) (*entity.User, error) {
	var user entity.User
	err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsernameAndRole(ctx context.Context, db *gorm.DB, username string, role entity.Role) (*entity.User, error) {
	var user entity.User
	err := db.WithContext(ctx).Where("username = ? AND role = ?", username, role).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAllByRole(ctx context.Context, db *gorm.DB, role entity.Role) ([]entity.User, error) {
	var users []entity.User
	err := db.WithContext(ctx).Where("role = ?", role).Order("username ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
