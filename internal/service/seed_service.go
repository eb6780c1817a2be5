package service

import (
	"context"

	"clinic-management/config"
	"clinic-management/internal/domain/entity"
	"clinic-management/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminUsername is the seeded administrator account.
const AdminUsername = "admin"

// DefaultDoctors are the seeded doctor accounts.
var DefaultDoctors = []string{"Dr. Das", "Dr. Santra", "Dr. Banarjee", "Dr. Ghosh"}

// SeedService creates the initial staff accounts.
type SeedService interface {
	Seed(ctx context.Context) error
}

type seedService struct {
	db       *gorm.DB
	log      *logrus.Logger
	cfg      config.SeedConfig
	userRepo repository.UserRepository
}

func NewSeedService(db *gorm.DB, log *logrus.Logger, cfg config.SeedConfig, userRepo repository.UserRepository) SeedService {
	return &seedService{
		db:       db,
		log:      log,
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// Seed inserts the admin and the default doctors when they are missing.
// Existing accounts are left untouched, including their passwords.
func (s *seedService) Seed(ctx context.Context) error {
	tx := s.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	created := 0

	ok, err := s.ensureUser(ctx, tx, AdminUsername, s.cfg.AdminPassword, entity.RoleAdmin)
	if err != nil {
		return err
	}
	if ok {
		created++
	}

	for _, name := range DefaultDoctors {
		ok, err := s.ensureUser(ctx, tx, name, s.cfg.DoctorPassword, entity.RoleDoctor)
		if err != nil {
			return err
		}
		if ok {
			created++
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.log.Warnf("Failed to commit seed transaction: %+v", err)
		return err
	}

	s.log.Infof("Seeding finished: %d accounts created", created)
	return nil
}

func (s *seedService) ensureUser(ctx context.Context, tx *gorm.DB, username, password string, role entity.Role) (bool, error) {
	existing, err := s.userRepo.FindByUsername(ctx, tx, username)
	if err != nil {
		s.log.Warnf("Failed to find user %s: %+v", username, err)
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Warnf("Failed to hash password: %+v", err)
		return false, err
	}

	user := &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, tx, user); err != nil {
		s.log.Warnf("Failed to create user %s: %+v", username, err)
		return false, err
	}

	return true, nil
}
