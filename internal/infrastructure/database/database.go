package database

import (
	"fmt"
	"time"

	"clinic-management/config"
	"clinic-management/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection opens the store selected by DB_DRIVER.
func NewConnection(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DB.Driver {
	case config.DBDriverSQLite:
		return NewSQLiteConnection(cfg.DB.Path)
	case config.DBDriverPostgres:
		return NewPostgresConnection(cfg.DB, cfg.App.Timezone)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}
}

// Migrate creates or updates every table. Users go first because
// assignments and appointments reference users.username.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Patient{},
		&entity.DoctorAssignment{},
		&entity.Appointment{},
		&entity.AuditLog{},
	)
}

// newGormConfig builds the shared gorm settings. PostgreSQL keeps raw pgconn
// errors so unique violations can be told apart by constraint name.
func newGormConfig(translateErrors bool) *gorm.Config {
	return &gorm.Config{
		Logger: logger.New(logrus.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: translateErrors,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}
