package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewSQLiteConnection opens a single-file database with foreign keys on,
// which the patient cascade depends on. SQLite allows one writer, so the
// pool is pinned to one connection.
func NewSQLiteConnection(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)

	db, err := gorm.Open(sqlite.Open(dsn), newGormConfig(true))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	logrus.WithField("path", path).Info("Successfully opened SQLite database")

	return db, nil
}
