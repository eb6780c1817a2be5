// Package testutil builds throwaway stores for package tests.
package testutil

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"clinic-management/internal/domain/entity"
	"clinic-management/internal/infrastructure/database"
	"clinic-management/pkg/dateutil"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database private to the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// NewLogger returns a logger that discards output.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// CreateUser inserts a staff account with a cheap bcrypt hash.
func CreateUser(t testing.TB, db *gorm.DB, username, password string, role entity.Role) *entity.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{Username: username, PasswordHash: string(hash), Role: role}
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error)
	return user
}

// CreatePatient inserts an Active patient directly, bypassing registration rules.
func CreatePatient(t testing.TB, db *gorm.DB, name, mobile string) *entity.Patient {
	t.Helper()

	patient := &entity.Patient{
		Name:          name,
		Mobile:        mobile,
		DateOfBirth:   dateutil.DateOnly(time.Now().AddDate(0, 0, -7)),
		ReasonToVisit: "Checkup",
		Status:        entity.PatientStatusActive,
	}
	require.NoError(t, db.Omit("Appointments", "DoctorAssignments").Create(patient).Error)
	return patient
}
