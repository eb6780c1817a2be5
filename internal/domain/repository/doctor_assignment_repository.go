package repository

import (
	"context"
	"time"

	"clinic-management/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorAssignmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, assignment *entity.DoctorAssignment) error
	FindDoctorNames(ctx context.Context, db *gorm.DB, patientID uint, date time.Time) ([]string, error)
	FindDoctorNamesForPatients(ctx context.Context, db *gorm.DB, patientIDs []uint, date time.Time) (map[uint][]string, error)
	Exists(ctx context.Context, db *gorm.DB, patientID uint, doctorName string, date time.Time) (bool, error)
	ExistsForDoctor(ctx context.Context, db *gorm.DB, patientID uint, doctorName string) (bool, error)
	CountDistinctPatients(ctx context.Context, db *gorm.DB, doctorName string) (int64, error)
}
