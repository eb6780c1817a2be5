package repository

import (
	"context"
	"time"

	"clinic-management/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Patient, error)
	FindByMobile(ctx context.Context, db *gorm.DB, mobile string) (*entity.Patient, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Patient, error)
	// FindActiveAssignedTo returns Active patients assigned to the doctor,
	// restricted to one assignment date when date is non-nil.
	FindActiveAssignedTo(ctx context.Context, db *gorm.DB, doctorName string, date *time.Time) ([]entity.Patient, error)
	UpdatePrescriptions(ctx context.Context, db *gorm.DB, id uint, prescriptions string) error
	UpdateStatus(ctx context.Context, db *gorm.DB, id uint, from, to entity.PatientStatus) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id uint) (int64, error)
}
