package repository

import (
	"context"
	"errors"
	"time"

	"clinic-management/internal/domain/entity"
	domainRepo "clinic-management/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(patient).Error
}

func (r *patientRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.WithContext(ctx).Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByMobile(ctx context.Context, db *gorm.DB, mobile string) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.WithContext(ctx).Where("mobile = ?", mobile).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.WithContext(ctx).Order("name ASC, id ASC").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) FindActiveAssignedTo(ctx context.Context, db *gorm.DB, doctorName string, date *time.Time) ([]entity.Patient, error) {
	assigned := db.WithContext(ctx).Model(&entity.DoctorAssignment{}).
		Select("patient_id").
		Where("doctor_name = ?", doctorName)
	if date != nil {
		assigned = assigned.Where("assignment_date = ?", *date)
	}

	var patients []entity.Patient
	err := db.WithContext(ctx).
		Where("id IN (?)", assigned).
		Where("status = ?", entity.PatientStatusActive).
		Order("name ASC, id ASC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) UpdatePrescriptions(ctx context.Context, db *gorm.DB, id uint, prescriptions string) error {
	return db.WithContext(ctx).Model(&entity.Patient{}).
		Where("id = ?", id).
		Update("prescriptions", prescriptions).Error
}

// UpdateStatus changes status only when the stored status is still from,
// so a second completion of the same patient affects no rows.
func (r *patientRepository) UpdateStatus(ctx context.Context, db *gorm.DB, id uint, from, to entity.PatientStatus) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Patient{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

// Delete removes the patient row; appointments and assignments go with it
// through the foreign keys' ON DELETE CASCADE.
func (r *patientRepository) Delete(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Patient{})
	return result.RowsAffected, result.Error
}
