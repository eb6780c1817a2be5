package repository

import (
	"context"
	"time"

	"clinic-management/internal/domain/entity"
	domainRepo "clinic-management/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorAssignmentRepository struct{}

func NewDoctorAssignmentRepository() domainRepo.DoctorAssignmentRepository {
	return &doctorAssignmentRepository{}
}

func (r *doctorAssignmentRepository) Create(ctx context.Context, db *gorm.DB, assignment *entity.DoctorAssignment) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(assignment).Error
}

// FindDoctorNames lists the distinct doctors assigned to a patient on a date.
func (r *doctorAssignmentRepository) FindDoctorNames(ctx context.Context, db *gorm.DB, patientID uint, date time.Time) ([]string, error) {
	var names []string
	err := db.WithContext(ctx).Model(&entity.DoctorAssignment{}).
		Where("patient_id = ? AND assignment_date = ?", patientID, date).
		Order("doctor_name ASC").
		Distinct().
		Pluck("doctor_name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *doctorAssignmentRepository) FindDoctorNamesForPatients(ctx context.Context, db *gorm.DB, patientIDs []uint, date time.Time) (map[uint][]string, error) {
	result := make(map[uint][]string, len(patientIDs))
	if len(patientIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		PatientID  uint
		DoctorName string
	}
	err := db.WithContext(ctx).Model(&entity.DoctorAssignment{}).
		Distinct("patient_id", "doctor_name").
		Where("patient_id IN ? AND assignment_date = ?", patientIDs, date).
		Order("patient_id ASC, doctor_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.PatientID] = append(result[row.PatientID], row.DoctorName)
	}
	return result, nil
}

func (r *doctorAssignmentRepository) Exists(ctx context.Context, db *gorm.DB, patientID uint, doctorName string, date time.Time) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.DoctorAssignment{}).
		Where("patient_id = ? AND doctor_name = ? AND assignment_date = ?", patientID, doctorName, date).
		Count(&count).Error
	return count > 0, err
}

// ExistsForDoctor reports whether the doctor was ever assigned to the patient, on any date.
func (r *doctorAssignmentRepository) ExistsForDoctor(ctx context.Context, db *gorm.DB, patientID uint, doctorName string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.DoctorAssignment{}).
		Where("patient_id = ? AND doctor_name = ?", patientID, doctorName).
		Count(&count).Error
	return count > 0, err
}

func (r *doctorAssignmentRepository) CountDistinctPatients(ctx context.Context, db *gorm.DB, doctorName string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.DoctorAssignment{}).
		Where("doctor_name = ?", doctorName).
		Distinct("patient_id").
		Count(&count).Error
	return count, err
}
