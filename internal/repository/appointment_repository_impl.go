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

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).
		Preload("Patient").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByStatus(ctx context.Context, db *gorm.DB, status entity.AppointmentStatus) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Preload("Patient").
		Where("status = ?", status).
		Order("date ASC, time ASC, id ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctor(ctx context.Context, db *gorm.DB, doctorName string, statuses ...entity.AppointmentStatus) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.WithContext(ctx).
		Preload("Patient").
		Where("doctor_name = ?", doctorName)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Order("date ASC, time ASC, id ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorAndDate(ctx context.Context, db *gorm.DB, doctorName string, date time.Time, status entity.AppointmentStatus) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Preload("Patient").
		Where("doctor_name = ? AND date = ? AND status = ?", doctorName, date, status).
		Order("time ASC, id ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateStatus is a compare-and-set on status: the row changes only while it
// is still in from, so concurrent reviewers cannot both win.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, db *gorm.DB, appointment *entity.Appointment, from entity.AppointmentStatus) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", appointment.ID, from).
		Updates(map[string]interface{}{
			"status":              appointment.Status,
			"cancellation_reason": appointment.CancellationReason,
		})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) CountByDoctor(ctx context.Context, db *gorm.DB, doctorName string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("doctor_name = ?", doctorName).
		Count(&count).Error
	return count, err
}

// CountBetween counts appointments dated within [start, end], any status.
func (r *appointmentRepository) CountBetween(ctx context.Context, db *gorm.DB, start, end time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("date >= ? AND date <= ?", start, end).
		Count(&count).Error
	return count, err
}
