package repository

import (
	"context"
	"time"

	"clinic-management/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Appointment, error)
	FindByStatus(ctx context.Context, db *gorm.DB, status entity.AppointmentStatus) ([]entity.Appointment, error)
	FindByDoctor(ctx context.Context, db *gorm.DB, doctorName string, statuses ...entity.AppointmentStatus) ([]entity.Appointment, error)
	FindByDoctorAndDate(ctx context.Context, db *gorm.DB, doctorName string, date time.Time, status entity.AppointmentStatus) ([]entity.Appointment, error)
	// UpdateStatus writes the appointment's status and cancellation reason only
	// if the stored status still equals from. Returns affected rows.
	UpdateStatus(ctx context.Context, db *gorm.DB, appointment *entity.Appointment, from entity.AppointmentStatus) (int64, error)
	CountByDoctor(ctx context.Context, db *gorm.DB, doctorName string) (int64, error)
	CountBetween(ctx context.Context, db *gorm.DB, start, end time.Time) (int64, error)
}
