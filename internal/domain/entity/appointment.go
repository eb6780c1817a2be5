package entity

import (
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
)

var (
	ErrInvalidStatusTransition    = errors.New("invalid appointment status transition")
	ErrCancellationReasonRequired = errors.New("a reason is required to request cancellation")
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled             AppointmentStatus = "Scheduled"
	AppointmentStatusCancellationRequested AppointmentStatus = "Cancellation Requested"
	AppointmentStatusCancelled             AppointmentStatus = "Cancelled"
)

// appointmentTransitions lists the statuses reachable from each status.
// Cancelled is terminal.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusScheduled:             {AppointmentStatusCancellationRequested},
	AppointmentStatusCancellationRequested: {AppointmentStatusCancelled, AppointmentStatusScheduled},
	AppointmentStatusCancelled:             {},
}

// Appointment is a visit scheduled by an admin for a patient with a doctor.
// Doctor, date, time and reason are fixed at creation; only the status moves.
type Appointment struct {
	ID                 uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID          uint              `gorm:"not null;index" json:"patient_id"`
	DoctorName         string            `gorm:"type:varchar(100);not null;index:idx_appointment_doctor_date" json:"doctor_name"`
	Date               time.Time         `gorm:"type:date;not null;index:idx_appointment_doctor_date" json:"date"`
	Time               datatypes.Time    `gorm:"not null" json:"time"`
	Reason             string            `gorm:"type:text" json:"reason"`
	Status             AppointmentStatus `gorm:"type:varchar(30);not null;default:'Scheduled';index" json:"status"`
	CancellationReason *string           `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User    `gorm:"foreignKey:DoctorName;references:Username" json:"-"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// CanTransitionTo reports whether the state machine allows moving to next.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	for _, s := range appointmentTransitions[a.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// IsScheduled checks if appointment is in scheduled status
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// RequestCancellation moves a scheduled appointment to cancellation requested.
func (a *Appointment) RequestCancellation(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrCancellationReasonRequired
	}
	if !a.CanTransitionTo(AppointmentStatusCancellationRequested) {
		return ErrInvalidStatusTransition
	}
	a.Status = AppointmentStatusCancellationRequested
	a.CancellationReason = &reason
	return nil
}

// ApproveCancellation cancels the appointment for good.
func (a *Appointment) ApproveCancellation() error {
	if !a.CanTransitionTo(AppointmentStatusCancelled) {
		return ErrInvalidStatusTransition
	}
	a.Status = AppointmentStatusCancelled
	return nil
}

// DenyCancellation puts the appointment back on the schedule and drops the reason.
func (a *Appointment) DenyCancellation() error {
	if !a.CanTransitionTo(AppointmentStatusScheduled) {
		return ErrInvalidStatusTransition
	}
	a.Status = AppointmentStatusScheduled
	a.CancellationReason = nil
	return nil
}
