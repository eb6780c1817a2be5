package dto

import "time"

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID  uint   `json:"patient_id" validate:"required,gt=0"`
	DoctorName string `json:"doctor_name" validate:"required,notblank"`
	Date       string `json:"date" validate:"required"` // Format: YYYY-MM-DD
	Time       string `json:"time" validate:"required"` // Format: HH:MM
	Reason     string `json:"reason" validate:"omitempty,max=1000"`
}

type RequestCancellationRequest struct {
	Reason string `json:"reason" validate:"required,notblank,max=1000"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                 uint      `json:"id"`
	PatientID          uint      `json:"patient_id"`
	PatientName        string    `json:"patient_name,omitempty"`
	DoctorName         string    `json:"doctor_name"`
	Date               string    `json:"date"`
	Time               string    `json:"time"`
	Reason             string    `json:"reason"`
	Status             string    `json:"status"`
	CancellationReason *string   `json:"cancellation_reason"`
	AssignedToMe       *bool     `json:"assigned_to_me,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
