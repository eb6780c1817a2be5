package dto

import "time"

// Request DTOs

type RegisterPatientRequest struct {
	Name          string `json:"name" validate:"required,notblank,max=100"`
	Mobile        string `json:"mobile" validate:"required,notblank,max=20"`
	DateOfBirth   string `json:"date_of_birth" validate:"required"` // Format: YYYY-MM-DD
	ReasonToVisit string `json:"reason_to_visit" validate:"required,notblank"`
}

type UpdatePrescriptionsRequest struct {
	Prescriptions string `json:"prescriptions" validate:"max=10000"`
}

type AssignDoctorRequest struct {
	DoctorName string `json:"doctor_name" validate:"required,notblank"`
	Date       string `json:"date" validate:"omitempty"` // Format: YYYY-MM-DD, defaults to today
}

// Response DTOs

type PatientResponse struct {
	ID                   uint      `json:"id"`
	Name                 string    `json:"name"`
	Mobile               string    `json:"mobile"`
	DateOfBirth          string    `json:"date_of_birth"`
	ReasonToVisit        string    `json:"reason_to_visit"`
	Status               string    `json:"status"`
	Prescriptions        *string   `json:"prescriptions"`
	AssignedDoctorsToday []string  `json:"assigned_doctors_today,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}

type AssignmentResponse struct {
	ID             uint      `json:"id"`
	PatientID      uint      `json:"patient_id"`
	DoctorName     string    `json:"doctor_name"`
	AssignmentDate string    `json:"assignment_date"`
	CreatedAt      time.Time `json:"created_at"`
}
