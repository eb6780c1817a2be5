package entity

import "time"

// MaxDoctorsPerPatientPerDay caps the distinct doctors treating one patient on one date.
const MaxDoctorsPerPatientPerDay = 2

// DoctorAssignment records that a doctor treats a patient on a date.
// Rows are append-only; a doctor appears at most once per patient and date.
type DoctorAssignment struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID      uint      `gorm:"not null;uniqueIndex:idx_assignment_patient_doctor_date,priority:1" json:"patient_id"`
	DoctorName     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_assignment_patient_doctor_date,priority:3;index:idx_assignment_doctor" json:"doctor_name"`
	AssignmentDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_assignment_patient_doctor_date,priority:2" json:"assignment_date"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User    `gorm:"foreignKey:DoctorName;references:Username" json:"-"`
}

func (DoctorAssignment) TableName() string {
	return "doctor_assignments"
}
