package entity

import "time"

// PatientStatus represents where a patient is in their course of care
type PatientStatus string

const (
	PatientStatusActive    PatientStatus = "Active"
	PatientStatusCompleted PatientStatus = "Completed"
)

// Patient is a self-registered clinic patient. Removing a patient removes its
// appointments and doctor assignments through ON DELETE CASCADE.
type Patient struct {
	ID            uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string        `gorm:"type:varchar(100);not null;index" json:"name"`
	Mobile        string        `gorm:"type:varchar(20);uniqueIndex;not null" json:"mobile"`
	DateOfBirth   time.Time     `gorm:"type:date;not null" json:"date_of_birth"`
	ReasonToVisit string        `gorm:"type:text;not null" json:"reason_to_visit"`
	Status        PatientStatus `gorm:"type:varchar(20);not null;default:'Active';index" json:"status"`
	Prescriptions *string       `gorm:"type:text" json:"prescriptions,omitempty"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments      []Appointment      `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"appointments,omitempty"`
	DoctorAssignments []DoctorAssignment `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"doctor_assignments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// IsActive checks if the patient is still under care
func (p *Patient) IsActive() bool {
	return p.Status == PatientStatusActive
}

// Complete closes the patient's case
func (p *Patient) Complete() {
	p.Status = PatientStatusCompleted
}
