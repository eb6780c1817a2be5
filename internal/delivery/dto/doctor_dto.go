package dto

// Response DTOs

type DoctorResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// DoctorDashboardResponse is a doctor's view of one day.
type DoctorDashboardResponse struct {
	Date         string                `json:"date"`
	Patients     []PatientResponse     `json:"patients"`
	Appointments []AppointmentResponse `json:"appointments"`
}
