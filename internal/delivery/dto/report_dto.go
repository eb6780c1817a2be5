package dto

// Response DTOs

type DoctorStatisticsResponse struct {
	DoctorName        string `json:"doctor_name"`
	UniquePatients    int64  `json:"unique_patients"`
	TotalAppointments int64  `json:"total_appointments"`
}

type CalendarSummaryResponse struct {
	Today             string `json:"today"`
	MonthStart        string `json:"month_start"`
	MonthEnd          string `json:"month_end"`
	WeekStart         string `json:"week_start"`
	MonthAppointments int64  `json:"month_appointments"`
	WeekAppointments  int64  `json:"week_appointments"`
}
