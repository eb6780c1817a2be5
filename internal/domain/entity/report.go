package entity

import "time"

// DoctorStatistics aggregates one doctor's workload over all time.
type DoctorStatistics struct {
	DoctorName        string
	UniquePatients    int64
	TotalAppointments int64
}

// CalendarSummary counts clinic-wide appointments for the current month and week.
type CalendarSummary struct {
	Today             time.Time
	MonthStart        time.Time
	MonthEnd          time.Time
	WeekStart         time.Time
	MonthAppointments int64
	WeekAppointments  int64
}
