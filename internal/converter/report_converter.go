package converter

import (
	"clinic-management/internal/delivery/dto"
	"clinic-management/internal/domain/entity"
	"clinic-management/pkg/dateutil"
)

func DoctorStatisticsToResponses(stats []entity.DoctorStatistics) []dto.DoctorStatisticsResponse {
	responses := make([]dto.DoctorStatisticsResponse, len(stats))
	for i, s := range stats {
		responses[i] = dto.DoctorStatisticsResponse{
			DoctorName:        s.DoctorName,
			UniquePatients:    s.UniquePatients,
			TotalAppointments: s.TotalAppointments,
		}
	}
	return responses
}

func CalendarSummaryToResponse(summary *entity.CalendarSummary) *dto.CalendarSummaryResponse {
	if summary == nil {
		return nil
	}

	return &dto.CalendarSummaryResponse{
		Today:             summary.Today.Format(dateutil.Layout),
		MonthStart:        summary.MonthStart.Format(dateutil.Layout),
		MonthEnd:          summary.MonthEnd.Format(dateutil.Layout),
		WeekStart:         summary.WeekStart.Format(dateutil.Layout),
		MonthAppointments: summary.MonthAppointments,
		WeekAppointments:  summary.WeekAppointments,
	}
}
