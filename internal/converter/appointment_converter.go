package converter

import (
	"fmt"
	"time"

	"clinic-management/internal/delivery/dto"
	"clinic-management/internal/domain/entity"
	"clinic-management/pkg/dateutil"

	"gorm.io/datatypes"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO.
// PatientName is filled only when the Patient association is loaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:                 appointment.ID,
		PatientID:          appointment.PatientID,
		PatientName:        appointment.Patient.Name,
		DoctorName:         appointment.DoctorName,
		Date:               appointment.Date.Format(dateutil.Layout),
		Time:               FormatTimeOfDay(appointment.Time),
		Reason:             appointment.Reason,
		Status:             string(appointment.Status),
		CancellationReason: appointment.CancellationReason,
		CreatedAt:          appointment.CreatedAt,
		UpdatedAt:          appointment.UpdatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

// FormatTimeOfDay renders a time-of-day as HH:MM.
func FormatTimeOfDay(t datatypes.Time) string {
	d := time.Duration(t)
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
