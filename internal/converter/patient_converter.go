package converter

import (
	"clinic-management/internal/delivery/dto"
	"clinic-management/internal/domain/entity"
	"clinic-management/pkg/dateutil"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:            patient.ID,
		Name:          patient.Name,
		Mobile:        patient.Mobile,
		DateOfBirth:   patient.DateOfBirth.Format(dateutil.Layout),
		ReasonToVisit: patient.ReasonToVisit,
		Status:        string(patient.Status),
		Prescriptions: patient.Prescriptions,
		CreatedAt:     patient.CreatedAt,
		UpdatedAt:     patient.UpdatedAt,
	}
}

// PatientsToResponses converts patients, attaching today's doctors when known
func PatientsToResponses(patients []entity.Patient, doctorsToday map[uint][]string) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
		if doctorsToday != nil {
			responses[i].AssignedDoctorsToday = doctorsToday[patients[i].ID]
		}
	}
	return responses
}

// AssignmentToResponse converts a DoctorAssignment entity to AssignmentResponse DTO
func AssignmentToResponse(assignment *entity.DoctorAssignment) *dto.AssignmentResponse {
	if assignment == nil {
		return nil
	}

	return &dto.AssignmentResponse{
		ID:             assignment.ID,
		PatientID:      assignment.PatientID,
		DoctorName:     assignment.DoctorName,
		AssignmentDate: assignment.AssignmentDate.Format(dateutil.Layout),
		CreatedAt:      assignment.CreatedAt,
	}
}
