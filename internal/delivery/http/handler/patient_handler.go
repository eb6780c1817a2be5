package handler

import (
	"net/http"

	"clinic-management/internal/delivery/dto"
	"clinic-management/internal/delivery/http/middleware"
	"clinic-management/internal/usecase"
	"clinic-management/pkg/response"
	"clinic-management/pkg/validator"
)

type PatientHandler struct {
	patientUsecase    usecase.PatientUsecase
	assignmentUsecase usecase.AssignmentUsecase
	validator         *validator.CustomValidator
}

func NewPatientHandler(
	patientUsecase usecase.PatientUsecase,
	assignmentUsecase usecase.AssignmentUsecase,
	validator *validator.CustomValidator,
) *PatientHandler {
	return &PatientHandler{
		patientUsecase:    patientUsecase,
		assignmentUsecase: assignmentUsecase,
		validator:         validator,
	}
}

// Register handles public patient self-registration
// @Summary Register a patient
// @Tags Patients
// @Accept json
// @Produce json
// @Param request body dto.RegisterPatientRequest true "Register Patient Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /patients/register [post]
func (h *PatientHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterPatientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.RegisterPatient(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to register patient")
		return
	}

	response.Success(w, http.StatusCreated, "Patient registered successfully", patient)
}

func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.ListPatients(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	patientID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	if err := h.patientUsecase.DeletePatient(r.Context(), session.Username, patientID); err != nil {
		writeError(w, err, "Failed to delete patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}

func (h *PatientHandler) AssignDoctor(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	patientID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	var req dto.AssignDoctorRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	assignment, err := h.assignmentUsecase.AssignDoctor(r.Context(), session.Username, patientID, &req)
	if err != nil {
		writeError(w, err, "Failed to assign doctor")
		return
	}

	response.Success(w, http.StatusCreated, "Doctor assigned successfully", assignment)
}

// Doctor-facing patient care

func (h *PatientHandler) GetMyPatients(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	patients, err := h.patientUsecase.GetMyPatients(r.Context(), session.Username)
	if err != nil {
		writeError(w, err, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) UpdatePrescriptions(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	patientID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	var req dto.UpdatePrescriptionsRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.UpdatePrescriptions(r.Context(), session.Username, patientID, &req)
	if err != nil {
		writeError(w, err, "Failed to update prescriptions")
		return
	}

	response.Success(w, http.StatusOK, "Prescriptions updated successfully", patient)
}

func (h *PatientHandler) RequestCompletion(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	patientID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	confirmation, err := h.patientUsecase.RequestCompletion(r.Context(), session, patientID)
	if err != nil {
		writeError(w, err, "Failed to request completion")
		return
	}

	response.Success(w, http.StatusOK, "Confirm to mark the patient completed", confirmation)
}

func (h *PatientHandler) ConfirmCompletion(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	patientID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	patient, err := h.patientUsecase.ConfirmCompletion(r.Context(), session, patientID)
	if err != nil {
		writeError(w, err, "Failed to complete patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient marked completed", patient)
}

func (h *PatientHandler) CancelCompletion(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	patientID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	confirmation, err := h.patientUsecase.CancelCompletion(r.Context(), session, patientID)
	if err != nil {
		writeError(w, err, "Failed to cancel completion")
		return
	}

	response.Success(w, http.StatusOK, "Completion cancelled", confirmation)
}
