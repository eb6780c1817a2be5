package handler

import (
	"net/http"

	"clinic-management/internal/delivery/dto"
	"clinic-management/internal/delivery/http/middleware"
	"clinic-management/internal/usecase"
	"clinic-management/pkg/response"
	"clinic-management/pkg/validator"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	assignmentUsecase  usecase.AssignmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(
	appointmentUsecase usecase.AppointmentUsecase,
	assignmentUsecase usecase.AssignmentUsecase,
	validator *validator.CustomValidator,
) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		assignmentUsecase:  assignmentUsecase,
		validator:          validator,
	}
}

// CreateAppointment handles appointment scheduling by an admin
// @Summary Schedule an appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Create Appointment Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/appointments [post]
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	var req dto.CreateAppointmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), session.Username, &req)
	if err != nil {
		writeError(w, err, "Failed to create appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) GetPendingCancellations(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetPendingCancellations(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get cancellation requests")
		return
	}

	response.Success(w, http.StatusOK, "Cancellation requests retrieved successfully", appointments)
}

func (h *AppointmentHandler) ApproveCancellation(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	appointmentID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentUsecase.ApproveCancellation(r.Context(), session.Username, appointmentID)
	if err != nil {
		writeError(w, err, "Failed to approve cancellation")
		return
	}

	response.Success(w, http.StatusOK, "Cancellation approved", appointment)
}

func (h *AppointmentHandler) DenyCancellation(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	appointmentID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentUsecase.DenyCancellation(r.Context(), session.Username, appointmentID)
	if err != nil {
		writeError(w, err, "Failed to deny cancellation")
		return
	}

	response.Success(w, http.StatusOK, "Cancellation denied", appointment)
}

func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	appointments, err := h.appointmentUsecase.GetMyAppointments(r.Context(), session.Username)
	if err != nil {
		writeError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) RequestCancellation(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	appointmentID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	var req dto.RequestCancellationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.RequestCancellation(r.Context(), session.Username, appointmentID, &req)
	if err != nil {
		writeError(w, err, "Failed to request cancellation")
		return
	}

	response.Success(w, http.StatusOK, "Cancellation requested", appointment)
}

func (h *AppointmentHandler) AssignSelf(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	appointmentID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	assignment, err := h.assignmentUsecase.AssignSelfFromAppointment(r.Context(), session.Username, appointmentID)
	if err != nil {
		writeError(w, err, "Failed to assign patient")
		return
	}

	response.Success(w, http.StatusCreated, "Patient added to your list", assignment)
}
