package handler

import (
	"net/http"

	"clinic-management/internal/delivery/http/middleware"
	"clinic-management/internal/usecase"
	"clinic-management/pkg/response"
)

type DoctorHandler struct {
	reportUsecase usecase.ReportUsecase
}

func NewDoctorHandler(reportUsecase usecase.ReportUsecase) *DoctorHandler {
	return &DoctorHandler{
		reportUsecase: reportUsecase,
	}
}

func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.reportUsecase.GetDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// GetDashboard shows the logged-in doctor's patients and appointments for today.
func (h *DoctorHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	dashboard, err := h.reportUsecase.GetDoctorDashboard(r.Context(), session.Username)
	if err != nil {
		response.InternalServerError(w, "Failed to get dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}
