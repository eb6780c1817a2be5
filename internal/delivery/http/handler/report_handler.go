package handler

import (
	"net/http"

	"clinic-management/internal/usecase"
	"clinic-management/pkg/response"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
}

func NewReportHandler(reportUsecase usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{
		reportUsecase: reportUsecase,
	}
}

func (h *ReportHandler) GetDoctorStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reportUsecase.GetDoctorStatistics(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctor statistics")
		return
	}

	response.Success(w, http.StatusOK, "Doctor statistics retrieved successfully", stats)
}

func (h *ReportHandler) GetCalendarSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportUsecase.GetCalendarSummary(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get calendar summary")
		return
	}

	response.Success(w, http.StatusOK, "Calendar summary retrieved successfully", summary)
}
