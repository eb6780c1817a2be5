package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"clinic-management/internal/domain/entity"
	"clinic-management/internal/usecase"
	"clinic-management/pkg/response"
	"clinic-management/pkg/validator"

	"github.com/gorilla/mux"
)

var errInvalidID = errors.New("invalid id")

// decodeAndValidate reads the JSON body into req and runs struct validation,
// writing the 400 response itself when either fails.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}

	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

func pathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// writeError maps usecase errors onto HTTP statuses. Anything unrecognised is
// a storage failure already logged by the usecase.
func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidDateFormat),
		errors.Is(err, usecase.ErrInvalidTimeFormat),
		errors.Is(err, usecase.ErrRequiredFieldMissing),
		errors.Is(err, usecase.ErrDateOfBirthOutOfRange),
		errors.Is(err, usecase.ErrAppointmentDateInPast),
		errors.Is(err, entity.ErrCancellationReasonRequired):
		response.BadRequest(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrInvalidToken),
		errors.Is(err, usecase.ErrSessionNotFound):
		response.Unauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrAppointmentNotOwned),
		errors.Is(err, usecase.ErrPatientNotAssigned):
		response.Forbidden(w, err.Error())

	case errors.Is(err, usecase.ErrPatientNotFound),
		errors.Is(err, usecase.ErrDoctorNotFound),
		errors.Is(err, usecase.ErrAppointmentNotFound),
		errors.Is(err, usecase.ErrAuditLogNotFound):
		response.NotFound(w, err.Error())

	case errors.Is(err, usecase.ErrDuplicateMobile),
		errors.Is(err, usecase.ErrDuplicateAssignment),
		errors.Is(err, usecase.ErrDailyDoctorCapReached),
		errors.Is(err, usecase.ErrPatientNotActive),
		errors.Is(err, usecase.ErrAppointmentNotScheduled),
		errors.Is(err, usecase.ErrConfirmationNotPending),
		errors.Is(err, entity.ErrInvalidStatusTransition):
		response.Conflict(w, err.Error())

	default:
		response.InternalServerError(w, fallback)
	}
}
