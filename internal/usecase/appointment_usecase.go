package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-management/internal/converter"
	"clinic-management/internal/delivery/dto"
	"clinic-management/internal/domain/entity"
	"clinic-management/internal/domain/repository"
	"clinic-management/internal/service"
	"clinic-management/pkg/metrics"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrAppointmentDateInPast   = errors.New("appointment date cannot be in the past")
	ErrAppointmentNotOwned     = errors.New("appointment belongs to another doctor")
	ErrAppointmentNotScheduled = errors.New("appointment is not scheduled")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, actor string, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetPendingCancellations(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetMyAppointments(ctx context.Context, doctorName string) (*dto.AppointmentListResponse, error)
	RequestCancellation(ctx context.Context, doctorName string, appointmentID uint, req *dto.RequestCancellationRequest) (*dto.AppointmentResponse, error)
	ApproveCancellation(ctx context.Context, actor string, appointmentID uint) (*dto.AppointmentResponse, error)
	DenyCancellation(ctx context.Context, actor string, appointmentID uint) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	clock           clock
	userRepo        repository.UserRepository
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	assignmentRepo  repository.DoctorAssignmentRepository
	auditService    service.AuditService
	metrics         *metrics.Metrics
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	loc *time.Location,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	assignmentRepo repository.DoctorAssignmentRepository,
	auditService service.AuditService,
	metrics *metrics.Metrics,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		clock:           newClock(loc),
		userRepo:        userRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		assignmentRepo:  assignmentRepo,
		auditService:    auditService,
		metrics:         metrics,
	}
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, actor string, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if date.Before(u.clock.today()) {
		return nil, ErrAppointmentDateInPast
	}

	timeOfDay, err := parseTimeOfDay(req.Time)
	if err != nil {
		return nil, err
	}

	doctorName := strings.TrimSpace(req.DoctorName)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(ctx, tx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.userRepo.FindByUsernameAndRole(ctx, tx, doctorName, entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointment := &entity.Appointment{
		PatientID:  patient.ID,
		DoctorName: doctor.Username,
		Date:       date,
		Time:       timeOfDay,
		Reason:     strings.TrimSpace(req.Reason),
		Status:     entity.AppointmentStatusScheduled,
	}
	if err := u.appointmentRepo.Create(ctx, tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}
	appointment.Patient = *patient

	response := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionAppointmentCreate, "appointment", appointment.ID, response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.metrics.AppointmentTransitions.WithLabelValues(string(entity.AppointmentStatusScheduled)).Inc()
	u.log.Infof("Appointment %d scheduled with %s on %s", appointment.ID, doctorName, response.Date)
	return response, nil
}

func (u *appointmentUsecase) GetPendingCancellations(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByStatus(ctx, u.db, entity.AppointmentStatusCancellationRequested)
	if err != nil {
		u.log.Warnf("Failed to find cancellation requests: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// GetMyAppointments lists the doctor's open appointments, each flagged with
// whether the patient is already on the doctor's list for that date.
func (u *appointmentUsecase) GetMyAppointments(ctx context.Context, doctorName string) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByDoctor(ctx, u.db, doctorName,
		entity.AppointmentStatusScheduled, entity.AppointmentStatusCancellationRequested)
	if err != nil {
		u.log.Warnf("Failed to find doctor appointments: %+v", err)
		return nil, err
	}

	responses := converter.AppointmentsToResponses(appointments)
	for i, appointment := range appointments {
		assigned, err := u.assignmentRepo.Exists(ctx, u.db, appointment.PatientID, doctorName, appointment.Date)
		if err != nil {
			u.log.Warnf("Failed to check assignment: %+v", err)
			return nil, err
		}
		responses[i].AssignedToMe = &assigned
	}

	return &dto.AppointmentListResponse{
		Appointments: responses,
		Total:        len(responses),
	}, nil
}

func (u *appointmentUsecase) RequestCancellation(ctx context.Context, doctorName string, appointmentID uint, req *dto.RequestCancellationRequest) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, doctorName, appointmentID, entity.AuditActionCancellationRequest, func(a *entity.Appointment) error {
		if a.DoctorName != doctorName {
			return ErrAppointmentNotOwned
		}
		return a.RequestCancellation(req.Reason)
	})
}

func (u *appointmentUsecase) ApproveCancellation(ctx context.Context, actor string, appointmentID uint) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, actor, appointmentID, entity.AuditActionCancellationApprove, func(a *entity.Appointment) error {
		return a.ApproveCancellation()
	})
}

func (u *appointmentUsecase) DenyCancellation(ctx context.Context, actor string, appointmentID uint) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, actor, appointmentID, entity.AuditActionCancellationDeny, func(a *entity.Appointment) error {
		return a.DenyCancellation()
	})
}

// transition loads the appointment, applies change and writes the result
// only if the stored status is still the one that was read.
func (u *appointmentUsecase) transition(ctx context.Context, actor string, appointmentID uint, action string, change func(*entity.Appointment) error) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(ctx, tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	from := appointment.Status
	if err := change(appointment); err != nil {
		return nil, err
	}

	rows, err := u.appointmentRepo.UpdateStatus(ctx, tx, appointment, from)
	if err != nil {
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, entity.ErrInvalidStatusTransition
	}

	if err := u.auditService.LogUpdate(ctx, tx, actor, action, "appointment", appointment.ID, from, appointment.Status); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.metrics.AppointmentTransitions.WithLabelValues(string(appointment.Status)).Inc()
	u.log.Infof("Appointment %d moved from %s to %s by %s", appointment.ID, from, appointment.Status, actor)
	return converter.AppointmentToResponse(appointment), nil
}
