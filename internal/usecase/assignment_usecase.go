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
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrDuplicateAssignment   = errors.New("doctor is already assigned to this patient on this date")
	ErrDailyDoctorCapReached = errors.New("patient already has the maximum number of doctors for this date")
)

type AssignmentUsecase interface {
	// AssignDoctor assigns a doctor to a patient on the requested date, or
	// today when the request carries none.
	AssignDoctor(ctx context.Context, actor string, patientID uint, req *dto.AssignDoctorRequest) (*dto.AssignmentResponse, error)
	// AssignSelfFromAppointment adds the appointment's patient to the doctor's
	// own list on the appointment date.
	AssignSelfFromAppointment(ctx context.Context, doctorName string, appointmentID uint) (*dto.AssignmentResponse, error)
}

type assignmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	clock           clock
	locker          *service.AssignmentLocker
	userRepo        repository.UserRepository
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	assignmentRepo  repository.DoctorAssignmentRepository
	auditService    service.AuditService
	metrics         *metrics.Metrics
}

func NewAssignmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	loc *time.Location,
	locker *service.AssignmentLocker,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	assignmentRepo repository.DoctorAssignmentRepository,
	auditService service.AuditService,
	metrics *metrics.Metrics,
) AssignmentUsecase {
	return &assignmentUsecase{
		db:              db,
		log:             log,
		clock:           newClock(loc),
		locker:          locker,
		userRepo:        userRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		assignmentRepo:  assignmentRepo,
		auditService:    auditService,
		metrics:         metrics,
	}
}

func (u *assignmentUsecase) AssignDoctor(ctx context.Context, actor string, patientID uint, req *dto.AssignDoctorRequest) (*dto.AssignmentResponse, error) {
	date := u.clock.today()
	if strings.TrimSpace(req.Date) != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	return u.assign(ctx, actor, patientID, strings.TrimSpace(req.DoctorName), date)
}

func (u *assignmentUsecase) AssignSelfFromAppointment(ctx context.Context, doctorName string, appointmentID uint) (*dto.AssignmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorName != doctorName {
		return nil, ErrAppointmentNotOwned
	}
	if !appointment.IsScheduled() {
		return nil, ErrAppointmentNotScheduled
	}

	return u.assign(ctx, doctorName, appointment.PatientID, doctorName, appointment.Date)
}

// assign enforces the daily rule: a doctor appears once per (patient, date),
// and at most MaxDoctorsPerPatientPerDay distinct doctors treat the patient
// that day. A full day reports the cap even for an already assigned doctor.
// The unique index on (patient, date, doctor) backs the duplicate rule
// across processes.
func (u *assignmentUsecase) assign(ctx context.Context, actor string, patientID uint, doctorName string, date time.Time) (*dto.AssignmentResponse, error) {
	unlock := u.locker.Lock(patientID, date)
	defer unlock()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(ctx, tx, patientID)
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

	doctors, err := u.assignmentRepo.FindDoctorNames(ctx, tx, patientID, date)
	if err != nil {
		u.log.Warnf("Failed to find assigned doctors: %+v", err)
		return nil, err
	}
	if len(doctors) >= entity.MaxDoctorsPerPatientPerDay {
		u.metrics.AssignmentRejections.WithLabelValues("daily_cap").Inc()
		return nil, ErrDailyDoctorCapReached
	}

	exists, err := u.assignmentRepo.Exists(ctx, tx, patientID, doctorName, date)
	if err != nil {
		u.log.Warnf("Failed to check assignment: %+v", err)
		return nil, err
	}
	if exists {
		u.metrics.AssignmentRejections.WithLabelValues("duplicate").Inc()
		return nil, ErrDuplicateAssignment
	}

	assignment := &entity.DoctorAssignment{
		PatientID:      patientID,
		DoctorName:     doctorName,
		AssignmentDate: date,
	}
	if err := u.assignmentRepo.Create(ctx, tx, assignment); err != nil {
		if isDuplicateKeyError(err, "idx_assignment_patient_doctor_date") {
			u.metrics.AssignmentRejections.WithLabelValues("duplicate").Inc()
			return nil, ErrDuplicateAssignment
		}
		u.log.Warnf("Failed to create assignment: %+v", err)
		return nil, err
	}

	response := converter.AssignmentToResponse(assignment)
	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionAssignmentCreate, "doctor_assignment", assignment.ID, response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Doctor %s assigned to patient %d on %s", doctorName, patientID, response.AssignmentDate)
	return response, nil
}
