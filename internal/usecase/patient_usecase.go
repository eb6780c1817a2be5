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

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DateOfBirthWindowDays bounds how far back a date of birth may lie.
const DateOfBirthWindowDays = 30

var (
	ErrRequiredFieldMissing  = errors.New("all fields are required")
	ErrDuplicateMobile       = errors.New("this mobile number is already registered")
	ErrDateOfBirthOutOfRange = errors.New("date of birth must be within the last 30 days")
	ErrPatientNotFound       = errors.New("patient not found")
	ErrPatientNotAssigned    = errors.New("patient is not assigned to this doctor")
	ErrPatientNotActive      = errors.New("patient is not active")
)

type PatientUsecase interface {
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error)
	ListPatients(ctx context.Context) (*dto.PatientListResponse, error)
	DeletePatient(ctx context.Context, actor string, patientID uint) error

	GetMyPatients(ctx context.Context, doctorName string) (*dto.PatientListResponse, error)
	UpdatePrescriptions(ctx context.Context, doctorName string, patientID uint, req *dto.UpdatePrescriptionsRequest) (*dto.PatientResponse, error)
	RequestCompletion(ctx context.Context, session *entity.Session, patientID uint) (*dto.ConfirmationResponse, error)
	ConfirmCompletion(ctx context.Context, session *entity.Session, patientID uint) (*dto.PatientResponse, error)
	CancelCompletion(ctx context.Context, session *entity.Session, patientID uint) (*dto.ConfirmationResponse, error)
}

type patientUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	clock          clock
	patientRepo    repository.PatientRepository
	assignmentRepo repository.DoctorAssignmentRepository
	sessionService service.SessionService
	auditService   service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	loc *time.Location,
	patientRepo repository.PatientRepository,
	assignmentRepo repository.DoctorAssignmentRepository,
	sessionService service.SessionService,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:             db,
		log:            log,
		clock:          newClock(loc),
		patientRepo:    patientRepo,
		assignmentRepo: assignmentRepo,
		sessionService: sessionService,
		auditService:   auditService,
	}
}

func (u *patientUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error) {
	name := strings.TrimSpace(req.Name)
	mobile := strings.TrimSpace(req.Mobile)
	reason := strings.TrimSpace(req.ReasonToVisit)
	if name == "" || mobile == "" || reason == "" || strings.TrimSpace(req.DateOfBirth) == "" {
		return nil, ErrRequiredFieldMissing
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	today := u.clock.today()
	if dob.Before(today.AddDate(0, 0, -DateOfBirthWindowDays)) || dob.After(today) {
		return nil, ErrDateOfBirthOutOfRange
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.patientRepo.FindByMobile(ctx, tx, mobile)
	if err != nil {
		u.log.Warnf("Failed to find patient by mobile: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateMobile
	}

	patient := &entity.Patient{
		Name:          name,
		Mobile:        mobile,
		DateOfBirth:   dob,
		ReasonToVisit: reason,
		Status:        entity.PatientStatusActive,
	}

	if err := u.patientRepo.Create(ctx, tx, patient); err != nil {
		if isDuplicateKeyError(err, "mobile") {
			return nil, ErrDuplicateMobile
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, "", entity.AuditActionPatientRegister, "patient", patient.ID, converter.PatientToResponse(patient)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Patient %d registered", patient.ID)
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) ListPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find all patients: %+v", err)
		return nil, err
	}

	ids := make([]uint, len(patients))
	for i, p := range patients {
		ids[i] = p.ID
	}

	doctorsToday, err := u.assignmentRepo.FindDoctorNamesForPatients(ctx, u.db, ids, u.clock.today())
	if err != nil {
		u.log.Warnf("Failed to find today's assignments: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients, doctorsToday),
		Total:    len(patients),
	}, nil
}

// DeletePatient removes the patient. The store cascades the delete to the
// patient's appointments and doctor assignments.
func (u *patientUsecase) DeletePatient(ctx context.Context, actor string, patientID uint) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(ctx, tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	rows, err := u.patientRepo.Delete(ctx, tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrPatientNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionPatientDelete, "patient", patientID, converter.PatientToResponse(patient)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Patient %d deleted by %s", patientID, actor)
	return nil
}

func (u *patientUsecase) GetMyPatients(ctx context.Context, doctorName string) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindActiveAssignedTo(ctx, u.db, doctorName, nil)
	if err != nil {
		u.log.Warnf("Failed to find assigned patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients, nil),
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) UpdatePrescriptions(ctx context.Context, doctorName string, patientID uint, req *dto.UpdatePrescriptionsRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.findAssignedPatient(ctx, tx, doctorName, patientID)
	if err != nil {
		return nil, err
	}

	before := patient.Prescriptions
	if err := u.patientRepo.UpdatePrescriptions(ctx, tx, patientID, req.Prescriptions); err != nil {
		u.log.Warnf("Failed to update prescriptions: %+v", err)
		return nil, err
	}
	patient.Prescriptions = &req.Prescriptions

	if err := u.auditService.LogUpdate(ctx, tx, doctorName, entity.AuditActionPatientPrescription, "patient", patientID, before, req.Prescriptions); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

// RequestCompletion marks the completion as pending in the doctor's session.
// Nothing changes in the store until ConfirmCompletion.
func (u *patientUsecase) RequestCompletion(ctx context.Context, session *entity.Session, patientID uint) (*dto.ConfirmationResponse, error) {
	patient, err := u.findAssignedPatient(ctx, u.db, session.Username, patientID)
	if err != nil {
		return nil, err
	}
	if !patient.IsActive() {
		return nil, ErrPatientNotActive
	}

	if err := u.sessionService.RequestConfirmation(ctx, session.ID, entity.ConfirmActionCompletePatient, patientID); err != nil {
		return nil, err
	}
	return confirmationResponse(entity.ConfirmActionCompletePatient, patientID, entity.ConfirmationPending), nil
}

func (u *patientUsecase) ConfirmCompletion(ctx context.Context, session *entity.Session, patientID uint) (*dto.PatientResponse, error) {
	if err := u.sessionService.EnsurePending(ctx, session.ID, entity.ConfirmActionCompletePatient, patientID); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.findAssignedPatient(ctx, tx, session.Username, patientID)
	if err != nil {
		return nil, err
	}

	rows, err := u.patientRepo.UpdateStatus(ctx, tx, patientID, entity.PatientStatusActive, entity.PatientStatusCompleted)
	if err != nil {
		u.log.Warnf("Failed to complete patient: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrPatientNotActive
	}
	patient.Complete()

	if err := u.auditService.LogUpdate(ctx, tx, session.Username, entity.AuditActionPatientComplete, "patient", patientID, entity.PatientStatusActive, entity.PatientStatusCompleted); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	err = u.sessionService.ResolveConfirmation(ctx, session.ID, entity.ConfirmActionCompletePatient, patientID, entity.ConfirmationConfirmed)
	if err != nil {
		u.log.Warnf("Failed to record completion confirmation: %+v", err)
	}

	u.log.Infof("Patient %d completed by %s", patientID, session.Username)
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) CancelCompletion(ctx context.Context, session *entity.Session, patientID uint) (*dto.ConfirmationResponse, error) {
	err := u.sessionService.ResolveConfirmation(ctx, session.ID, entity.ConfirmActionCompletePatient, patientID, entity.ConfirmationCancelled)
	if err != nil {
		return nil, err
	}
	return confirmationResponse(entity.ConfirmActionCompletePatient, patientID, entity.ConfirmationCancelled), nil
}

// findAssignedPatient loads the patient and checks the doctor was ever
// assigned to them.
func (u *patientUsecase) findAssignedPatient(ctx context.Context, db *gorm.DB, doctorName string, patientID uint) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(ctx, db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	assigned, err := u.assignmentRepo.ExistsForDoctor(ctx, db, patientID, doctorName)
	if err != nil {
		u.log.Warnf("Failed to check assignment: %+v", err)
		return nil, err
	}
	if !assigned {
		return nil, ErrPatientNotAssigned
	}

	return patient, nil
}
