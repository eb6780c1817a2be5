package usecase

import (
	"context"
	"time"

	"clinic-management/internal/converter"
	"clinic-management/internal/delivery/dto"
	"clinic-management/internal/domain/entity"
	"clinic-management/internal/domain/repository"
	"clinic-management/pkg/dateutil"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ReportUsecase interface {
	GetDoctors(ctx context.Context) ([]dto.DoctorResponse, error)
	GetDoctorStatistics(ctx context.Context) ([]dto.DoctorStatisticsResponse, error)
	GetCalendarSummary(ctx context.Context) (*dto.CalendarSummaryResponse, error)
	GetDoctorDashboard(ctx context.Context, doctorName string) (*dto.DoctorDashboardResponse, error)
}

type reportUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	clock           clock
	userRepo        repository.UserRepository
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	assignmentRepo  repository.DoctorAssignmentRepository
}

func NewReportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	loc *time.Location,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	assignmentRepo repository.DoctorAssignmentRepository,
) ReportUsecase {
	return &reportUsecase{
		db:              db,
		log:             log,
		clock:           newClock(loc),
		userRepo:        userRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		assignmentRepo:  assignmentRepo,
	}
}

func (u *reportUsecase) GetDoctors(ctx context.Context) ([]dto.DoctorResponse, error) {
	doctors, err := u.userRepo.FindAllByRole(ctx, u.db, entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}
	return converter.DoctorsToResponses(doctors), nil
}

// GetDoctorStatistics counts, per doctor and over all time, the distinct
// patients assigned and the appointments booked in any status.
func (u *reportUsecase) GetDoctorStatistics(ctx context.Context) ([]dto.DoctorStatisticsResponse, error) {
	doctors, err := u.userRepo.FindAllByRole(ctx, u.db, entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	stats := make([]entity.DoctorStatistics, 0, len(doctors))
	for _, doctor := range doctors {
		patients, err := u.assignmentRepo.CountDistinctPatients(ctx, u.db, doctor.Username)
		if err != nil {
			u.log.Warnf("Failed to count patients for %s: %+v", doctor.Username, err)
			return nil, err
		}

		appointments, err := u.appointmentRepo.CountByDoctor(ctx, u.db, doctor.Username)
		if err != nil {
			u.log.Warnf("Failed to count appointments for %s: %+v", doctor.Username, err)
			return nil, err
		}

		stats = append(stats, entity.DoctorStatistics{
			DoctorName:        doctor.Username,
			UniquePatients:    patients,
			TotalAppointments: appointments,
		})
	}

	return converter.DoctorStatisticsToResponses(stats), nil
}

// GetCalendarSummary counts appointments dated in the current month, and the
// subset dated from this week's Monday (clamped to the month start) up to today.
func (u *reportUsecase) GetCalendarSummary(ctx context.Context) (*dto.CalendarSummaryResponse, error) {
	today := u.clock.today()
	monthStart, monthEnd := dateutil.MonthRange(today)

	weekStart := dateutil.WeekStart(today)
	if weekStart.Before(monthStart) {
		weekStart = monthStart
	}

	monthCount, err := u.appointmentRepo.CountBetween(ctx, u.db, monthStart, monthEnd)
	if err != nil {
		u.log.Warnf("Failed to count month appointments: %+v", err)
		return nil, err
	}

	weekCount, err := u.appointmentRepo.CountBetween(ctx, u.db, weekStart, today)
	if err != nil {
		u.log.Warnf("Failed to count week appointments: %+v", err)
		return nil, err
	}

	return converter.CalendarSummaryToResponse(&entity.CalendarSummary{
		Today:             today,
		MonthStart:        monthStart,
		MonthEnd:          monthEnd,
		WeekStart:         weekStart,
		MonthAppointments: monthCount,
		WeekAppointments:  weekCount,
	}), nil
}

// GetDoctorDashboard shows today's Active patients assigned to the doctor and
// today's Scheduled appointments ordered by time.
func (u *reportUsecase) GetDoctorDashboard(ctx context.Context, doctorName string) (*dto.DoctorDashboardResponse, error) {
	today := u.clock.today()

	patients, err := u.patientRepo.FindActiveAssignedTo(ctx, u.db, doctorName, &today)
	if err != nil {
		u.log.Warnf("Failed to find today's patients: %+v", err)
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindByDoctorAndDate(ctx, u.db, doctorName, today, entity.AppointmentStatusScheduled)
	if err != nil {
		u.log.Warnf("Failed to find today's appointments: %+v", err)
		return nil, err
	}

	return &dto.DoctorDashboardResponse{
		Date:         today.Format(dateutil.Layout),
		Patients:     converter.PatientsToResponses(patients, nil),
		Appointments: converter.AppointmentsToResponses(appointments),
	}, nil
}
