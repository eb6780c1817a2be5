package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"clinic-management/internal/delivery/dto"
	"clinic-management/internal/domain/entity"
	domainRepo "clinic-management/internal/domain/repository"
	"clinic-management/internal/repository"
	"clinic-management/internal/service"
	clinictestutil "clinic-management/internal/testutil"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAssignDoctor_DailyRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patient, err := env.patients.RegisterPatient(ctx, registerRequest("9000000001", "2026-03-10"))
	require.NoError(t, err)

	assign := func(doctor, date string) (*dto.AssignmentResponse, error) {
		return env.assignments.AssignDoctor(ctx, "admin", patient.ID, &dto.AssignDoctorRequest{DoctorName: doctor, Date: date})
	}

	first, err := assign("Dr. Das", "")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-18", first.AssignmentDate)

	_, err = assign("Dr. Das", "")
	assert.ErrorIs(t, err, ErrDuplicateAssignment)

	_, err = assign("Dr. Ghosh", "2026-03-18")
	require.NoError(t, err)

	_, err = assign("Dr. Santra", "")
	assert.ErrorIs(t, err, ErrDailyDoctorCapReached)

	// A full day reports the cap, even for a doctor already assigned.
	_, err = assign("Dr. Ghosh", "")
	assert.ErrorIs(t, err, ErrDailyDoctorCapReached)

	// Another date starts fresh.
	_, err = assign("Dr. Santra", "2026-03-19")
	require.NoError(t, err)

	assert.Equal(t, int64(3), env.countRows(t, &entity.DoctorAssignment{}))
	assert.Equal(t, float64(2), testutil.ToFloat64(env.metrics.AssignmentRejections.WithLabelValues("daily_cap")))
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.AssignmentRejections.WithLabelValues("duplicate")))
}

func TestAssignDoctor_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patient, err := env.patients.RegisterPatient(ctx, registerRequest("9000000001", "2026-03-10"))
	require.NoError(t, err)

	_, err = env.assignments.AssignDoctor(ctx, "admin", patient.ID, &dto.AssignDoctorRequest{DoctorName: "Dr. Nobody"})
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	// Admin accounts are not doctors.
	_, err = env.assignments.AssignDoctor(ctx, "admin", patient.ID, &dto.AssignDoctorRequest{DoctorName: "admin"})
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	_, err = env.assignments.AssignDoctor(ctx, "admin", 999, &dto.AssignDoctorRequest{DoctorName: "Dr. Das"})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, err = env.assignments.AssignDoctor(ctx, "admin", patient.ID, &dto.AssignDoctorRequest{DoctorName: "Dr. Das", Date: "18/03/2026"})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	assert.Zero(t, env.countRows(t, &entity.DoctorAssignment{}))
}

func TestAssignDoctor_ConcurrentRequestsRespectCap(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patient, err := env.patients.RegisterPatient(ctx, registerRequest("9000000001", "2026-03-10"))
	require.NoError(t, err)

	doctors := []string{"Dr. Das", "Dr. Santra", "Dr. Banarjee", "Dr. Ghosh"}
	errs := make([]error, len(doctors))
	var wg sync.WaitGroup
	for i, doctor := range doctors {
		wg.Add(1)
		go func(i int, doctor string) {
			defer wg.Done()
			_, errs[i] = env.assignments.AssignDoctor(ctx, "admin", patient.ID, &dto.AssignDoctorRequest{DoctorName: doctor})
		}(i, doctor)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrDailyDoctorCapReached)
	}
	assert.Equal(t, entity.MaxDoctorsPerPatientPerDay, succeeded)
	assert.Equal(t, int64(entity.MaxDoctorsPerPatientPerDay), env.countRows(t, &entity.DoctorAssignment{}))
}

func TestAssignSelfFromAppointment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patient, err := env.patients.RegisterPatient(ctx, registerRequest("9000000001", "2026-03-10"))
	require.NoError(t, err)
	appointment, err := env.appts.CreateAppointment(ctx, "admin", &dto.CreateAppointmentRequest{
		PatientID: patient.ID, DoctorName: "Dr. Das", Date: "2026-03-25", Time: "09:00",
	})
	require.NoError(t, err)

	_, err = env.assignments.AssignSelfFromAppointment(ctx, "Dr. Ghosh", appointment.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotOwned)

	_, err = env.assignments.AssignSelfFromAppointment(ctx, "Dr. Das", 999)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	assignment, err := env.assignments.AssignSelfFromAppointment(ctx, "Dr. Das", appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-25", assignment.AssignmentDate)
	assert.Equal(t, "Dr. Das", assignment.DoctorName)

	_, err = env.assignments.AssignSelfFromAppointment(ctx, "Dr. Das", appointment.ID)
	assert.ErrorIs(t, err, ErrDuplicateAssignment)

	_, err = env.appts.RequestCancellation(ctx, "Dr. Das", appointment.ID, &dto.RequestCancellationRequest{Reason: "Leave"})
	require.NoError(t, err)
	_, err = env.assignments.AssignSelfFromAppointment(ctx, "Dr. Das", appointment.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotScheduled)
}

// staleAssignmentRepository hides existing rows from the pre-insert checks,
// as another process racing on the same day would see them.
type staleAssignmentRepository struct {
	domainRepo.DoctorAssignmentRepository
}

func (staleAssignmentRepository) Exists(context.Context, *gorm.DB, uint, string, time.Time) (bool, error) {
	return false, nil
}

func (staleAssignmentRepository) FindDoctorNames(context.Context, *gorm.DB, uint, time.Time) ([]string, error) {
	return nil, nil
}

func TestAssignDoctor_UniqueIndexBacksDuplicateRule(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patient, err := env.patients.RegisterPatient(ctx, registerRequest("9000000001", "2026-03-10"))
	require.NoError(t, err)
	_, err = env.assignments.AssignDoctor(ctx, "admin", patient.ID, &dto.AssignDoctorRequest{DoctorName: "Dr. Das"})
	require.NoError(t, err)

	log := clinictestutil.NewLogger()
	locker := service.NewAssignmentLocker(log)
	t.Cleanup(locker.Stop)

	racing := NewAssignmentUsecase(env.db, log, time.UTC, locker,
		repository.NewUserRepository(), repository.NewPatientRepository(), repository.NewAppointmentRepository(),
		staleAssignmentRepository{repository.NewDoctorAssignmentRepository()},
		service.NewAuditService(log, repository.NewAuditLogRepository()), env.metrics).(*assignmentUsecase)
	racing.clock.now = env.assignments.clock.now

	_, err = racing.AssignDoctor(ctx, "admin", patient.ID, &dto.AssignDoctorRequest{DoctorName: "Dr. Das"})
	assert.ErrorIs(t, err, ErrDuplicateAssignment)
	assert.Equal(t, int64(1), env.countRows(t, &entity.DoctorAssignment{}))
	// The rejected insert left no audit entry behind.
	assert.Equal(t, int64(2), env.countRows(t, &entity.AuditLog{}))
}
