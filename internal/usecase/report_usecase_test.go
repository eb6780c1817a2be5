package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-management/internal/delivery/dto"
	"clinic-management/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// insertAppointment writes directly to the store so past dates can be seeded.
func insertAppointment(t *testing.T, env *testEnv, patientID uint, doctor string, date time.Time, status entity.AppointmentStatus) {
	t.Helper()
	appt := &entity.Appointment{
		PatientID:  patientID,
		DoctorName: doctor,
		Date:       date,
		Time:       datatypes.NewTime(9, 0, 0, 0),
		Status:     status,
	}
	require.NoError(t, env.db.Omit(clause.Associations).Create(appt).Error)
}

func day(month time.Month, d int) time.Time {
	return time.Date(2026, month, d, 0, 0, 0, 0, time.UTC)
}

func TestGetDoctors(t *testing.T) {
	env := newTestEnv(t)

	doctors, err := env.reports.GetDoctors(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(doctors))
	for _, d := range doctors {
		names = append(names, d.Username)
	}
	assert.Equal(t, []string{"Dr. Banarjee", "Dr. Das", "Dr. Ghosh", "Dr. Santra"}, names)
}

func TestGetDoctorStatistics(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	asha, err := env.patients.RegisterPatient(ctx, registerRequest("9000000001", "2026-03-10"))
	require.NoError(t, err)
	ravi, err := env.patients.RegisterPatient(ctx, registerRequest("9000000002", "2026-03-11"))
	require.NoError(t, err)

	for _, date := range []string{"2026-03-18", "2026-03-19"} {
		_, err = env.assignments.AssignDoctor(ctx, "admin", asha.ID, &dto.AssignDoctorRequest{DoctorName: "Dr. Das", Date: date})
		require.NoError(t, err)
	}
	_, err = env.assignments.AssignDoctor(ctx, "admin", ravi.ID, &dto.AssignDoctorRequest{DoctorName: "Dr. Das"})
	require.NoError(t, err)

	insertAppointment(t, env, asha.ID, "Dr. Das", day(time.March, 2), entity.AppointmentStatusScheduled)
	insertAppointment(t, env, asha.ID, "Dr. Das", day(time.March, 3), entity.AppointmentStatusCancelled)
	insertAppointment(t, env, ravi.ID, "Dr. Das", day(time.March, 4), entity.AppointmentStatusCancellationRequested)
	insertAppointment(t, env, ravi.ID, "Dr. Ghosh", day(time.March, 4), entity.AppointmentStatusScheduled)

	stats, err := env.reports.GetDoctorStatistics(ctx)
	require.NoError(t, err)

	byName := make(map[string]dto.DoctorStatisticsResponse, len(stats))
	for _, s := range stats {
		byName[s.DoctorName] = s
	}
	require.Len(t, byName, 4)
	assert.Equal(t, int64(2), byName["Dr. Das"].UniquePatients)
	assert.Equal(t, int64(3), byName["Dr. Das"].TotalAppointments)
	assert.Equal(t, int64(0), byName["Dr. Ghosh"].UniquePatients)
	assert.Equal(t, int64(1), byName["Dr. Ghosh"].TotalAppointments)
	assert.Zero(t, byName["Dr. Santra"].TotalAppointments)
}

func TestGetCalendarSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patient, err := env.patients.RegisterPatient(ctx, registerRequest("9000000001", "2026-03-10"))
	require.NoError(t, err)

	insertAppointment(t, env, patient.ID, "Dr. Das", day(time.February, 28), entity.AppointmentStatusScheduled)
	insertAppointment(t, env, patient.ID, "Dr. Das", day(time.March, 1), entity.AppointmentStatusScheduled)
	insertAppointment(t, env, patient.ID, "Dr. Das", day(time.March, 15), entity.AppointmentStatusScheduled)
	insertAppointment(t, env, patient.ID, "Dr. Das", day(time.March, 16), entity.AppointmentStatusCancelled)
	insertAppointment(t, env, patient.ID, "Dr. Ghosh", day(time.March, 18), entity.AppointmentStatusScheduled)
	insertAppointment(t, env, patient.ID, "Dr. Das", day(time.March, 19), entity.AppointmentStatusScheduled)
	insertAppointment(t, env, patient.ID, "Dr. Das", day(time.March, 31), entity.AppointmentStatusScheduled)
	insertAppointment(t, env, patient.ID, "Dr. Das", day(time.April, 1), entity.AppointmentStatusScheduled)

	summary, err := env.reports.GetCalendarSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-18", summary.Today)
	assert.Equal(t, "2026-03-01", summary.MonthStart)
	assert.Equal(t, "2026-03-31", summary.MonthEnd)
	assert.Equal(t, "2026-03-16", summary.WeekStart)
	assert.Equal(t, int64(6), summary.MonthAppointments)
	assert.Equal(t, int64(2), summary.WeekAppointments)

	t.Run("week start clamps to month start", func(t *testing.T) {
		// 2026-04-01 is a Wednesday; its Monday falls in March.
		env.setToday(day(time.April, 1))

		summary, err := env.reports.GetCalendarSummary(ctx)
		require.NoError(t, err)

		assert.Equal(t, "2026-04-01", summary.WeekStart)
		assert.Equal(t, "2026-04-30", summary.MonthEnd)
		assert.Equal(t, int64(1), summary.MonthAppointments)
		assert.Equal(t, int64(1), summary.WeekAppointments)
	})
}

func TestGetDoctorDashboard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	asha, err := env.patients.RegisterPatient(ctx, registerRequest("9000000001", "2026-03-10"))
	require.NoError(t, err)
	ravi, err := env.patients.RegisterPatient(ctx, &dto.RegisterPatientRequest{
		Name: "Ravi Sen", Mobile: "9000000002", DateOfBirth: "2026-03-11", ReasonToVisit: "Cough",
	})
	require.NoError(t, err)

	_, err = env.assignments.AssignDoctor(ctx, "admin", asha.ID, &dto.AssignDoctorRequest{DoctorName: "Dr. Das"})
	require.NoError(t, err)
	_, err = env.assignments.AssignDoctor(ctx, "admin", ravi.ID, &dto.AssignDoctorRequest{DoctorName: "Dr. Das", Date: "2026-03-19"})
	require.NoError(t, err)

	newAppointment(t, env, asha.ID, "Dr. Das", "2026-03-18", "15:00")
	newAppointment(t, env, ravi.ID, "Dr. Das", "2026-03-18", "08:30")
	newAppointment(t, env, ravi.ID, "Dr. Das", "2026-03-19", "08:30")
	cancelled := newAppointment(t, env, asha.ID, "Dr. Das", "2026-03-18", "11:00")
	_, err = env.appts.RequestCancellation(ctx, "Dr. Das", cancelled.ID, &dto.RequestCancellationRequest{Reason: "Clash"})
	require.NoError(t, err)

	dashboard, err := env.reports.GetDoctorDashboard(ctx, "Dr. Das")
	require.NoError(t, err)

	assert.Equal(t, "2026-03-18", dashboard.Date)
	require.Len(t, dashboard.Patients, 1)
	assert.Equal(t, asha.ID, dashboard.Patients[0].ID)
	require.Len(t, dashboard.Appointments, 2)
	assert.Equal(t, "08:30", dashboard.Appointments[0].Time)
	assert.Equal(t, "15:00", dashboard.Appointments[1].Time)

	empty, err := env.reports.GetDoctorDashboard(ctx, "Dr. Ghosh")
	require.NoError(t, err)
	assert.Empty(t, empty.Patients)
	assert.Empty(t, empty.Appointments)
}
