package repository

import (
	"context"
	"testing"
	"time"

	"clinic-management/internal/domain/entity"
	"clinic-management/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	march18 = time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)
	march19 = time.Date(2026, 3, 19, 0, 0, 0, 0, time.UTC)
)

func createAppointment(t *testing.T, db *gorm.DB, patientID uint, doctor string, date time.Time, hour int, status entity.AppointmentStatus) *entity.Appointment {
	t.Helper()
	appointment := &entity.Appointment{
		PatientID:  patientID,
		DoctorName: doctor,
		Date:       date,
		Time:       datatypes.NewTime(hour, 0, 0, 0),
		Reason:     "Checkup",
		Status:     status,
	}
	require.NoError(t, NewAppointmentRepository().Create(context.Background(), db, appointment))
	return appointment
}

func createAssignment(t *testing.T, db *gorm.DB, patientID uint, doctor string, date time.Time) {
	t.Helper()
	require.NoError(t, NewDoctorAssignmentRepository().Create(context.Background(), db, &entity.DoctorAssignment{
		PatientID:      patientID,
		DoctorName:     doctor,
		AssignmentDate: date,
	}))
}

func TestPatientRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	testutil.CreateUser(t, db, "Dr. Das", "pw", entity.RoleDoctor)

	patient := testutil.CreatePatient(t, db, "Asha", "9000000001")
	other := testutil.CreatePatient(t, db, "Bina", "9000000002")
	createAppointment(t, db, patient.ID, "Dr. Das", march18, 9, entity.AppointmentStatusScheduled)
	createAppointment(t, db, other.ID, "Dr. Das", march18, 10, entity.AppointmentStatusScheduled)
	createAssignment(t, db, patient.ID, "Dr. Das", march18)

	rows, err := NewPatientRepository().Delete(ctx, db, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	var appointments, assignments int64
	require.NoError(t, db.Model(&entity.Appointment{}).Where("patient_id = ?", patient.ID).Count(&appointments).Error)
	require.NoError(t, db.Model(&entity.DoctorAssignment{}).Where("patient_id = ?", patient.ID).Count(&assignments).Error)
	assert.Zero(t, appointments)
	assert.Zero(t, assignments)

	// Other patients keep their rows.
	require.NoError(t, db.Model(&entity.Appointment{}).Where("patient_id = ?", other.ID).Count(&appointments).Error)
	assert.Equal(t, int64(1), appointments)
}

func TestPatientRepository_UpdateStatusIsConditional(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewPatientRepository()
	patient := testutil.CreatePatient(t, db, "Asha", "9000000001")

	rows, err := repo.UpdateStatus(ctx, db, patient.ID, entity.PatientStatusActive, entity.PatientStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.UpdateStatus(ctx, db, patient.ID, entity.PatientStatusActive, entity.PatientStatusCompleted)
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestPatientRepository_FindActiveAssignedTo(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewPatientRepository()
	testutil.CreateUser(t, db, "Dr. Das", "pw", entity.RoleDoctor)
	testutil.CreateUser(t, db, "Dr. Ghosh", "pw", entity.RoleDoctor)

	today := testutil.CreatePatient(t, db, "Chitra", "9000000001")
	yesterday := testutil.CreatePatient(t, db, "Asha", "9000000002")
	completed := testutil.CreatePatient(t, db, "Bina", "9000000003")
	someoneElse := testutil.CreatePatient(t, db, "Dev", "9000000004")

	createAssignment(t, db, today.ID, "Dr. Das", march19)
	createAssignment(t, db, yesterday.ID, "Dr. Das", march18)
	createAssignment(t, db, completed.ID, "Dr. Das", march19)
	createAssignment(t, db, someoneElse.ID, "Dr. Ghosh", march19)
	_, err := repo.UpdateStatus(ctx, db, completed.ID, entity.PatientStatusActive, entity.PatientStatusCompleted)
	require.NoError(t, err)

	all, err := repo.FindActiveAssignedTo(ctx, db, "Dr. Das", nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Asha", all[0].Name)
	assert.Equal(t, "Chitra", all[1].Name)

	onDay, err := repo.FindActiveAssignedTo(ctx, db, "Dr. Das", &march19)
	require.NoError(t, err)
	require.Len(t, onDay, 1)
	assert.Equal(t, today.ID, onDay[0].ID)
}

func TestAppointmentRepository_UpdateStatusRejectsStaleRead(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewAppointmentRepository()
	testutil.CreateUser(t, db, "Dr. Das", "pw", entity.RoleDoctor)
	patient := testutil.CreatePatient(t, db, "Asha", "9000000001")
	created := createAppointment(t, db, patient.ID, "Dr. Das", march18, 9, entity.AppointmentStatusCancellationRequested)

	first, err := repo.FindByID(ctx, db, created.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, db, created.ID)
	require.NoError(t, err)

	require.NoError(t, first.ApproveCancellation())
	rows, err := repo.UpdateStatus(ctx, db, first, entity.AppointmentStatusCancellationRequested)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	require.NoError(t, second.DenyCancellation())
	rows, err = repo.UpdateStatus(ctx, db, second, entity.AppointmentStatusCancellationRequested)
	require.NoError(t, err)
	assert.Zero(t, rows)

	stored, err := repo.FindByID(ctx, db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusCancelled, stored.Status)
	assert.Equal(t, "Asha", stored.Patient.Name)
}

func TestAppointmentRepository_Queries(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewAppointmentRepository()
	testutil.CreateUser(t, db, "Dr. Das", "pw", entity.RoleDoctor)
	testutil.CreateUser(t, db, "Dr. Ghosh", "pw", entity.RoleDoctor)
	patient := testutil.CreatePatient(t, db, "Asha", "9000000001")

	createAppointment(t, db, patient.ID, "Dr. Das", march18, 15, entity.AppointmentStatusScheduled)
	createAppointment(t, db, patient.ID, "Dr. Das", march18, 9, entity.AppointmentStatusScheduled)
	createAppointment(t, db, patient.ID, "Dr. Das", march18, 11, entity.AppointmentStatusCancelled)
	createAppointment(t, db, patient.ID, "Dr. Das", march19, 8, entity.AppointmentStatusCancellationRequested)
	createAppointment(t, db, patient.ID, "Dr. Ghosh", march18, 10, entity.AppointmentStatusScheduled)

	today, err := repo.FindByDoctorAndDate(ctx, db, "Dr. Das", march18, entity.AppointmentStatusScheduled)
	require.NoError(t, err)
	require.Len(t, today, 2)
	assert.Equal(t, datatypes.NewTime(9, 0, 0, 0), today[0].Time)
	assert.Equal(t, datatypes.NewTime(15, 0, 0, 0), today[1].Time)

	open, err := repo.FindByDoctor(ctx, db, "Dr. Das", entity.AppointmentStatusScheduled, entity.AppointmentStatusCancellationRequested)
	require.NoError(t, err)
	assert.Len(t, open, 3)

	count, err := repo.CountByDoctor(ctx, db, "Dr. Das")
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	count, err = repo.CountBetween(ctx, db, march18, march18)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	requested, err := repo.FindByStatus(ctx, db, entity.AppointmentStatusCancellationRequested)
	require.NoError(t, err)
	require.Len(t, requested, 1)
	assert.Equal(t, "Asha", requested[0].Patient.Name)
}

func TestDoctorAssignmentRepository_Queries(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewDoctorAssignmentRepository()
	testutil.CreateUser(t, db, "Dr. Das", "pw", entity.RoleDoctor)
	testutil.CreateUser(t, db, "Dr. Ghosh", "pw", entity.RoleDoctor)
	asha := testutil.CreatePatient(t, db, "Asha", "9000000001")
	bina := testutil.CreatePatient(t, db, "Bina", "9000000002")

	createAssignment(t, db, asha.ID, "Dr. Ghosh", march18)
	createAssignment(t, db, asha.ID, "Dr. Das", march18)
	createAssignment(t, db, asha.ID, "Dr. Das", march19)
	createAssignment(t, db, bina.ID, "Dr. Das", march18)

	names, err := repo.FindDoctorNames(ctx, db, asha.ID, march18)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dr. Das", "Dr. Ghosh"}, names)

	byPatient, err := repo.FindDoctorNamesForPatients(ctx, db, []uint{asha.ID, bina.ID}, march18)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dr. Das", "Dr. Ghosh"}, byPatient[asha.ID])
	assert.Equal(t, []string{"Dr. Das"}, byPatient[bina.ID])

	exists, err := repo.Exists(ctx, db, bina.ID, "Dr. Das", march19)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsForDoctor(ctx, db, bina.ID, "Dr. Das")
	require.NoError(t, err)
	assert.True(t, exists)

	patients, err := repo.CountDistinctPatients(ctx, db, "Dr. Das")
	require.NoError(t, err)
	assert.Equal(t, int64(2), patients)
}

func TestDoctorAssignmentRepository_RejectsUnknownDoctor(t *testing.T) {
	db := testutil.NewDB(t)
	patient := testutil.CreatePatient(t, db, "Asha", "9000000001")

	err := NewDoctorAssignmentRepository().Create(context.Background(), db, &entity.DoctorAssignment{
		PatientID:      patient.ID,
		DoctorName:     "Dr. Nobody",
		AssignmentDate: march18,
	})
	assert.Error(t, err)
}

func TestDoctorAssignmentRepository_RejectsSameDoctorTwicePerDay(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewDoctorAssignmentRepository()
	testutil.CreateUser(t, db, "Dr. Das", "pw", entity.RoleDoctor)
	patient := testutil.CreatePatient(t, db, "Jane", "9000000001")

	createAssignment(t, db, patient.ID, "Dr. Das", march18)

	err := repo.Create(ctx, db, &entity.DoctorAssignment{
		PatientID:      patient.ID,
		DoctorName:     "Dr. Das",
		AssignmentDate: march18,
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var count int64
	require.NoError(t, db.Model(&entity.DoctorAssignment{}).
		Where("patient_id = ? AND doctor_name = ?", patient.ID, "Dr. Das").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The same doctor on another day is a separate assignment.
	createAssignment(t, db, patient.ID, "Dr. Das", march19)
}

func TestUserRepository_FindByUsernameAndRole(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewUserRepository()
	testutil.CreateUser(t, db, "Dr. Das", "pw", entity.RoleDoctor)

	user, err := repo.FindByUsernameAndRole(ctx, db, "Dr. Das", entity.RoleDoctor)
	require.NoError(t, err)
	require.NotNil(t, user)

	user, err = repo.FindByUsernameAndRole(ctx, db, "Dr. Das", entity.RoleAdmin)
	require.NoError(t, err)
	assert.Nil(t, user)
}
