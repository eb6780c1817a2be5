package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-management/config"
	"clinic-management/internal/domain/entity"
	"clinic-management/internal/repository"
	"clinic-management/internal/service"
	"clinic-management/internal/testutil"
	"clinic-management/pkg/jwt"
	"clinic-management/pkg/metrics"

	"gorm.io/gorm"
)

// testToday is a Wednesday.
var testToday = time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)

type testEnv struct {
	db       *gorm.DB
	metrics  *metrics.Metrics
	sessions service.SessionService

	auth        *authUsecase
	patients    *patientUsecase
	assignments *assignmentUsecase
	appts       *appointmentUsecase
	reports     *reportUsecase
	auditLogs   AuditLogUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	log := testutil.NewLogger()
	m := metrics.New("test")

	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	assignmentRepo := repository.NewDoctorAssignmentRepository()
	auditRepo := repository.NewAuditLogRepository()

	sessions := service.NewSessionService(service.NewMemorySessionStore(time.Minute), time.Hour, log)
	audit := service.NewAuditService(log, auditRepo)
	locker := service.NewAssignmentLocker(log)
	t.Cleanup(locker.Stop)
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", Expiry: time.Hour})

	env := &testEnv{
		db:       db,
		metrics:  m,
		sessions: sessions,
		auth:     NewAuthUsecase(db, log, userRepo, sessions, audit, jwtService, m).(*authUsecase),
		patients: NewPatientUsecase(db, log, time.UTC, patientRepo, assignmentRepo, sessions, audit).(*patientUsecase),
		assignments: NewAssignmentUsecase(db, log, time.UTC, locker, userRepo, patientRepo,
			appointmentRepo, assignmentRepo, audit, m).(*assignmentUsecase),
		appts: NewAppointmentUsecase(db, log, time.UTC, userRepo, patientRepo,
			appointmentRepo, assignmentRepo, audit, m).(*appointmentUsecase),
		reports: NewReportUsecase(db, log, time.UTC, userRepo, patientRepo,
			appointmentRepo, assignmentRepo).(*reportUsecase),
		auditLogs: NewAuditLogUsecase(db, log, auditRepo),
	}
	env.setToday(testToday)

	testutil.CreateUser(t, db, "admin", "Admin@123", entity.RoleAdmin)
	for _, name := range []string{"Dr. Das", "Dr. Santra", "Dr. Banarjee", "Dr. Ghosh"} {
		testutil.CreateUser(t, db, name, "@123", entity.RoleDoctor)
	}

	return env
}

// setToday pins every usecase clock to 10:00 UTC on day.
func (e *testEnv) setToday(day time.Time) {
	now := func() time.Time { return day.Add(10 * time.Hour) }
	e.patients.clock.now = now
	e.assignments.clock.now = now
	e.appts.clock.now = now
	e.reports.clock.now = now
}

func (e *testEnv) doctorSession(t *testing.T, name string) *entity.Session {
	t.Helper()
	return e.startSession(t, name, entity.RoleDoctor)
}

func (e *testEnv) startSession(t *testing.T, name string, role entity.Role) *entity.Session {
	t.Helper()
	session, err := e.sessions.Start(context.Background(), name, role)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	return session
}

func (e *testEnv) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := e.db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}
