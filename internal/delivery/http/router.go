package http

import (
	"net/http"

	"clinic-management/internal/delivery/http/handler"
	"clinic-management/internal/delivery/http/middleware"
	"clinic-management/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	patientHandler     *handler.PatientHandler
	appointmentHandler *handler.AppointmentHandler
	doctorHandler      *handler.DoctorHandler
	reportHandler      *handler.ReportHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
	requestLogger      *middleware.RequestLogger
	metricsMiddleware  *middleware.MetricsMiddleware
	loginLimiter       *middleware.RateLimiter
	metricsHandler     http.Handler
}

type RouterDeps struct {
	AuthHandler        *handler.AuthHandler
	PatientHandler     *handler.PatientHandler
	AppointmentHandler *handler.AppointmentHandler
	DoctorHandler      *handler.DoctorHandler
	ReportHandler      *handler.ReportHandler
	AuditLogHandler    *handler.AuditLogHandler
	AuthMiddleware     *middleware.AuthMiddleware
	CORSMiddleware     *middleware.CORSMiddleware
	RequestLogger      *middleware.RequestLogger
	MetricsMiddleware  *middleware.MetricsMiddleware
	LoginLimiter       *middleware.RateLimiter
	MetricsHandler     http.Handler
}

func NewRouter(deps RouterDeps) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        deps.AuthHandler,
		patientHandler:     deps.PatientHandler,
		appointmentHandler: deps.AppointmentHandler,
		doctorHandler:      deps.DoctorHandler,
		reportHandler:      deps.ReportHandler,
		auditLogHandler:    deps.AuditLogHandler,
		authMiddleware:     deps.AuthMiddleware,
		corsMiddleware:     deps.CORSMiddleware,
		requestLogger:      deps.RequestLogger,
		metricsMiddleware:  deps.MetricsMiddleware,
		loginLimiter:       deps.LoginLimiter,
		metricsHandler:     deps.MetricsHandler,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check and metrics
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	if r.metricsHandler != nil {
		api.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)
	}

	// Public patient registration
	api.HandleFunc("/patients/register", r.patientHandler.Register).Methods(http.MethodPost)

	// Auth routes (public)
	api.Handle("/auth/login", r.loginLimiter.Handle(http.HandlerFunc(r.authHandler.Login))).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/logout/confirm", r.authHandler.ConfirmLogout).Methods(http.MethodPost)
	authProtected.HandleFunc("/logout/cancel", r.authHandler.CancelLogout).Methods(http.MethodPost)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/patients", r.patientHandler.ListPatients).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{id:[0-9]+}", r.patientHandler.DeletePatient).Methods(http.MethodDelete)
	admin.HandleFunc("/patients/{id:[0-9]+}/assignments", r.patientHandler.AssignDoctor).Methods(http.MethodPost)

	admin.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)

	admin.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/cancellation-requests", r.appointmentHandler.GetPendingCancellations).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id:[0-9]+}/cancellation/approve", r.appointmentHandler.ApproveCancellation).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/{id:[0-9]+}/cancellation/deny", r.appointmentHandler.DenyCancellation).Methods(http.MethodPost)

	admin.HandleFunc("/reports/doctors", r.reportHandler.GetDoctorStatistics).Methods(http.MethodGet)
	admin.HandleFunc("/reports/calendar", r.reportHandler.GetCalendarSummary).Methods(http.MethodGet)

	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Doctor routes (protected - doctor only)
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)

	doctor.HandleFunc("/dashboard", r.doctorHandler.GetDashboard).Methods(http.MethodGet)
	doctor.HandleFunc("/patients", r.patientHandler.GetMyPatients).Methods(http.MethodGet)
	doctor.HandleFunc("/patients/{id:[0-9]+}/prescriptions", r.patientHandler.UpdatePrescriptions).Methods(http.MethodPut)
	doctor.HandleFunc("/patients/{id:[0-9]+}/complete", r.patientHandler.RequestCompletion).Methods(http.MethodPost)
	doctor.HandleFunc("/patients/{id:[0-9]+}/complete/confirm", r.patientHandler.ConfirmCompletion).Methods(http.MethodPost)
	doctor.HandleFunc("/patients/{id:[0-9]+}/complete/cancel", r.patientHandler.CancelCompletion).Methods(http.MethodPost)
	doctor.HandleFunc("/appointments", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id:[0-9]+}/cancellation", r.appointmentHandler.RequestCancellation).Methods(http.MethodPost)
	doctor.HandleFunc("/appointments/{id:[0-9]+}/assign-self", r.appointmentHandler.AssignSelf).Methods(http.MethodPost)

	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "")
	})

	// Outermost first: CORS, access log, then metrics.
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.requestLogger.Handle)
	r.router.Use(r.metricsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
