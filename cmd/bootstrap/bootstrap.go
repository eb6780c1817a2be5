package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-management/config"
	deliveryHttp "clinic-management/internal/delivery/http"
	"clinic-management/internal/delivery/http/handler"
	"clinic-management/internal/delivery/http/middleware"
	domainRepo "clinic-management/internal/domain/repository"
	"clinic-management/internal/infrastructure/cache"
	"clinic-management/internal/infrastructure/database"
	"clinic-management/internal/repository"
	"clinic-management/internal/service"
	"clinic-management/internal/usecase"
	"clinic-management/pkg/jwt"
	"clinic-management/pkg/metrics"
	"clinic-management/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Locker      *service.AssignmentLocker
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	log := setupLogger(cfg.App)
	app.Log = log
	log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if err := database.Migrate(db); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.WithField("driver", cfg.DB.Driver).Info("Database connected successfully")

	// Session store
	var store service.SessionStore
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis, log)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.RedisClient = redisClient
		store = service.NewRedisSessionStore(redisClient)
	case config.SessionStoreMemory, "":
		store = service.NewMemorySessionStore(10 * time.Minute)
	default:
		app.Close()
		return nil, fmt.Errorf("unsupported session store %q", cfg.Session.Store)
	}

	userRepo := repository.NewUserRepository()

	// Seed the fixed staff accounts
	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := service.NewSeedService(db, log, cfg.Seed, userRepo).Seed(seedCtx); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to seed accounts: %w", err)
	}

	app.Locker = service.NewAssignmentLocker(log)
	app.Server = initializeServer(cfg, log, db, store, userRepo, app.Locker)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) *logrus.Logger {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}

	// The standard logger also backs GORM's SQL logger.
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	log.SetOutput(os.Stdout)
	log.SetLevel(level)
	return log
}

// initializeServer creates and configures the HTTP server
func initializeServer(
	cfg *config.Config,
	log *logrus.Logger,
	db *gorm.DB,
	store service.SessionStore,
	userRepo domainRepo.UserRepository,
	locker *service.AssignmentLocker,
) *http.Server {
	loc := cfg.App.Location()
	m := metrics.New("clinic")

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	patientRepo := repository.NewPatientRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	assignmentRepo := repository.NewDoctorAssignmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	sessionService := service.NewSessionService(store, cfg.Session.TTL, log)
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, sessionService, auditService, jwtService, m)
	patientUsecase := usecase.NewPatientUsecase(db, log, loc, patientRepo, assignmentRepo, sessionService, auditService)
	assignmentUsecase := usecase.NewAssignmentUsecase(db, log, loc, locker, userRepo, patientRepo,
		appointmentRepo, assignmentRepo, auditService, m)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, loc, userRepo, patientRepo,
		appointmentRepo, assignmentRepo, auditService, m)
	reportUsecase := usecase.NewReportUsecase(db, log, loc, userRepo, patientRepo, appointmentRepo, assignmentRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize router
	router := deliveryHttp.NewRouter(deliveryHttp.RouterDeps{
		AuthHandler:        handler.NewAuthHandler(authUsecase, customValidator),
		PatientHandler:     handler.NewPatientHandler(patientUsecase, assignmentUsecase, customValidator),
		AppointmentHandler: handler.NewAppointmentHandler(appointmentUsecase, assignmentUsecase, customValidator),
		DoctorHandler:      handler.NewDoctorHandler(reportUsecase),
		ReportHandler:      handler.NewReportHandler(reportUsecase),
		AuditLogHandler:    handler.NewAuditLogHandler(auditLogUsecase),
		AuthMiddleware:     middleware.NewAuthMiddleware(authUsecase),
		CORSMiddleware:     middleware.NewCORSMiddleware(cfg.App.CORSOrigin),
		RequestLogger:      middleware.NewRequestLogger(log),
		MetricsMiddleware:  middleware.NewMetricsMiddleware(m),
		LoginLimiter:       middleware.NewLoginRateLimiter(cfg.Login),
		MetricsHandler:     m.Handler(),
	})

	// Create server
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close stops background workers and closes all connections
func (app *App) Close() {
	if app.Locker != nil {
		app.Locker.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
