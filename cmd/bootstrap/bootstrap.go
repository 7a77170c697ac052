package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medical-record/config"
	deliveryHttp "medical-record/internal/delivery/http"
	"medical-record/internal/delivery/http/handler"
	"medical-record/internal/delivery/http/middleware"
	"medical-record/internal/infrastructure/cache"
	"medical-record/internal/infrastructure/database"
	"medical-record/internal/infrastructure/metrics"
	"medical-record/internal/repository"
	"medical-record/internal/service"
	"medical-record/internal/usecase"
	"medical-record/pkg/jwt"
	"medical-record/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Metrics     *metrics.Metrics
	Server      *http.Server
}

// LoadConfig loads configuration and configures the global logger from it.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")
	return cfg, nil
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	if cfg.DB.AutoMigrate {
		if err := database.MigrateUp(database.MigrationURL(cfg.DB)); err != nil {
			return nil, err
		}
	}

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.IsDevelopment())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if cfg.App.SeedOnStart {
		if err := database.Seed(context.Background(), db, logrus.StandardLogger()); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	app.Metrics = metrics.New()
	app.Server = initializeServer(cfg, db, redisClient, app.Metrics)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, m *metrics.Metrics) *http.Server {
	log := logrus.StandardLogger()

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	// Repositories
	userRepo := repository.NewUserRepository()
	specialtyRepo := repository.NewSpecialtyRepository()
	diagnosisRepo := repository.NewDiagnosisRepository()
	doctorRepo := repository.NewDoctorRepository()
	patientRepo := repository.NewPatientRepository()
	examinationRepo := repository.NewExaminationRepository()
	sickLeaveRepo := repository.NewSickLeaveRepository()
	reportRepo := repository.NewReportRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Services
	auditService := service.NewAuditService(log, auditLogRepo)
	reportCache := service.NewReportCache(redisClient, cfg.App.ReportCacheTTL, log)
	tokenStore := service.NewTokenStore(redisClient)

	// Usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, doctorRepo, patientRepo, specialtyRepo, auditService, reportCache, jwtService, tokenStore)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)
	accessUsecase := usecase.NewAccessUsecase(db, log, patientRepo, doctorRepo, examinationRepo)
	specialtyUsecase := usecase.NewSpecialtyUsecase(db, log, specialtyRepo, auditService)
	diagnosisUsecase := usecase.NewDiagnosisUsecase(db, log, diagnosisRepo, examinationRepo, auditService, reportCache)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, specialtyRepo, examinationRepo, auditService, reportCache)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, doctorRepo, examinationRepo, auditService, reportCache)
	examinationUsecase := usecase.NewExaminationUsecase(db, log, examinationRepo, sickLeaveRepo, patientRepo, doctorRepo, diagnosisRepo, auditService, reportCache, m)
	sickLeaveUsecase := usecase.NewSickLeaveUsecase(db, log, sickLeaveRepo, auditService, reportCache)
	reportUsecase := usecase.NewReportUsecase(db, log, reportRepo, examinationRepo, reportCache, m)

	handlers := deliveryHttp.Handlers{
		Auth:        handler.NewAuthHandler(authUsecase, customValidator, jwtService),
		AuditLog:    handler.NewAuditLogHandler(auditLogUsecase),
		Specialty:   handler.NewSpecialtyHandler(specialtyUsecase, customValidator),
		Diagnosis:   handler.NewDiagnosisHandler(diagnosisUsecase, customValidator),
		Doctor:      handler.NewDoctorHandler(doctorUsecase, customValidator),
		Patient:     handler.NewPatientHandler(patientUsecase, accessUsecase, customValidator),
		Examination: handler.NewExaminationHandler(examinationUsecase, accessUsecase, customValidator),
		SickLeave:   handler.NewSickLeaveHandler(sickLeaveUsecase),
		Report:      handler.NewReportHandler(reportUsecase, customValidator),
	}

	authMiddleware := middleware.NewAuthMiddleware(authUsecase)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigins...)

	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware, m, m.Handler())
	httpRouter := router.Setup()

	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	return app.waitForShutdown(errCh)
}

// waitForShutdown blocks until an interrupt signal or a server failure
func (app *App) waitForShutdown(errCh <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-quit:
	case runErr = <-errCh:
		logrus.Errorf("Server failed: %v", runErr)
	}

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
	return runErr
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
