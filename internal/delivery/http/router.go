package http

import (
	"net/http"

	"medical-record/internal/delivery/http/handler"
	"medical-record/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

// Handlers groups the resource handlers mounted by the router.
type Handlers struct {
	Auth        *handler.AuthHandler
	AuditLog    *handler.AuditLogHandler
	Specialty   *handler.SpecialtyHandler
	Diagnosis   *handler.DiagnosisHandler
	Doctor      *handler.DoctorHandler
	Patient     *handler.PatientHandler
	Examination *handler.ExaminationHandler
	SickLeave   *handler.SickLeaveHandler
	Report      *handler.ReportHandler
}

type Router struct {
	router         *mux.Router
	handlers       Handlers
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
	observer       middleware.RequestObserver
	metricsHandler http.Handler
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	observer middleware.RequestObserver,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		handlers:       handlers,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
		observer:       observer,
		metricsHandler: metricsHandler,
	}
}

func adminOnly(h http.HandlerFunc) http.Handler {
	return middleware.RequireAdmin(h)
}

func staffOnly(h http.HandlerFunc) http.Handler {
	return middleware.RequireAdminOrDoctor(h)
}

func (r *Router) Setup() *mux.Router {
	h := r.handlers

	if r.metricsHandler != nil {
		r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)
	}

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", h.Auth.RefreshToken).Methods(http.MethodPost)

	// Everything below requires a valid access token.
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/auth/logout", h.Auth.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", h.Auth.GetCurrentUser).Methods(http.MethodGet)
	protected.Handle("/auth/register", adminOnly(h.Auth.Register)).Methods(http.MethodPost)

	// User and audit administration
	protected.Handle("/users", adminOnly(h.Auth.GetAllUsers)).Methods(http.MethodGet)
	protected.Handle("/users/{id}", adminOnly(h.Auth.GetUser)).Methods(http.MethodGet)
	protected.Handle("/users/{id}", adminOnly(h.Auth.DeleteUser)).Methods(http.MethodDelete)
	protected.Handle("/audit-logs", adminOnly(h.AuditLog.GetAllAuditLogs)).Methods(http.MethodGet)
	protected.Handle("/audit-logs/{id}", adminOnly(h.AuditLog.GetAuditLog)).Methods(http.MethodGet)

	// Specialties
	protected.HandleFunc("/specialties", h.Specialty.GetAllSpecialties).Methods(http.MethodGet)
	protected.Handle("/specialties", adminOnly(h.Specialty.CreateSpecialty)).Methods(http.MethodPost)
	protected.HandleFunc("/specialties/{id}", h.Specialty.GetSpecialty).Methods(http.MethodGet)
	protected.Handle("/specialties/{id}", adminOnly(h.Specialty.UpdateSpecialty)).Methods(http.MethodPut)
	protected.Handle("/specialties/{id}", adminOnly(h.Specialty.DeleteSpecialty)).Methods(http.MethodDelete)

	// Diagnoses
	protected.HandleFunc("/diagnoses", h.Diagnosis.GetAllDiagnoses).Methods(http.MethodGet)
	protected.Handle("/diagnoses", adminOnly(h.Diagnosis.CreateDiagnosis)).Methods(http.MethodPost)
	protected.HandleFunc("/diagnoses/code/{code}", h.Diagnosis.GetDiagnosisByCode).Methods(http.MethodGet)
	protected.HandleFunc("/diagnoses/{id}", h.Diagnosis.GetDiagnosis).Methods(http.MethodGet)
	protected.Handle("/diagnoses/{id}", adminOnly(h.Diagnosis.UpdateDiagnosis)).Methods(http.MethodPut)
	protected.Handle("/diagnoses/{id}", adminOnly(h.Diagnosis.DeleteDiagnosis)).Methods(http.MethodDelete)

	// Doctors
	protected.HandleFunc("/doctors", h.Doctor.GetAllDoctors).Methods(http.MethodGet)
	protected.Handle("/doctors", adminOnly(h.Doctor.CreateDoctor)).Methods(http.MethodPost)
	protected.HandleFunc("/doctors/gps", h.Doctor.GetGPs).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/me", h.Doctor.GetMyDoctor).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/uin/{uin}", h.Doctor.GetDoctorByUIN).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/specialty/{specialtyId}", h.Doctor.GetDoctorsBySpecialty).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{id}", h.Doctor.GetDoctor).Methods(http.MethodGet)
	protected.Handle("/doctors/{id}", adminOnly(h.Doctor.UpdateDoctor)).Methods(http.MethodPut)
	protected.Handle("/doctors/{id}", adminOnly(h.Doctor.DeleteDoctor)).Methods(http.MethodDelete)

	// Patients
	protected.Handle("/patients", staffOnly(h.Patient.GetAllPatients)).Methods(http.MethodGet)
	protected.Handle("/patients", adminOnly(h.Patient.CreatePatient)).Methods(http.MethodPost)
	protected.HandleFunc("/patients/me", h.Patient.GetMyPatient).Methods(http.MethodGet)
	protected.Handle("/patients/egn/{egn}", staffOnly(h.Patient.GetPatientByEGN)).Methods(http.MethodGet)
	protected.HandleFunc("/patients/gp/{gpId}", h.Patient.GetPatientsByGP).Methods(http.MethodGet)
	protected.HandleFunc("/patients/diagnosis/{diagnosisId}", h.Patient.GetPatientsByDiagnosis).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}", h.Patient.GetPatient).Methods(http.MethodGet)
	protected.Handle("/patients/{id}", adminOnly(h.Patient.UpdatePatient)).Methods(http.MethodPut)
	protected.Handle("/patients/{id}", adminOnly(h.Patient.DeletePatient)).Methods(http.MethodDelete)

	// Examinations
	protected.Handle("/examinations", staffOnly(h.Examination.GetAllExaminations)).Methods(http.MethodGet)
	protected.Handle("/examinations", staffOnly(h.Examination.CreateExamination)).Methods(http.MethodPost)
	protected.Handle("/examinations/doctor/{doctorId}", staffOnly(h.Examination.GetExaminationsByDoctor)).Methods(http.MethodGet)
	protected.HandleFunc("/examinations/patient/{patientId}", h.Examination.GetExaminationsByPatient).Methods(http.MethodGet)
	protected.HandleFunc("/examinations/{id}", h.Examination.GetExamination).Methods(http.MethodGet)
	protected.HandleFunc("/examinations/{id}", h.Examination.UpdateExamination).Methods(http.MethodPut)
	protected.Handle("/examinations/{id}", adminOnly(h.Examination.DeleteExamination)).Methods(http.MethodDelete)

	// Sick leaves
	protected.HandleFunc("/sick-leaves", h.SickLeave.GetAllSickLeaves).Methods(http.MethodGet)
	protected.HandleFunc("/sick-leaves/examination/{examinationId}", h.SickLeave.GetSickLeaveByExamination).Methods(http.MethodGet)
	protected.HandleFunc("/sick-leaves/patient/{patientId}", h.SickLeave.GetSickLeavesByPatient).Methods(http.MethodGet)
	protected.HandleFunc("/sick-leaves/{id}", h.SickLeave.GetSickLeave).Methods(http.MethodGet)
	protected.Handle("/sick-leaves/{id}", adminOnly(h.SickLeave.DeleteSickLeave)).Methods(http.MethodDelete)

	// Reports
	reports := protected.PathPrefix("/reports").Subrouter()
	reports.HandleFunc("/diagnoses/most-frequent", h.Report.MostFrequentDiagnoses).Methods(http.MethodGet)
	reports.HandleFunc("/doctors/patient-count", h.Report.PatientCountPerGP).Methods(http.MethodGet)
	reports.HandleFunc("/doctors/examination-count", h.Report.ExaminationCountPerDoctor).Methods(http.MethodGet)
	reports.HandleFunc("/doctors/sick-leave-count", h.Report.DoctorsWithMostSickLeaves).Methods(http.MethodGet)
	reports.HandleFunc("/doctors/{doctorId}/examinations", h.Report.DoctorExaminationsInPeriod).Methods(http.MethodGet)
	reports.HandleFunc("/sick-leaves/by-month", h.Report.SickLeavesByMonth).Methods(http.MethodGet)
	reports.HandleFunc("/examinations/by-patient", h.Report.ExaminationsByPatient).Methods(http.MethodGet)
	reports.HandleFunc("/examinations/period", h.Report.ExaminationsInPeriod).Methods(http.MethodGet)

	// Preflight requests only need the CORS headers.
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if r.observer != nil {
		r.router.Use(middleware.Metrics(r.observer))
	}
	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
