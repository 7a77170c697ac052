package handler

import (
	"net/http"

	"medical-record/internal/delivery/dto"
	"medical-record/internal/delivery/http/middleware"
	"medical-record/internal/domain/entity"
	"medical-record/internal/usecase"
	"medical-record/pkg/response"
	"medical-record/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	accessUsecase  usecase.AccessUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, accessUsecase usecase.AccessUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		accessUsecase:  accessUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.PatientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.CreatePatient(r.Context(), middleware.GetCallerFromContext(r.Context()), &req)
	if err != nil {
		response.AppError(w, err, "Failed to create patient")
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", patient)
}

// GetPatient is open to staff and to the patient the record belongs to.
func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(w, r, "id", "patient")
	if !ok {
		return
	}

	caller := middleware.GetCallerFromContext(r.Context())
	if !authorize(w, caller, []entity.Role{entity.RoleDoctor}, func() (bool, error) {
		return h.accessUsecase.IsOwnerPatient(r.Context(), patientID, caller)
	}) {
		return
	}

	patient, err := h.patientUsecase.GetPatient(r.Context(), patientID)
	if err != nil {
		response.AppError(w, err, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) GetPatientByEGN(w http.ResponseWriter, r *http.Request) {
	patient, err := h.patientUsecase.GetPatientByEGN(r.Context(), mux.Vars(r)["egn"])
	if err != nil {
		response.AppError(w, err, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

// GetMyPatient returns the patient record linked to the current account.
func (h *PatientHandler) GetMyPatient(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	patient, err := h.patientUsecase.GetPatientByUserID(r.Context(), userID)
	if err != nil {
		response.AppError(w, err, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) GetAllPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.GetAllPatients(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) GetPatientsByGP(w http.ResponseWriter, r *http.Request) {
	gpID, ok := pathID(w, r, "gpId", "doctor")
	if !ok {
		return
	}

	patients, err := h.patientUsecase.GetPatientsByGP(r.Context(), gpID)
	if err != nil {
		response.AppError(w, err, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) GetPatientsByDiagnosis(w http.ResponseWriter, r *http.Request) {
	diagnosisID, ok := pathID(w, r, "diagnosisId", "diagnosis")
	if !ok {
		return
	}

	patients, err := h.patientUsecase.GetPatientsByDiagnosis(r.Context(), diagnosisID)
	if err != nil {
		response.AppError(w, err, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(w, r, "id", "patient")
	if !ok {
		return
	}

	var req dto.PatientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.UpdatePatient(r.Context(), middleware.GetCallerFromContext(r.Context()), patientID, &req)
	if err != nil {
		response.AppError(w, err, "Failed to update patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(w, r, "id", "patient")
	if !ok {
		return
	}

	if err := h.patientUsecase.DeletePatient(r.Context(), middleware.GetCallerFromContext(r.Context()), patientID); err != nil {
		response.AppError(w, err, "Failed to delete patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}
