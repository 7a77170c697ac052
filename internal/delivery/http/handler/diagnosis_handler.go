package handler

import (
	"net/http"

	"medical-record/internal/delivery/dto"
	"medical-record/internal/delivery/http/middleware"
	"medical-record/internal/usecase"
	"medical-record/pkg/response"
	"medical-record/pkg/validator"

	"github.com/gorilla/mux"
)

type DiagnosisHandler struct {
	diagnosisUsecase usecase.DiagnosisUsecase
	validator        *validator.CustomValidator
}

func NewDiagnosisHandler(diagnosisUsecase usecase.DiagnosisUsecase, validator *validator.CustomValidator) *DiagnosisHandler {
	return &DiagnosisHandler{
		diagnosisUsecase: diagnosisUsecase,
		validator:        validator,
	}
}

func (h *DiagnosisHandler) CreateDiagnosis(w http.ResponseWriter, r *http.Request) {
	var req dto.DiagnosisRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	diagnosis, err := h.diagnosisUsecase.CreateDiagnosis(r.Context(), middleware.GetCallerFromContext(r.Context()), &req)
	if err != nil {
		response.AppError(w, err, "Failed to create diagnosis")
		return
	}

	response.Success(w, http.StatusCreated, "Diagnosis created successfully", diagnosis)
}

func (h *DiagnosisHandler) GetDiagnosis(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "diagnosis")
	if !ok {
		return
	}

	diagnosis, err := h.diagnosisUsecase.GetDiagnosis(r.Context(), id)
	if err != nil {
		response.AppError(w, err, "Failed to get diagnosis")
		return
	}

	response.Success(w, http.StatusOK, "Diagnosis retrieved successfully", diagnosis)
}

func (h *DiagnosisHandler) GetDiagnosisByCode(w http.ResponseWriter, r *http.Request) {
	diagnosis, err := h.diagnosisUsecase.GetDiagnosisByCode(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		response.AppError(w, err, "Failed to get diagnosis")
		return
	}

	response.Success(w, http.StatusOK, "Diagnosis retrieved successfully", diagnosis)
}

// GetAllDiagnoses lists every diagnosis, or only those whose name contains
// the name query parameter.
func (h *DiagnosisHandler) GetAllDiagnoses(w http.ResponseWriter, r *http.Request) {
	var (
		diagnoses *dto.DiagnosisListResponse
		err       error
	)
	if name := r.URL.Query().Get("name"); name != "" {
		diagnoses, err = h.diagnosisUsecase.SearchDiagnoses(r.Context(), name)
	} else {
		diagnoses, err = h.diagnosisUsecase.GetAllDiagnoses(r.Context())
	}
	if err != nil {
		response.InternalServerError(w, "Failed to get diagnoses")
		return
	}

	response.Success(w, http.StatusOK, "Diagnoses retrieved successfully", diagnoses)
}

func (h *DiagnosisHandler) UpdateDiagnosis(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "diagnosis")
	if !ok {
		return
	}

	var req dto.DiagnosisRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	diagnosis, err := h.diagnosisUsecase.UpdateDiagnosis(r.Context(), middleware.GetCallerFromContext(r.Context()), id, &req)
	if err != nil {
		response.AppError(w, err, "Failed to update diagnosis")
		return
	}

	response.Success(w, http.StatusOK, "Diagnosis updated successfully", diagnosis)
}

func (h *DiagnosisHandler) DeleteDiagnosis(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "diagnosis")
	if !ok {
		return
	}

	if err := h.diagnosisUsecase.DeleteDiagnosis(r.Context(), middleware.GetCallerFromContext(r.Context()), id); err != nil {
		response.AppError(w, err, "Failed to delete diagnosis")
		return
	}

	response.Success(w, http.StatusOK, "Diagnosis deleted successfully", nil)
}
