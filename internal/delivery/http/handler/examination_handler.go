package handler

import (
	"net/http"

	"medical-record/internal/delivery/dto"
	"medical-record/internal/delivery/http/middleware"
	"medical-record/internal/domain/entity"
	"medical-record/internal/usecase"
	"medical-record/pkg/response"
	"medical-record/pkg/validator"
)

type ExaminationHandler struct {
	examinationUsecase usecase.ExaminationUsecase
	accessUsecase      usecase.AccessUsecase
	validator          *validator.CustomValidator
}

func NewExaminationHandler(examinationUsecase usecase.ExaminationUsecase, accessUsecase usecase.AccessUsecase, validator *validator.CustomValidator) *ExaminationHandler {
	return &ExaminationHandler{
		examinationUsecase: examinationUsecase,
		accessUsecase:      accessUsecase,
		validator:          validator,
	}
}

func (h *ExaminationHandler) CreateExamination(w http.ResponseWriter, r *http.Request) {
	var req dto.ExaminationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	examination, err := h.examinationUsecase.CreateExamination(r.Context(), middleware.GetCallerFromContext(r.Context()), &req)
	if err != nil {
		response.AppError(w, err, "Failed to create examination")
		return
	}

	response.Success(w, http.StatusCreated, "Examination created successfully", examination)
}

// GetExamination is open to staff and to the examined patient.
func (h *ExaminationHandler) GetExamination(w http.ResponseWriter, r *http.Request) {
	examinationID, ok := pathID(w, r, "id", "examination")
	if !ok {
		return
	}

	caller := middleware.GetCallerFromContext(r.Context())
	if !authorize(w, caller, []entity.Role{entity.RoleDoctor}, func() (bool, error) {
		return h.accessUsecase.CanAccessExamination(r.Context(), examinationID, caller)
	}) {
		return
	}

	examination, err := h.examinationUsecase.GetExamination(r.Context(), examinationID)
	if err != nil {
		response.AppError(w, err, "Failed to get examination")
		return
	}

	response.Success(w, http.StatusOK, "Examination retrieved successfully", examination)
}

func (h *ExaminationHandler) GetAllExaminations(w http.ResponseWriter, r *http.Request) {
	examinations, err := h.examinationUsecase.GetAllExaminations(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get examinations")
		return
	}

	response.Success(w, http.StatusOK, "Examinations retrieved successfully", examinations)
}

func (h *ExaminationHandler) GetExaminationsByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(w, r, "patientId", "patient")
	if !ok {
		return
	}

	caller := middleware.GetCallerFromContext(r.Context())
	if !authorize(w, caller, []entity.Role{entity.RoleDoctor}, func() (bool, error) {
		return h.accessUsecase.IsOwnerPatient(r.Context(), patientID, caller)
	}) {
		return
	}

	examinations, err := h.examinationUsecase.GetExaminationsByPatient(r.Context(), patientID)
	if err != nil {
		response.AppError(w, err, "Failed to get examinations")
		return
	}

	response.Success(w, http.StatusOK, "Examinations retrieved successfully", examinations)
}

func (h *ExaminationHandler) GetExaminationsByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "doctorId", "doctor")
	if !ok {
		return
	}

	examinations, err := h.examinationUsecase.GetExaminationsByDoctor(r.Context(), doctorID)
	if err != nil {
		response.AppError(w, err, "Failed to get examinations")
		return
	}

	response.Success(w, http.StatusOK, "Examinations retrieved successfully", examinations)
}

// UpdateExamination is limited to administrators and the examining doctor.
func (h *ExaminationHandler) UpdateExamination(w http.ResponseWriter, r *http.Request) {
	examinationID, ok := pathID(w, r, "id", "examination")
	if !ok {
		return
	}

	caller := middleware.GetCallerFromContext(r.Context())
	if !authorize(w, caller, nil, func() (bool, error) {
		return h.accessUsecase.IsDoctorForExamination(r.Context(), examinationID, caller)
	}) {
		return
	}

	var req dto.ExaminationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	examination, err := h.examinationUsecase.UpdateExamination(r.Context(), caller, examinationID, &req)
	if err != nil {
		response.AppError(w, err, "Failed to update examination")
		return
	}

	response.Success(w, http.StatusOK, "Examination updated successfully", examination)
}

func (h *ExaminationHandler) DeleteExamination(w http.ResponseWriter, r *http.Request) {
	examinationID, ok := pathID(w, r, "id", "examination")
	if !ok {
		return
	}

	if err := h.examinationUsecase.DeleteExamination(r.Context(), middleware.GetCallerFromContext(r.Context()), examinationID); err != nil {
		response.AppError(w, err, "Failed to delete examination")
		return
	}

	response.Success(w, http.StatusOK, "Examination deleted successfully", nil)
}
