package handler

import (
	"net/http"

	"medical-record/internal/delivery/http/middleware"
	"medical-record/internal/usecase"
	"medical-record/pkg/response"
)

type SickLeaveHandler struct {
	sickLeaveUsecase usecase.SickLeaveUsecase
}

func NewSickLeaveHandler(sickLeaveUsecase usecase.SickLeaveUsecase) *SickLeaveHandler {
	return &SickLeaveHandler{
		sickLeaveUsecase: sickLeaveUsecase,
	}
}

func (h *SickLeaveHandler) GetSickLeave(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "sick leave")
	if !ok {
		return
	}

	sickLeave, err := h.sickLeaveUsecase.GetSickLeave(r.Context(), id)
	if err != nil {
		response.AppError(w, err, "Failed to get sick leave")
		return
	}

	response.Success(w, http.StatusOK, "Sick leave retrieved successfully", sickLeave)
}

func (h *SickLeaveHandler) GetAllSickLeaves(w http.ResponseWriter, r *http.Request) {
	sickLeaves, err := h.sickLeaveUsecase.GetAllSickLeaves(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get sick leaves")
		return
	}

	response.Success(w, http.StatusOK, "Sick leaves retrieved successfully", sickLeaves)
}

func (h *SickLeaveHandler) GetSickLeaveByExamination(w http.ResponseWriter, r *http.Request) {
	examinationID, ok := pathID(w, r, "examinationId", "examination")
	if !ok {
		return
	}

	sickLeave, err := h.sickLeaveUsecase.GetSickLeaveByExamination(r.Context(), examinationID)
	if err != nil {
		response.AppError(w, err, "Failed to get sick leave")
		return
	}

	response.Success(w, http.StatusOK, "Sick leave retrieved successfully", sickLeave)
}

func (h *SickLeaveHandler) GetSickLeavesByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(w, r, "patientId", "patient")
	if !ok {
		return
	}

	sickLeaves, err := h.sickLeaveUsecase.GetSickLeavesByPatient(r.Context(), patientID)
	if err != nil {
		response.AppError(w, err, "Failed to get sick leaves")
		return
	}

	response.Success(w, http.StatusOK, "Sick leaves retrieved successfully", sickLeaves)
}

func (h *SickLeaveHandler) DeleteSickLeave(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "sick leave")
	if !ok {
		return
	}

	if err := h.sickLeaveUsecase.DeleteSickLeave(r.Context(), middleware.GetCallerFromContext(r.Context()), id); err != nil {
		response.AppError(w, err, "Failed to delete sick leave")
		return
	}

	response.Success(w, http.StatusOK, "Sick leave deleted successfully", nil)
}
