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

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.DoctorRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.CreateDoctor(r.Context(), middleware.GetCallerFromContext(r.Context()), &req)
	if err != nil {
		response.AppError(w, err, "Failed to create doctor")
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		response.AppError(w, err, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

func (h *DoctorHandler) GetDoctorByUIN(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.doctorUsecase.GetDoctorByUIN(r.Context(), mux.Vars(r)["uin"])
	if err != nil {
		response.AppError(w, err, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// GetMyDoctor returns the doctor record linked to the current account.
func (h *DoctorHandler) GetMyDoctor(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	doctor, err := h.doctorUsecase.GetDoctorByUserID(r.Context(), userID)
	if err != nil {
		response.AppError(w, err, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.GetAllDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) GetGPs(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.GetGPs(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get general practitioners")
		return
	}

	response.Success(w, http.StatusOK, "General practitioners retrieved successfully", doctors)
}

func (h *DoctorHandler) GetDoctorsBySpecialty(w http.ResponseWriter, r *http.Request) {
	specialtyID, ok := pathID(w, r, "specialtyId", "specialty")
	if !ok {
		return
	}

	doctors, err := h.doctorUsecase.GetDoctorsBySpecialty(r.Context(), specialtyID)
	if err != nil {
		response.AppError(w, err, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}

	var req dto.DoctorRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.UpdateDoctor(r.Context(), middleware.GetCallerFromContext(r.Context()), doctorID, &req)
	if err != nil {
		response.AppError(w, err, "Failed to update doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", doctor)
}

func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}

	if err := h.doctorUsecase.DeleteDoctor(r.Context(), middleware.GetCallerFromContext(r.Context()), doctorID); err != nil {
		response.AppError(w, err, "Failed to delete doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}
