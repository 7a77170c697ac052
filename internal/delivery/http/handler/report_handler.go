package handler

import (
	"net/http"

	"medical-record/internal/delivery/dto"
	"medical-record/internal/usecase"
	"medical-record/pkg/response"
	"medical-record/pkg/validator"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
	validator     *validator.CustomValidator
}

func NewReportHandler(reportUsecase usecase.ReportUsecase, validator *validator.CustomValidator) *ReportHandler {
	return &ReportHandler{
		reportUsecase: reportUsecase,
		validator:     validator,
	}
}

func (h *ReportHandler) MostFrequentDiagnoses(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportUsecase.GetMostFrequentDiagnoses(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to build report")
		return
	}
	response.Success(w, http.StatusOK, "Report generated successfully", rows)
}

func (h *ReportHandler) PatientCountPerGP(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportUsecase.GetPatientCountPerGP(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to build report")
		return
	}
	response.Success(w, http.StatusOK, "Report generated successfully", rows)
}

func (h *ReportHandler) ExaminationCountPerDoctor(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportUsecase.GetExaminationCountPerDoctor(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to build report")
		return
	}
	response.Success(w, http.StatusOK, "Report generated successfully", rows)
}

func (h *ReportHandler) DoctorsWithMostSickLeaves(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportUsecase.GetDoctorsWithMostSickLeaves(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to build report")
		return
	}
	response.Success(w, http.StatusOK, "Report generated successfully", rows)
}

func (h *ReportHandler) SickLeavesByMonth(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportUsecase.GetSickLeaveCountsByMonth(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to build report")
		return
	}
	response.Success(w, http.StatusOK, "Report generated successfully", rows)
}

func (h *ReportHandler) ExaminationsByPatient(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportUsecase.GetExaminationsGroupedByPatient(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to build report")
		return
	}
	response.Success(w, http.StatusOK, "Report generated successfully", rows)
}

// periodRequest reads start_date and end_date query parameters.
func (h *ReportHandler) periodRequest(w http.ResponseWriter, r *http.Request) (*dto.ExaminationPeriodRequest, bool) {
	req := &dto.ExaminationPeriodRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return nil, false
	}
	return req, true
}

func (h *ReportHandler) ExaminationsInPeriod(w http.ResponseWriter, r *http.Request) {
	req, ok := h.periodRequest(w, r)
	if !ok {
		return
	}

	examinations, err := h.reportUsecase.GetExaminationsInPeriod(r.Context(), req)
	if err != nil {
		response.AppError(w, err, "Failed to build report")
		return
	}
	response.Success(w, http.StatusOK, "Report generated successfully", examinations)
}

func (h *ReportHandler) DoctorExaminationsInPeriod(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "doctorId", "doctor")
	if !ok {
		return
	}
	req, ok := h.periodRequest(w, r)
	if !ok {
		return
	}

	examinations, err := h.reportUsecase.GetDoctorExaminationsInPeriod(r.Context(), doctorID, req)
	if err != nil {
		response.AppError(w, err, "Failed to build report")
		return
	}
	response.Success(w, http.StatusOK, "Report generated successfully", examinations)
}
