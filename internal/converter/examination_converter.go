package converter

import (
	"time"

	"medical-record/internal/delivery/dto"
	"medical-record/internal/domain/entity"
)

func ExaminationToResponse(examination *entity.Examination, today time.Time) *dto.ExaminationResponse {
	if examination == nil {
		return nil
	}

	return &dto.ExaminationResponse{
		ID:              examination.ID,
		ExaminationDate: examination.ExaminationDate.Format(entity.DateLayout),
		Patient:         PatientToSummary(examination.Patient, today),
		Doctor:          DoctorToSummary(examination.Doctor),
		Diagnosis:       DiagnosisToResponse(examination.Diagnosis),
		Treatment:       examination.Treatment,
		Prescription:    examination.Prescription,
		SickLeave:       SickLeaveToResponse(examination.SickLeave),
	}
}

func ExaminationsToResponses(examinations []entity.Examination, today time.Time) []dto.ExaminationResponse {
	responses := make([]dto.ExaminationResponse, len(examinations))
	for i := range examinations {
		responses[i] = *ExaminationToResponse(&examinations[i], today)
	}
	return responses
}

func SickLeaveToResponse(sickLeave *entity.SickLeave) *dto.SickLeaveResponse {
	if sickLeave == nil {
		return nil
	}

	return &dto.SickLeaveResponse{
		ID:            sickLeave.ID,
		ExaminationID: sickLeave.ExaminationID,
		StartDate:     sickLeave.StartDate.Format(entity.DateLayout),
		NumberOfDays:  sickLeave.NumberOfDays,
		EndDate:       sickLeave.EndDate().Format(entity.DateLayout),
	}
}

func SickLeavesToResponses(sickLeaves []entity.SickLeave) []dto.SickLeaveResponse {
	responses := make([]dto.SickLeaveResponse, len(sickLeaves))
	for i := range sickLeaves {
		responses[i] = *SickLeaveToResponse(&sickLeaves[i])
	}
	return responses
}
