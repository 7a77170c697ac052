package converter

import (
	"time"

	"medical-record/internal/delivery/dto"
	"medical-record/internal/domain/entity"
)

func DiagnosisFrequenciesToResponses(rows []entity.DiagnosisFrequency) []dto.DiagnosisFrequencyResponse {
	responses := make([]dto.DiagnosisFrequencyResponse, len(rows))
	for i := range rows {
		responses[i] = dto.DiagnosisFrequencyResponse{
			Diagnosis: *DiagnosisToResponse(&rows[i].Diagnosis),
			Frequency: rows[i].Frequency,
		}
	}
	return responses
}

func DoctorPatientCountsToResponses(rows []entity.DoctorPatientCount) []dto.DoctorPatientCountResponse {
	responses := make([]dto.DoctorPatientCountResponse, len(rows))
	for i := range rows {
		responses[i] = dto.DoctorPatientCountResponse{
			Doctor:       *DoctorToSummary(&rows[i].Doctor),
			PatientCount: rows[i].PatientCount,
		}
	}
	return responses
}

func DoctorExaminationCountsToResponses(rows []entity.DoctorExaminationCount) []dto.DoctorExaminationCountResponse {
	responses := make([]dto.DoctorExaminationCountResponse, len(rows))
	for i := range rows {
		responses[i] = dto.DoctorExaminationCountResponse{
			Doctor:           *DoctorToSummary(&rows[i].Doctor),
			ExaminationCount: rows[i].ExaminationCount,
		}
	}
	return responses
}

func DoctorSickLeaveCountsToResponses(rows []entity.DoctorSickLeaveCount) []dto.DoctorSickLeaveCountResponse {
	responses := make([]dto.DoctorSickLeaveCountResponse, len(rows))
	for i := range rows {
		responses[i] = dto.DoctorSickLeaveCountResponse{
			Doctor:         *DoctorToSummary(&rows[i].Doctor),
			SickLeaveCount: rows[i].SickLeaveCount,
		}
	}
	return responses
}

func MonthSickLeaveCountsToResponses(rows []entity.MonthSickLeaveCount) []dto.MonthSickLeaveCountResponse {
	responses := make([]dto.MonthSickLeaveCountResponse, len(rows))
	for i, row := range rows {
		responses[i] = dto.MonthSickLeaveCountResponse{
			Month: int(row.Month),
			Year:  row.Year,
			Count: row.Count,
		}
	}
	return responses
}

func PatientExaminationsToResponses(groups []entity.PatientExaminations, today time.Time) []dto.PatientExaminationsResponse {
	responses := make([]dto.PatientExaminationsResponse, len(groups))
	for i := range groups {
		responses[i] = dto.PatientExaminationsResponse{
			Patient:      *PatientToSummary(&groups[i].Patient, today),
			Examinations: ExaminationsToResponses(groups[i].Examinations, today),
		}
	}
	return responses
}
