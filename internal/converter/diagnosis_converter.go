package converter

import (
	"medical-record/internal/delivery/dto"
	"medical-record/internal/domain/entity"
)

func DiagnosisToResponse(diagnosis *entity.Diagnosis) *dto.DiagnosisResponse {
	if diagnosis == nil {
		return nil
	}

	return &dto.DiagnosisResponse{
		ID:          diagnosis.ID,
		Code:        diagnosis.Code,
		Name:        diagnosis.Name,
		Description: diagnosis.Description,
	}
}

func DiagnosesToResponses(diagnoses []entity.Diagnosis) []dto.DiagnosisResponse {
	responses := make([]dto.DiagnosisResponse, len(diagnoses))
	for i := range diagnoses {
		responses[i] = *DiagnosisToResponse(&diagnoses[i])
	}
	return responses
}
