package converter

import (
	"time"

	"medical-record/internal/delivery/dto"
	"medical-record/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO,
// evaluating insurance validity against today.
func PatientToResponse(patient *entity.Patient, today time.Time) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:                   patient.ID,
		Name:                 patient.Name,
		EGN:                  patient.EGN,
		LastInsurancePayment: formatDatePtr(patient.LastInsurancePayment),
		HasValidInsurance:    patient.HasValidInsurance(today),
		GP:                   DoctorToSummary(patient.GP),
	}
}

func PatientsToResponses(patients []entity.Patient, today time.Time) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i], today)
	}
	return responses
}

func PatientToSummary(patient *entity.Patient, today time.Time) *dto.PatientSummary {
	if patient == nil {
		return nil
	}

	return &dto.PatientSummary{
		ID:                patient.ID,
		Name:              patient.Name,
		EGN:               patient.EGN,
		HasValidInsurance: patient.HasValidInsurance(today),
	}
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(entity.DateLayout)
	return &s
}
