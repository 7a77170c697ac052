package converter

import (
	"medical-record/internal/delivery/dto"
	"medical-record/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO. The patient
// count is queried separately and passed in.
func DoctorToResponse(doctor *entity.Doctor, patientCount int64) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:           doctor.ID,
		UIN:          doctor.UIN,
		Name:         doctor.Name,
		IsGP:         doctor.IsGP,
		Specialties:  SpecialtiesToResponses(doctor.Specialties),
		PatientCount: patientCount,
	}
}

func DoctorToSummary(doctor *entity.Doctor) *dto.DoctorSummary {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorSummary{
		ID:   doctor.ID,
		UIN:  doctor.UIN,
		Name: doctor.Name,
		IsGP: doctor.IsGP,
	}
}
