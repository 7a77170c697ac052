package converter

import (
	"time"

	"medical-record/internal/delivery/dto"
	"medical-record/internal/domain/entity"
)

// UserToResponse converts a User entity plus its optional linked records.
func UserToResponse(user *entity.User, doctor *entity.Doctor, patient *entity.Patient, today time.Time) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role.String(),
		Doctor:    DoctorToSummary(doctor),
		Patient:   PatientToSummary(patient, today),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
