package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type DoctorRequest struct {
	UIN          string      `json:"uin" validate:"required,min=6,max=20"`
	Name         string      `json:"name" validate:"required,min=2,max=100"`
	IsGP         bool        `json:"is_gp"`
	SpecialtyIDs []uuid.UUID `json:"specialty_ids" validate:"omitempty,dive,required"`
}

// Response DTOs

type DoctorResponse struct {
	ID           uuid.UUID           `json:"id"`
	UIN          string              `json:"uin"`
	Name         string              `json:"name"`
	IsGP         bool                `json:"is_gp"`
	Specialties  []SpecialtyResponse `json:"specialties"`
	PatientCount int64               `json:"patient_count"`
}

// DoctorSummary is the compact form embedded in other responses.
type DoctorSummary struct {
	ID   uuid.UUID `json:"id"`
	UIN  string    `json:"uin"`
	Name string    `json:"name"`
	IsGP bool      `json:"is_gp"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
