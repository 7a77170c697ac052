package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type PatientRequest struct {
	Name                 string     `json:"name" validate:"required,min=2,max=100"`
	EGN                  string     `json:"egn" validate:"required,numeric,len=10"`
	LastInsurancePayment *string    `json:"last_insurance_payment" validate:"omitempty,datetime=2006-01-02"` // Format: YYYY-MM-DD
	GPID                 *uuid.UUID `json:"gp_id"`
}

// Response DTOs

type PatientResponse struct {
	ID                   uuid.UUID      `json:"id"`
	Name                 string         `json:"name"`
	EGN                  string         `json:"egn"`
	LastInsurancePayment *string        `json:"last_insurance_payment,omitempty"`
	HasValidInsurance    bool           `json:"has_valid_insurance"`
	GP                   *DoctorSummary `json:"gp,omitempty"`
}

// PatientSummary is the compact form embedded in other responses.
type PatientSummary struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	EGN               string    `json:"egn"`
	HasValidInsurance bool      `json:"has_valid_insurance"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
