package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

// ExaminationRequest files or revises an examination. DoctorID is honoured
// only on creation.
type ExaminationRequest struct {
	ExaminationDate string            `json:"examination_date" validate:"required,datetime=2006-01-02"`
	PatientID       uuid.UUID         `json:"patient_id" validate:"required"`
	DoctorID        *uuid.UUID        `json:"doctor_id"`
	DiagnosisID     *uuid.UUID        `json:"diagnosis_id"`
	Treatment       string            `json:"treatment" validate:"omitempty,max=2000"`
	Prescription    string            `json:"prescription" validate:"omitempty,max=1000"`
	SickLeave       *SickLeaveRequest `json:"sick_leave"`
}

type ExaminationPeriodRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// Response DTOs

type ExaminationResponse struct {
	ID              uuid.UUID          `json:"id"`
	ExaminationDate string             `json:"examination_date"`
	Patient         *PatientSummary    `json:"patient,omitempty"`
	Doctor          *DoctorSummary     `json:"doctor,omitempty"`
	Diagnosis       *DiagnosisResponse `json:"diagnosis,omitempty"`
	Treatment       string             `json:"treatment,omitempty"`
	Prescription    string             `json:"prescription,omitempty"`
	SickLeave       *SickLeaveResponse `json:"sick_leave,omitempty"`
}

type ExaminationListResponse struct {
	Examinations []ExaminationResponse `json:"examinations"`
	Total        int                   `json:"total"`
}
