package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

// SickLeaveRequest is embedded in ExaminationRequest. Leaving both fields
// empty means no sick leave.
type SickLeaveRequest struct {
	StartDate    string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	NumberOfDays int    `json:"number_of_days"`
}

// Response DTOs

type SickLeaveResponse struct {
	ID            uuid.UUID `json:"id"`
	ExaminationID uuid.UUID `json:"examination_id"`
	StartDate     string    `json:"start_date"`
	NumberOfDays  int       `json:"number_of_days"`
	EndDate       string    `json:"end_date"`
}

type SickLeaveListResponse struct {
	SickLeaves []SickLeaveResponse `json:"sick_leaves"`
	Total      int                 `json:"total"`
}
