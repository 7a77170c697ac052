package dto

import "github.com/google/uuid"

// Request DTOs

type SpecialtyRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// Response DTOs

type SpecialtyResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type SpecialtyListResponse struct {
	Specialties []SpecialtyResponse `json:"specialties"`
	Total       int                 `json:"total"`
}
