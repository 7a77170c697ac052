package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RegisterRequest creates an identity account. Doctor is read for the DOCTOR
// role and Patient for the PATIENT role; either may be omitted.
type RegisterRequest struct {
	Username string          `json:"username" validate:"required,min=3,max=50"`
	Password string          `json:"password" validate:"required,min=6,max=100"`
	Role     string          `json:"role" validate:"required,oneof=ADMIN DOCTOR PATIENT"`
	Doctor   *DoctorRequest  `json:"doctor"`
	Patient  *PatientRequest `json:"patient"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID        uuid.UUID       `json:"id"`
	Username  string          `json:"username"`
	Role      string          `json:"role"`
	Doctor    *DoctorSummary  `json:"doctor,omitempty"`
	Patient   *PatientSummary `json:"patient,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
