package dto

import "github.com/google/uuid"

// Request DTOs

type UpdateDoctorRequest struct {
	FullName       string  `json:"full_name" validate:"omitempty,min=2"`
	LicenseNumber  string  `json:"license_number" validate:"omitempty"`
	Specialization string  `json:"specialization" validate:"omitempty"`
	Biography      *string `json:"biography" validate:"omitempty"`
}

// Response DTOs

type DoctorResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	LicenseNumber  string    `json:"license_number"`
	Specialization string    `json:"specialization"`
	Biography      string    `json:"biography,omitempty"`
	IsActive       bool      `json:"is_active"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
