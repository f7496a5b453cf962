package dto

import "github.com/google/uuid"

// Request DTOs

type UpdatePatientRequest struct {
	FullName    string  `json:"full_name" validate:"omitempty,min=2"`
	PhoneNumber string  `json:"phone_number" validate:"omitempty,min=10,max=20"`
	DateOfBirth string  `json:"date_of_birth" validate:"omitempty"` // Format: YYYY-MM-DD
	Gender      string  `json:"gender" validate:"omitempty,oneof=M F"`
	Address     *string `json:"address" validate:"omitempty"`
}

// Response DTOs

type PatientResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	DocumentNumber string    `json:"document_number"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	DateOfBirth    string    `json:"date_of_birth"`
	Gender         string    `json:"gender"`
	Address        string    `json:"address,omitempty"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
