package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateSurgeryRequest struct {
	PatientID     uuid.UUID `json:"patient_id" validate:"required"`
	DoctorID      uuid.UUID `json:"doctor_id" validate:"required"`
	SurgeryType   string    `json:"surgery_type" validate:"required"`
	ScheduledDate string    `json:"scheduled_date" validate:"required"` // Format: YYYY-MM-DD
	Cost          string    `json:"cost" validate:"omitempty"`
	Notes         string    `json:"notes" validate:"omitempty"`
}

type UpdateSurgeryRequest struct {
	SurgeryType   string  `json:"surgery_type" validate:"omitempty"`
	ScheduledDate string  `json:"scheduled_date" validate:"omitempty"`
	Cost          string  `json:"cost" validate:"omitempty"`
	Status        string  `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	Notes         *string `json:"notes" validate:"omitempty"`
}

// Response DTOs

type SurgeryResponse struct {
	ID            uuid.UUID        `json:"id"`
	PatientID     uuid.UUID        `json:"patient_id"`
	DoctorID      uuid.UUID        `json:"doctor_id"`
	Patient       *PatientResponse `json:"patient,omitempty"`
	Doctor        *DoctorResponse  `json:"doctor,omitempty"`
	SurgeryType   string           `json:"surgery_type"`
	ScheduledDate string           `json:"scheduled_date"`
	Cost          decimal.Decimal  `json:"cost"`
	Status        string           `json:"status"`
	Notes         string           `json:"notes,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type SurgeryListResponse struct {
	Surgeries []SurgeryResponse `json:"surgeries"`
	Total     int               `json:"total"`
}
