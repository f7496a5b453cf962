package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateAttentionRequest struct {
	PatientID     uuid.UUID `json:"patient_id" validate:"required"`
	DoctorID      uuid.UUID `json:"doctor_id" validate:"required"`
	AttentionDate string    `json:"attention_date" validate:"required"`  // Format: YYYY-MM-DD
	SlotStartTime string    `json:"slot_start_time" validate:"required"` // Format: HH:MM
	Reason        string    `json:"reason" validate:"omitempty"`
	Fee           string    `json:"fee" validate:"omitempty"` // decimal string, e.g. "150.00"
}

type UpdateAttentionRequest struct {
	Reason    *string `json:"reason" validate:"omitempty"`
	Diagnosis *string `json:"diagnosis" validate:"omitempty"`
	Status    string  `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	Fee       string  `json:"fee" validate:"omitempty"`
}

// Response DTOs

type AttentionResponse struct {
	ID            uuid.UUID        `json:"id"`
	PatientID     uuid.UUID        `json:"patient_id"`
	DoctorID      uuid.UUID        `json:"doctor_id"`
	Patient       *PatientResponse `json:"patient,omitempty"`
	Doctor        *DoctorResponse  `json:"doctor,omitempty"`
	AttentionDate string           `json:"attention_date"`
	SlotStartTime string           `json:"slot_start_time"`
	Reason        string           `json:"reason,omitempty"`
	Diagnosis     string           `json:"diagnosis,omitempty"`
	Fee           decimal.Decimal  `json:"fee"`
	Status        string           `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type AttentionListResponse struct {
	Attentions []AttentionResponse `json:"attentions"`
	Total      int                 `json:"total"`
}
