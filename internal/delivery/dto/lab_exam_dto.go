package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateLabExamRequest struct {
	PatientID     uuid.UUID `json:"patient_id" validate:"required"`
	RequestedByID uuid.UUID `json:"requested_by_id" validate:"required"`
	ExamType      string    `json:"exam_type" validate:"required"`
	Price         string    `json:"price" validate:"omitempty"`
}

type UpdateLabExamRequest struct {
	ExamType string  `json:"exam_type" validate:"omitempty"`
	Price    string  `json:"price" validate:"omitempty"`
	Status   string  `json:"status" validate:"omitempty,oneof=requested in_progress completed"`
	Result   *string `json:"result" validate:"omitempty"`
}

// Response DTOs

type LabExamResponse struct {
	ID            uuid.UUID        `json:"id"`
	PatientID     uuid.UUID        `json:"patient_id"`
	RequestedByID uuid.UUID        `json:"requested_by_id"`
	Patient       *PatientResponse `json:"patient,omitempty"`
	RequestedBy   *DoctorResponse  `json:"requested_by,omitempty"`
	ExamType      string           `json:"exam_type"`
	Price         decimal.Decimal  `json:"price"`
	Status        string           `json:"status"`
	Result        string           `json:"result,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type LabExamListResponse struct {
	Exams []LabExamResponse `json:"exams"`
	Total int               `json:"total"`
}
