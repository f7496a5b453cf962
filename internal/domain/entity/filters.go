package entity

import "github.com/google/uuid"

// AttentionFilter is a domain-level filter for querying attentions.
// Used by repository layer to avoid coupling with delivery DTOs.
type AttentionFilter struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
	StartAt   string // Format: YYYY-MM-DD
	EndAt     string // Format: YYYY-MM-DD
	Status    string
}

// SurgeryFilter filters surgery listings.
type SurgeryFilter struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
	Status    string
}

// LabExamFilter filters lab exam listings.
type LabExamFilter struct {
	PatientID     *uuid.UUID
	RequestedByID *uuid.UUID
	Status        string
}
