package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/schedule"

	"github.com/google/uuid"
)

// AttentionToResponse converts an Attention entity to AttentionResponse DTO
func AttentionToResponse(attention *entity.Attention) *dto.AttentionResponse {
	if attention == nil {
		return nil
	}

	response := &dto.AttentionResponse{
		ID:            attention.ID,
		PatientID:     attention.PatientID,
		DoctorID:      attention.DoctorID,
		AttentionDate: attention.AttentionDate.Format(schedule.DateLayout),
		SlotStartTime: attention.SlotStartTime,
		Reason:        attention.Reason,
		Diagnosis:     attention.Diagnosis,
		Fee:           attention.Fee,
		Status:        string(attention.Status),
		CreatedAt:     attention.CreatedAt,
		UpdatedAt:     attention.UpdatedAt,
	}

	if attention.Doctor.UserID != uuid.Nil {
		response.Doctor = DoctorToResponse(&attention.Doctor)
	}
	if attention.Patient.UserID != uuid.Nil {
		response.Patient = PatientToResponse(&attention.Patient)
	}

	return response
}

// AttentionsToResponses converts a slice of Attention entities to DTOs
func AttentionsToResponses(attentions []entity.Attention) []dto.AttentionResponse {
	responses := make([]dto.AttentionResponse, len(attentions))
	for i := range attentions {
		responses[i] = *AttentionToResponse(&attentions[i])
	}
	return responses
}
