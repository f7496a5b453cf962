package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/schedule"

	"github.com/google/uuid"
)

// SurgeryToResponse converts a Surgery entity to SurgeryResponse DTO
func SurgeryToResponse(surgery *entity.Surgery) *dto.SurgeryResponse {
	if surgery == nil {
		return nil
	}

	response := &dto.SurgeryResponse{
		ID:            surgery.ID,
		PatientID:     surgery.PatientID,
		DoctorID:      surgery.DoctorID,
		SurgeryType:   surgery.SurgeryType,
		ScheduledDate: surgery.ScheduledDate.Format(schedule.DateLayout),
		Cost:          surgery.Cost,
		Status:        string(surgery.Status),
		Notes:         surgery.Notes,
		CreatedAt:     surgery.CreatedAt,
		UpdatedAt:     surgery.UpdatedAt,
	}

	if surgery.Doctor.UserID != uuid.Nil {
		response.Doctor = DoctorToResponse(&surgery.Doctor)
	}
	if surgery.Patient.UserID != uuid.Nil {
		response.Patient = PatientToResponse(&surgery.Patient)
	}

	return response
}

// SurgeriesToResponses converts a slice of Surgery entities to DTOs
func SurgeriesToResponses(surgeries []entity.Surgery) []dto.SurgeryResponse {
	responses := make([]dto.SurgeryResponse, len(surgeries))
	for i := range surgeries {
		responses[i] = *SurgeryToResponse(&surgeries[i])
	}
	return responses
}
