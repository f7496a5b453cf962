package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// LabExamToResponse converts a LabExam entity to LabExamResponse DTO
func LabExamToResponse(exam *entity.LabExam) *dto.LabExamResponse {
	if exam == nil {
		return nil
	}

	response := &dto.LabExamResponse{
		ID:            exam.ID,
		PatientID:     exam.PatientID,
		RequestedByID: exam.RequestedByID,
		ExamType:      exam.ExamType,
		Price:         exam.Price,
		Status:        string(exam.Status),
		Result:        exam.Result,
		CreatedAt:     exam.CreatedAt,
		UpdatedAt:     exam.UpdatedAt,
	}

	if exam.RequestedBy.UserID != uuid.Nil {
		response.RequestedBy = DoctorToResponse(&exam.RequestedBy)
	}
	if exam.Patient.UserID != uuid.Nil {
		response.Patient = PatientToResponse(&exam.Patient)
	}

	return response
}

// LabExamsToResponses converts a slice of LabExam entities to DTOs
func LabExamsToResponses(exams []entity.LabExam) []dto.LabExamResponse {
	responses := make([]dto.LabExamResponse, len(exams))
	for i := range exams {
		responses[i] = *LabExamToResponse(&exams[i])
	}
	return responses
}
