package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/schedule"
)

// PatientToResponse converts a PatientProfile entity to PatientResponse DTO
func PatientToResponse(profile *entity.PatientProfile) *dto.PatientResponse {
	if profile == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:             profile.UserID,
		Email:          profile.User.Email,
		FullName:       profile.User.FullName,
		DocumentNumber: profile.DocumentNumber,
		PhoneNumber:    profile.PhoneNumber,
		DateOfBirth:    profile.DateOfBirth.Format(schedule.DateLayout),
		Gender:         profile.Gender,
		Address:        profile.Address,
	}
}

// PatientsToResponses converts a slice of PatientProfile entities to DTOs
func PatientsToResponses(profiles []entity.PatientProfile) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(profiles))
	for i := range profiles {
		responses[i] = *PatientToResponse(&profiles[i])
	}
	return responses
}
