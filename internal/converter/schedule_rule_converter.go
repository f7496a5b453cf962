package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/schedule"

	"github.com/google/uuid"
)

// RuleToResponse converts a ScheduleRule entity to ScheduleRuleResponse DTO
func RuleToResponse(rule *entity.ScheduleRule) *dto.ScheduleRuleResponse {
	if rule == nil {
		return nil
	}

	response := &dto.ScheduleRuleResponse{
		ID:                  rule.ID,
		DoctorID:            rule.DoctorID,
		Kind:                string(rule.Kind),
		Weekday:             rule.Weekday,
		StartTime:           rule.StartTime,
		EndTime:             rule.EndTime,
		SlotDurationMinutes: rule.SlotDurationMinutes,
		MaxSlots:            rule.MaxSlots,
		Active:              rule.Active,
		Notes:               rule.Notes,
		CreatedAt:           rule.CreatedAt,
		UpdatedAt:           rule.UpdatedAt,
	}

	if rule.RuleDate != nil {
		formatted := rule.RuleDate.Format(schedule.DateLayout)
		response.RuleDate = &formatted
	}

	// Include doctor info if available
	if rule.Doctor.UserID != uuid.Nil {
		response.Doctor = DoctorToResponse(&rule.Doctor)
	}

	return response
}

// RulesToResponses converts a slice of ScheduleRule entities to DTOs
func RulesToResponses(rules []entity.ScheduleRule) []dto.ScheduleRuleResponse {
	responses := make([]dto.ScheduleRuleResponse, len(rules))
	for i := range rules {
		responses[i] = *RuleToResponse(&rules[i])
	}
	return responses
}
