package dto

import (
	"time"

	"clinic-backend/internal/schedule"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDatedRuleRequest struct {
	DoctorID            uuid.UUID `json:"doctor_id" validate:"required"`
	RuleDate            string    `json:"rule_date" validate:"required"`  // Format: YYYY-MM-DD
	StartTime           string    `json:"start_time" validate:"required"` // Format: HH:MM
	EndTime             string    `json:"end_time" validate:"required"`   // Format: HH:MM
	SlotDurationMinutes int       `json:"slot_duration_minutes" validate:"required,min=5,max=120"`
	MaxSlots            *int      `json:"max_slots" validate:"omitempty,min=1"`
	Notes               string    `json:"notes" validate:"omitempty"`
}

type CreateRecurringRuleRequest struct {
	DoctorID            uuid.UUID `json:"doctor_id" validate:"required"`
	Weekday             int       `json:"weekday" validate:"required,min=1,max=7"` // ISO: Mon=1..Sun=7
	StartTime           string    `json:"start_time" validate:"required"`
	EndTime             string    `json:"end_time" validate:"required"`
	SlotDurationMinutes int       `json:"slot_duration_minutes" validate:"required,min=5,max=120"`
	MaxSlots            *int      `json:"max_slots" validate:"omitempty,min=1"`
	Notes               string    `json:"notes" validate:"omitempty"`
}

type UpdateRuleRequest struct {
	RuleDate            string  `json:"rule_date" validate:"omitempty"`
	Weekday             *int    `json:"weekday" validate:"omitempty,min=1,max=7"`
	StartTime           string  `json:"start_time" validate:"omitempty"`
	EndTime             string  `json:"end_time" validate:"omitempty"`
	SlotDurationMinutes *int    `json:"slot_duration_minutes" validate:"omitempty,min=5,max=120"`
	MaxSlots            *int    `json:"max_slots" validate:"omitempty,min=0"` // 0 clears the cap
	Notes               *string `json:"notes" validate:"omitempty"`
}

// Response DTOs

type ScheduleRuleResponse struct {
	ID                  int             `json:"id"`
	DoctorID            uuid.UUID       `json:"doctor_id"`
	Doctor              *DoctorResponse `json:"doctor,omitempty"`
	Kind                string          `json:"kind"`
	RuleDate            *string         `json:"rule_date,omitempty"`
	Weekday             *int            `json:"weekday,omitempty"`
	StartTime           string          `json:"start_time"`
	EndTime             string          `json:"end_time"`
	SlotDurationMinutes int             `json:"slot_duration_minutes"`
	MaxSlots            *int            `json:"max_slots,omitempty"`
	Active              bool            `json:"active"`
	Notes               string          `json:"notes,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

type ScheduleRuleListResponse struct {
	Rules []ScheduleRuleResponse `json:"rules"`
	Total int                    `json:"total"`
}

// AvailabilityResponse is the result of resolving which rule applies for a
// doctor on a calendar date. TotalSlots is the raw expansion count;
// AvailableCapacity additionally honors the rule's max slots cap. The slot
// list itself is never truncated by the cap.
type AvailabilityResponse struct {
	DoctorID          uuid.UUID             `json:"doctor_id"`
	Date              string                `json:"date"`
	Rule              *ScheduleRuleResponse `json:"rule,omitempty"`
	Slots             []schedule.Slot       `json:"slots"`
	TotalSlots        int                   `json:"total_slots"`
	AvailableCapacity int                   `json:"available_capacity"`
}
