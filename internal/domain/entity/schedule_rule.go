package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RuleKind distinguishes one-off dated rules from weekly recurring rules.
type RuleKind string

const (
	RuleKindDated     RuleKind = "dated"
	RuleKindRecurring RuleKind = "recurring"
)

// ScheduleRule is a doctor's availability definition. Exactly one of
// RuleDate/Weekday is set, matching Kind. Slots are derived from the rule
// on every query and never stored.
//
// Active uniqueness is enforced by partial unique indexes in the schema:
// one active dated rule per (doctor_id, rule_date) and one active recurring
// rule per (doctor_id, weekday), both ignoring soft-deleted rows.
type ScheduleRule struct {
	ID                  int            `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID            uuid.UUID      `gorm:"type:uuid;not null;index:idx_schedule_rules_doctor_date;index:idx_schedule_rules_doctor_weekday" json:"doctor_id"`
	Kind                RuleKind       `gorm:"type:varchar(20);not null" json:"kind"`
	RuleDate            *time.Time     `gorm:"type:date;index:idx_schedule_rules_doctor_date" json:"rule_date,omitempty"`
	Weekday             *int           `gorm:"type:smallint;index:idx_schedule_rules_doctor_weekday" json:"weekday,omitempty"`
	StartTime           string         `gorm:"type:time;not null" json:"start_time"`
	EndTime             string         `gorm:"type:time;not null" json:"end_time"`
	SlotDurationMinutes int            `gorm:"not null" json:"slot_duration_minutes"`
	MaxSlots            *int           `json:"max_slots,omitempty"`
	Active              bool           `gorm:"not null;default:true;index" json:"active"`
	Notes               string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt           time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (ScheduleRule) TableName() string {
	return "schedule_rules"
}

// IsDated reports whether the rule is bound to one calendar date.
func (r *ScheduleRule) IsDated() bool {
	return r.Kind == RuleKindDated
}

// IsRecurring reports whether the rule repeats weekly.
func (r *ScheduleRule) IsRecurring() bool {
	return r.Kind == RuleKindRecurring
}
