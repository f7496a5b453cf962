package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AttentionStatus represents the status of an attention (patient visit)
type AttentionStatus string

const (
	AttentionStatusScheduled AttentionStatus = "scheduled"
	AttentionStatusCompleted AttentionStatus = "completed"
	AttentionStatusCancelled AttentionStatus = "cancelled"
)

// Attention represents a patient visit booked into a schedule slot. The
// slot is referenced by value (date + start time), not by id, because slots
// are derived from rules and never persisted.
type Attention struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AttentionDate time.Time       `gorm:"type:date;not null;index" json:"attention_date"`
	SlotStartTime string          `gorm:"type:time;not null" json:"slot_start_time"`
	Reason        string          `gorm:"type:text" json:"reason,omitempty"`
	Diagnosis     string          `gorm:"type:text" json:"diagnosis,omitempty"`
	Fee           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"fee"`
	Status        AttentionStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Attention) TableName() string {
	return "attentions"
}

// IsScheduled checks if the attention is still upcoming
func (a *Attention) IsScheduled() bool {
	return a.Status == AttentionStatusScheduled
}

// Complete marks the attention as completed
func (a *Attention) Complete() {
	a.Status = AttentionStatusCompleted
}

// Cancel marks the attention as cancelled
func (a *Attention) Cancel() {
	a.Status = AttentionStatusCancelled
}
