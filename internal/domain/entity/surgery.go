package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SurgeryStatus represents the status of a surgery
type SurgeryStatus string

const (
	SurgeryStatusScheduled SurgeryStatus = "scheduled"
	SurgeryStatusCompleted SurgeryStatus = "completed"
	SurgeryStatusCancelled SurgeryStatus = "cancelled"
)

// Surgery represents a surgical procedure record
type Surgery struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"doctor_id"`
	SurgeryType   string          `gorm:"type:varchar(150);not null" json:"surgery_type"`
	ScheduledDate time.Time       `gorm:"type:date;not null;index" json:"scheduled_date"`
	Cost          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"cost"`
	Status        SurgeryStatus   `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Surgery) TableName() string {
	return "surgeries"
}
