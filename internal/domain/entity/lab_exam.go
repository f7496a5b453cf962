package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LabExamStatus represents the status of a lab exam
type LabExamStatus string

const (
	LabExamStatusRequested  LabExamStatus = "requested"
	LabExamStatusInProgress LabExamStatus = "in_progress"
	LabExamStatusCompleted  LabExamStatus = "completed"
)

// LabExam represents a laboratory exam requested for a patient
type LabExam struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	RequestedByID uuid.UUID       `gorm:"type:uuid;not null;index" json:"requested_by_id"`
	ExamType      string          `gorm:"type:varchar(150);not null" json:"exam_type"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Status        LabExamStatus   `gorm:"type:varchar(20);not null;default:'requested';index" json:"status"`
	Result        string          `gorm:"type:text" json:"result,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Patient     PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	RequestedBy DoctorProfile  `gorm:"foreignKey:RequestedByID" json:"requested_by,omitempty"`
}

func (LabExam) TableName() string {
	return "lab_exams"
}
