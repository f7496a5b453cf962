package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnerKind is the closed set of record types an attachment may belong to.
// Ownership is a tagged (kind, id) pair resolved through an explicit
// dispatch table, never a free-form type-name string.
type OwnerKind string

const (
	OwnerKindPatient   OwnerKind = "patient"
	OwnerKindAttention OwnerKind = "attention"
	OwnerKindSurgery   OwnerKind = "surgery"
	OwnerKindLabExam   OwnerKind = "lab_exam"
)

// ValidOwnerKind reports whether the kind is one of the known owner kinds.
func ValidOwnerKind(k OwnerKind) bool {
	switch k {
	case OwnerKindPatient, OwnerKindAttention, OwnerKindSurgery, OwnerKindLabExam:
		return true
	}
	return false
}

// Attachment represents a stored file linked to a clinical record
type Attachment struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OwnerKind    OwnerKind      `gorm:"type:varchar(20);not null;index:idx_attachments_owner" json:"owner_kind"`
	OwnerID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_attachments_owner" json:"owner_id"`
	FileName     string         `gorm:"type:varchar(255);not null" json:"file_name"`
	StoragePath  string         `gorm:"type:text;not null" json:"-"`
	ContentType  string         `gorm:"type:varchar(100);not null" json:"content_type"`
	SizeBytes    int64          `gorm:"not null" json:"size_bytes"`
	UploadedByID *uuid.UUID     `gorm:"type:uuid;index" json:"uploaded_by_id,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Attachment) TableName() string {
	return "attachments"
}
