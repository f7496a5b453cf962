package repository

import (
	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttachmentRepository interface {
	Create(db *gorm.DB, attachment *entity.Attachment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Attachment, error)
	FindByOwner(db *gorm.DB, kind entity.OwnerKind, ownerID uuid.UUID) ([]entity.Attachment, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
