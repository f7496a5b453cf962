package repository

import (
	"errors"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type attachmentRepository struct{}

func NewAttachmentRepository() domainRepo.AttachmentRepository {
	return &attachmentRepository{}
}

func (r *attachmentRepository) Create(db *gorm.DB, attachment *entity.Attachment) error {
	return db.Create(attachment).Error
}

func (r *attachmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Attachment, error) {
	var attachment entity.Attachment
	err := db.Where("id = ?", id).First(&attachment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attachment, nil
}

func (r *attachmentRepository) FindByOwner(db *gorm.DB, kind entity.OwnerKind, ownerID uuid.UUID) ([]entity.Attachment, error) {
	var attachments []entity.Attachment
	err := db.
		Where("owner_kind = ? AND owner_id = ?", kind, ownerID).
		Order("created_at DESC").
		Find(&attachments).Error
	if err != nil {
		return nil, err
	}
	return attachments, nil
}

func (r *attachmentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Attachment{})
	return affected.RowsAffected, affected.Error
}
