package repository

import (
	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SurgeryRepository interface {
	Create(db *gorm.DB, surgery *entity.Surgery) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Surgery, error)
	FindAll(db *gorm.DB, filter *entity.SurgeryFilter) ([]entity.Surgery, error)
	Update(db *gorm.DB, surgery *entity.Surgery) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
