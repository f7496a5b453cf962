package repository

import (
	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientProfileRepository interface {
	Create(db *gorm.DB, profile *entity.PatientProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error)
	// FindByUserIDUnscoped also returns soft-deleted profiles; used by restore.
	FindByUserIDUnscoped(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error)
	FindAll(db *gorm.DB) ([]entity.PatientProfile, error)
	Update(db *gorm.DB, profile *entity.PatientProfile) error
	Delete(db *gorm.DB, userID uuid.UUID) (int64, error)
	Restore(db *gorm.DB, userID uuid.UUID) error
}
