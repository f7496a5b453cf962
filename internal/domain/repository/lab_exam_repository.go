package repository

import (
	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LabExamRepository interface {
	Create(db *gorm.DB, exam *entity.LabExam) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.LabExam, error)
	FindAll(db *gorm.DB, filter *entity.LabExamFilter) ([]entity.LabExam, error)
	Update(db *gorm.DB, exam *entity.LabExam) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
