package repository

import (
	"errors"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type labExamRepository struct{}

func NewLabExamRepository() domainRepo.LabExamRepository {
	return &labExamRepository{}
}

func (r *labExamRepository) Create(db *gorm.DB, exam *entity.LabExam) error {
	return db.Create(exam).Error
}

func (r *labExamRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.LabExam, error) {
	var exam entity.LabExam
	err := db.Preload("RequestedBy.User").Preload("Patient.User").Where("id = ?", id).First(&exam).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &exam, nil
}

func (r *labExamRepository) FindAll(db *gorm.DB, filter *entity.LabExamFilter) ([]entity.LabExam, error) {
	var exams []entity.LabExam
	query := db.Preload("RequestedBy.User").Preload("Patient.User")

	if filter != nil {
		if filter.PatientID != nil {
			query = query.Where("patient_id = ?", *filter.PatientID)
		}
		if filter.RequestedByID != nil {
			query = query.Where("requested_by_id = ?", *filter.RequestedByID)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
	}

	err := query.Order("created_at DESC").Find(&exams).Error
	if err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *labExamRepository) Update(db *gorm.DB, exam *entity.LabExam) error {
	return db.Omit("RequestedBy", "Patient").Save(exam).Error
}

func (r *labExamRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.LabExam{})
	return affected.RowsAffected, affected.Error
}
