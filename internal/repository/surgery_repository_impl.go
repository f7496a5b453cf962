package repository

import (
	"errors"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type surgeryRepository struct{}

func NewSurgeryRepository() domainRepo.SurgeryRepository {
	return &surgeryRepository{}
}

func (r *surgeryRepository) Create(db *gorm.DB, surgery *entity.Surgery) error {
	return db.Create(surgery).Error
}

func (r *surgeryRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Surgery, error) {
	var surgery entity.Surgery
	err := db.Preload("Doctor.User").Preload("Patient.User").Where("id = ?", id).First(&surgery).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &surgery, nil
}

func (r *surgeryRepository) FindAll(db *gorm.DB, filter *entity.SurgeryFilter) ([]entity.Surgery, error) {
	var surgeries []entity.Surgery
	query := db.Preload("Doctor.User").Preload("Patient.User")

	if filter != nil {
		if filter.DoctorID != nil {
			query = query.Where("doctor_id = ?", *filter.DoctorID)
		}
		if filter.PatientID != nil {
			query = query.Where("patient_id = ?", *filter.PatientID)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
	}

	err := query.Order("scheduled_date ASC").Find(&surgeries).Error
	if err != nil {
		return nil, err
	}
	return surgeries, nil
}

func (r *surgeryRepository) Update(db *gorm.DB, surgery *entity.Surgery) error {
	return db.Omit("Doctor", "Patient").Save(surgery).Error
}

func (r *surgeryRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Surgery{})
	return affected.RowsAffected, affected.Error
}
