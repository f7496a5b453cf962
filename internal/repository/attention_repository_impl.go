package repository

import (
	"errors"
	"time"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type attentionRepository struct{}

func NewAttentionRepository() domainRepo.AttentionRepository {
	return &attentionRepository{}
}

func (r *attentionRepository) Create(db *gorm.DB, attention *entity.Attention) error {
	return db.Create(attention).Error
}

func (r *attentionRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Attention, error) {
	var attention entity.Attention
	err := db.Preload("Doctor.User").Preload("Patient.User").Where("id = ?", id).First(&attention).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attention, nil
}

func (r *attentionRepository) FindAll(db *gorm.DB, filter *entity.AttentionFilter) ([]entity.Attention, error) {
	var attentions []entity.Attention
	query := db.Preload("Doctor.User").Preload("Patient.User")

	if filter != nil {
		if filter.DoctorID != nil {
			query = query.Where("doctor_id = ?", *filter.DoctorID)
		}
		if filter.PatientID != nil {
			query = query.Where("patient_id = ?", *filter.PatientID)
		}
		if filter.StartAt != "" {
			query = query.Where("attention_date >= ?", filter.StartAt)
		}
		if filter.EndAt != "" {
			query = query.Where("attention_date <= ?", filter.EndAt)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
	}

	err := query.Order("attention_date ASC, slot_start_time ASC").Find(&attentions).Error
	if err != nil {
		return nil, err
	}
	return attentions, nil
}

func (r *attentionRepository) FindBySlot(db *gorm.DB, doctorID uuid.UUID, date time.Time, slotStartTime string) (*entity.Attention, error) {
	var attention entity.Attention
	err := db.
		Where("doctor_id = ? AND attention_date = ? AND slot_start_time = ? AND status <> ?",
			doctorID, date.Format("2006-01-02"), slotStartTime, entity.AttentionStatusCancelled).
		First(&attention).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attention, nil
}

func (r *attentionRepository) CountActiveForDay(db *gorm.DB, doctorID uuid.UUID, date time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Attention{}).
		Where("doctor_id = ? AND attention_date = ? AND status <> ?",
			doctorID, date.Format("2006-01-02"), entity.AttentionStatusCancelled).
		Count(&count).Error
	return count, err
}

func (r *attentionRepository) Update(db *gorm.DB, attention *entity.Attention) error {
	return db.Omit("Doctor", "Patient").Save(attention).Error
}

func (r *attentionRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Attention{})
	return affected.RowsAffected, affected.Error
}
