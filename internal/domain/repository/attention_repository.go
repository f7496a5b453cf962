package repository

import (
	"time"

	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttentionRepository interface {
	Create(db *gorm.DB, attention *entity.Attention) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Attention, error)
	FindAll(db *gorm.DB, filter *entity.AttentionFilter) ([]entity.Attention, error)
	// FindBySlot returns the active (non-cancelled) attention occupying a
	// doctor's slot, if any. Slots are matched by value: date + start time.
	FindBySlot(db *gorm.DB, doctorID uuid.UUID, date time.Time, slotStartTime string) (*entity.Attention, error)
	// CountActiveForDay counts non-cancelled attentions for a doctor's date,
	// used to enforce a rule's max slots cap.
	CountActiveForDay(db *gorm.DB, doctorID uuid.UUID, date time.Time) (int64, error)
	Update(db *gorm.DB, attention *entity.Attention) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
