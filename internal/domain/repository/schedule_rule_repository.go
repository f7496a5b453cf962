package repository

import (
	"time"

	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleRuleRepository interface {
	Create(db *gorm.DB, rule *entity.ScheduleRule) error
	FindByID(db *gorm.DB, id int) (*entity.ScheduleRule, error)
	// FindByIDUnscoped also returns soft-deleted rules; used by restore.
	FindByIDUnscoped(db *gorm.DB, id int) (*entity.ScheduleRule, error)
	FindActiveDated(db *gorm.DB, doctorID uuid.UUID, date time.Time) (*entity.ScheduleRule, error)
	FindActiveRecurring(db *gorm.DB, doctorID uuid.UUID, weekday int) (*entity.ScheduleRule, error)
	// FindForDate returns active rules matching either the exact date or its
	// weekday, dated rules first.
	FindForDate(db *gorm.DB, doctorID uuid.UUID, date time.Time, weekday int) ([]entity.ScheduleRule, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, kind entity.RuleKind) ([]entity.ScheduleRule, error)
	Update(db *gorm.DB, rule *entity.ScheduleRule) error
	Delete(db *gorm.DB, id int) (int64, error)
	Restore(db *gorm.DB, id int) error
}
