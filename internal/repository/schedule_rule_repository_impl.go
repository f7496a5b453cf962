package repository

import (
	"errors"
	"time"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type scheduleRuleRepository struct{}

func NewScheduleRuleRepository() domainRepo.ScheduleRuleRepository {
	return &scheduleRuleRepository{}
}

func (r *scheduleRuleRepository) Create(db *gorm.DB, rule *entity.ScheduleRule) error {
	return db.Create(rule).Error
}

func (r *scheduleRuleRepository) FindByID(db *gorm.DB, id int) (*entity.ScheduleRule, error) {
	var rule entity.ScheduleRule
	err := db.Where("id = ?", id).First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *scheduleRuleRepository) FindByIDUnscoped(db *gorm.DB, id int) (*entity.ScheduleRule, error) {
	var rule entity.ScheduleRule
	err := db.Unscoped().Where("id = ?", id).First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *scheduleRuleRepository) FindActiveDated(db *gorm.DB, doctorID uuid.UUID, date time.Time) (*entity.ScheduleRule, error) {
	var rule entity.ScheduleRule
	err := db.
		Where("doctor_id = ? AND kind = ? AND rule_date = ? AND active = ?",
			doctorID, entity.RuleKindDated, date.Format("2006-01-02"), true).
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *scheduleRuleRepository) FindActiveRecurring(db *gorm.DB, doctorID uuid.UUID, weekday int) (*entity.ScheduleRule, error) {
	var rule entity.ScheduleRule
	err := db.
		Where("doctor_id = ? AND kind = ? AND weekday = ? AND active = ?",
			doctorID, entity.RuleKindRecurring, weekday, true).
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

// FindForDate orders dated rules before recurring ones so callers can take
// the first row as the applicable rule.
func (r *scheduleRuleRepository) FindForDate(db *gorm.DB, doctorID uuid.UUID, date time.Time, weekday int) ([]entity.ScheduleRule, error) {
	var rules []entity.ScheduleRule
	err := db.
		Where("doctor_id = ? AND active = ?", doctorID, true).
		Where("(kind = ? AND rule_date = ?) OR (kind = ? AND weekday = ?)",
			entity.RuleKindDated, date.Format("2006-01-02"),
			entity.RuleKindRecurring, weekday).
		Order("kind ASC, id ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *scheduleRuleRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, kind entity.RuleKind) ([]entity.ScheduleRule, error) {
	var rules []entity.ScheduleRule
	query := db.Where("doctor_id = ?", doctorID)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	err := query.Order("kind ASC, rule_date ASC, weekday ASC, start_time ASC").Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *scheduleRuleRepository) Update(db *gorm.DB, rule *entity.ScheduleRule) error {
	return db.Omit("Doctor").Save(rule).Error
}

func (r *scheduleRuleRepository) Delete(db *gorm.DB, id int) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.ScheduleRule{})
	return affected.RowsAffected, affected.Error
}

func (r *scheduleRuleRepository) Restore(db *gorm.DB, id int) error {
	return db.Unscoped().Model(&entity.ScheduleRule{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}
