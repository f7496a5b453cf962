package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"clinic-backend/internal/converter"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/domain/repository"
	"clinic-backend/internal/schedule"
	"clinic-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrRuleNotFound    = errors.New("schedule rule not found")
	ErrRuleNotDeleted  = errors.New("schedule rule is not deleted")
	ErrRuleConflict    = errors.New("an active schedule rule already exists for this doctor and day")
	ErrRuleDateInPast  = errors.New("rule date must be today or later")
	ErrInvalidRuleDate = errors.New("invalid rule date format, use YYYY-MM-DD")
)

type ScheduleRuleUsecase interface {
	CreateDatedRule(ctx context.Context, req *dto.CreateDatedRuleRequest, actorID *uuid.UUID) (*dto.ScheduleRuleResponse, error)
	CreateRecurringRule(ctx context.Context, req *dto.CreateRecurringRuleRequest, actorID *uuid.UUID) (*dto.ScheduleRuleResponse, error)
	GetRule(ctx context.Context, ruleID int) (*dto.ScheduleRuleResponse, error)
	GetRulesByDoctor(ctx context.Context, doctorID uuid.UUID, kind string) (*dto.ScheduleRuleListResponse, error)
	UpdateRule(ctx context.Context, ruleID int, req *dto.UpdateRuleRequest, actorID *uuid.UUID) (*dto.ScheduleRuleResponse, error)
	ToggleActive(ctx context.Context, ruleID int, actorID *uuid.UUID) (*dto.ScheduleRuleResponse, error)
	DeleteRule(ctx context.Context, ruleID int, actorID *uuid.UUID) error
	RestoreRule(ctx context.Context, ruleID int, actorID *uuid.UUID) (*dto.ScheduleRuleResponse, error)
	ResolveAvailability(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailabilityResponse, error)
}

type scheduleRuleUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	clock             schedule.Clock
	ruleRepo          repository.ScheduleRuleRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
}

func NewScheduleRuleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clock schedule.Clock,
	ruleRepo repository.ScheduleRuleRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) ScheduleRuleUsecase {
	return &scheduleRuleUsecase{
		db:                db,
		log:               log,
		clock:             clock,
		ruleRepo:          ruleRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
	}
}

func (u *scheduleRuleUsecase) CreateDatedRule(ctx context.Context, req *dto.CreateDatedRuleRequest, actorID *uuid.UUID) (*dto.ScheduleRuleResponse, error) {
	ruleDate, err := time.Parse(schedule.DateLayout, req.RuleDate)
	if err != nil {
		return nil, ErrInvalidRuleDate
	}
	if ruleDate.Before(schedule.Today(u.clock)) {
		return nil, ErrRuleDateInPast
	}

	if err := schedule.ValidateWindow(req.StartTime, req.EndTime, req.SlotDurationMinutes); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Validate doctor exists
	doctor, err := u.doctorProfileRepo.FindByUserID(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	// One active dated rule per doctor and date. The partial unique index
	// is the authoritative guard; this check gives a clean error first.
	existing, err := u.ruleRepo.FindActiveDated(tx, req.DoctorID, ruleDate)
	if err != nil {
		u.log.Warnf("Failed to check dated rule conflict: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrRuleConflict
	}

	rule := &entity.ScheduleRule{
		DoctorID:            req.DoctorID,
		Kind:                entity.RuleKindDated,
		RuleDate:            &ruleDate,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		SlotDurationMinutes: req.SlotDurationMinutes,
		MaxSlots:            req.MaxSlots,
		Active:              true,
		Notes:               req.Notes,
	}

	if err := u.ruleRepo.Create(tx, rule); err != nil {
		if isDuplicateKeyError(err, "schedule_rules_doctor_dated") {
			return nil, ErrRuleConflict
		}
		u.log.Warnf("Failed to create dated rule: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, actorID, entity.AuditActionRuleCreate, "schedule_rule", strconv.Itoa(rule.ID), rule); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.RuleToResponse(rule), nil
}

func (u *scheduleRuleUsecase) CreateRecurringRule(ctx context.Context, req *dto.CreateRecurringRuleRequest, actorID *uuid.UUID) (*dto.ScheduleRuleResponse, error) {
	if err := schedule.ValidateWindow(req.StartTime, req.EndTime, req.SlotDurationMinutes); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorProfileRepo.FindByUserID(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	// One active recurring rule per doctor and weekday.
	existing, err := u.ruleRepo.FindActiveRecurring(tx, req.DoctorID, req.Weekday)
	if err != nil {
		u.log.Warnf("Failed to check recurring rule conflict: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrRuleConflict
	}

	weekday := req.Weekday
	rule := &entity.ScheduleRule{
		DoctorID:            req.DoctorID,
		Kind:                entity.RuleKindRecurring,
		Weekday:             &weekday,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		SlotDurationMinutes: req.SlotDurationMinutes,
		MaxSlots:            req.MaxSlots,
		Active:              true,
		Notes:               req.Notes,
	}

	if err := u.ruleRepo.Create(tx, rule); err != nil {
		if isDuplicateKeyError(err, "schedule_rules_doctor_recurring") {
			return nil, ErrRuleConflict
		}
		u.log.Warnf("Failed to create recurring rule: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, actorID, entity.AuditActionRuleCreate, "schedule_rule", strconv.Itoa(rule.ID), rule); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.RuleToResponse(rule), nil
}

func (u *scheduleRuleUsecase) GetRule(ctx context.Context, ruleID int) (*dto.ScheduleRuleResponse, error) {
	rule, err := u.ruleRepo.FindByID(u.db.WithContext(ctx), ruleID)
	if err != nil {
		u.log.Warnf("Failed to find rule: %+v", err)
		return nil, err
	}
	if rule == nil {
		return nil, ErrRuleNotFound
	}

	return converter.RuleToResponse(rule), nil
}

func (u *scheduleRuleUsecase) GetRulesByDoctor(ctx context.Context, doctorID uuid.UUID, kind string) (*dto.ScheduleRuleListResponse, error) {
	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	rules, err := u.ruleRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID, entity.RuleKind(kind))
	if err != nil {
		u.log.Warnf("Failed to list rules: %+v", err)
		return nil, err
	}

	return &dto.ScheduleRuleListResponse{
		Rules: converter.RulesToResponses(rules),
		Total: len(rules),
	}, nil
}

func (u *scheduleRuleUsecase) UpdateRule(ctx context.Context, ruleID int, req *dto.UpdateRuleRequest, actorID *uuid.UUID) (*dto.ScheduleRuleResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rule, err := u.ruleRepo.FindByID(tx, ruleID)
	if err != nil {
		u.log.Warnf("Failed to find rule: %+v", err)
		return nil, err
	}
	if rule == nil {
		return nil, ErrRuleNotFound
	}

	old := *rule

	if req.RuleDate != "" {
		if !rule.IsDated() {
			return nil, ErrInvalidRuleDate
		}
		ruleDate, err := time.Parse(schedule.DateLayout, req.RuleDate)
		if err != nil {
			return nil, ErrInvalidRuleDate
		}
		if ruleDate.Before(schedule.Today(u.clock)) {
			return nil, ErrRuleDateInPast
		}
		rule.RuleDate = &ruleDate
	}
	if req.Weekday != nil {
		if !rule.IsRecurring() {
			return nil, ErrRuleConflict
		}
		rule.Weekday = req.Weekday
	}
	if req.StartTime != "" {
		rule.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		rule.EndTime = req.EndTime
	}
	if req.SlotDurationMinutes != nil {
		rule.SlotDurationMinutes = *req.SlotDurationMinutes
	}
	if req.MaxSlots != nil {
		// Zero clears the cap.
		if *req.MaxSlots == 0 {
			rule.MaxSlots = nil
		} else {
			rule.MaxSlots = req.MaxSlots
		}
	}
	if req.Notes != nil {
		rule.Notes = *req.Notes
	}

	if err := schedule.ValidateWindow(rule.StartTime, rule.EndTime, rule.SlotDurationMinutes); err != nil {
		return nil, err
	}

	// Moving an active rule to another day must not collide with a rule
	// already occupying that day.
	if rule.Active {
		if conflict, err := u.findDayConflict(tx, rule); err != nil {
			return nil, err
		} else if conflict {
			return nil, ErrRuleConflict
		}
	}

	if err := u.ruleRepo.Update(tx, rule); err != nil {
		if isDuplicateKeyError(err, "schedule_rules_doctor") {
			return nil, ErrRuleConflict
		}
		u.log.Warnf("Failed to update rule: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorID, entity.AuditActionRuleUpdate, "schedule_rule", strconv.Itoa(rule.ID), old, rule); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.RuleToResponse(rule), nil
}

func (u *scheduleRuleUsecase) ToggleActive(ctx context.Context, ruleID int, actorID *uuid.UUID) (*dto.ScheduleRuleResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rule, err := u.ruleRepo.FindByID(tx, ruleID)
	if err != nil {
		u.log.Warnf("Failed to find rule: %+v", err)
		return nil, err
	}
	if rule == nil {
		return nil, ErrRuleNotFound
	}

	old := *rule
	rule.Active = !rule.Active

	// Re-activating must not collide with a rule that took over the day
	// while this one was inactive.
	if rule.Active {
		if conflict, err := u.findDayConflict(tx, rule); err != nil {
			return nil, err
		} else if conflict {
			return nil, ErrRuleConflict
		}
	}

	if err := u.ruleRepo.Update(tx, rule); err != nil {
		if isDuplicateKeyError(err, "schedule_rules_doctor") {
			return nil, ErrRuleConflict
		}
		u.log.Warnf("Failed to toggle rule: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorID, entity.AuditActionRuleToggle, "schedule_rule", strconv.Itoa(rule.ID), old.Active, rule.Active); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.RuleToResponse(rule), nil
}

func (u *scheduleRuleUsecase) DeleteRule(ctx context.Context, ruleID int, actorID *uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rowsAffected, err := u.ruleRepo.Delete(tx, ruleID)
	if err != nil {
		u.log.Warnf("Failed to delete rule: %+v", err)
		return err
	}
	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, actorID, entity.AuditActionRuleDelete, "schedule_rule", strconv.Itoa(ruleID), nil); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *scheduleRuleUsecase) RestoreRule(ctx context.Context, ruleID int, actorID *uuid.UUID) (*dto.ScheduleRuleResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rule, err := u.ruleRepo.FindByIDUnscoped(tx, ruleID)
	if err != nil {
		u.log.Warnf("Failed to find rule: %+v", err)
		return nil, err
	}
	if rule == nil {
		return nil, ErrRuleNotFound
	}
	if !rule.DeletedAt.Valid {
		return nil, ErrRuleNotDeleted
	}

	// An active rule coming back must not collide with one created since.
	if rule.Active {
		if conflict, err := u.findDayConflict(tx, rule); err != nil {
			return nil, err
		} else if conflict {
			return nil, ErrRuleConflict
		}
	}

	if err := u.ruleRepo.Restore(tx, ruleID); err != nil {
		if isDuplicateKeyError(err, "schedule_rules_doctor") {
			return nil, ErrRuleConflict
		}
		u.log.Warnf("Failed to restore rule: %+v", err)
		return nil, err
	}
	rule.DeletedAt = gorm.DeletedAt{}

	if err := u.auditService.LogUpdate(ctx, tx, actorID, entity.AuditActionRuleRestore, "schedule_rule", strconv.Itoa(ruleID), nil, rule); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.RuleToResponse(rule), nil
}

// ResolveAvailability picks the rule governing a doctor's calendar date and
// expands it into concrete slots. A dated rule beats the recurring rule for
// the same weekday. No matching rule resolves to an empty slot list, not an
// error.
func (u *scheduleRuleUsecase) ResolveAvailability(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailabilityResponse, error) {
	day, err := time.Parse(schedule.DateLayout, date)
	if err != nil {
		return nil, ErrInvalidRuleDate
	}

	db := u.db.WithContext(ctx)

	doctor, err := u.doctorProfileRepo.FindByUserID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	rules, err := u.ruleRepo.FindForDate(db, doctorID, day, schedule.ISOWeekday(day))
	if err != nil {
		u.log.Warnf("Failed to resolve rules for date: %+v", err)
		return nil, err
	}

	resp := &dto.AvailabilityResponse{
		DoctorID: doctorID,
		Date:     date,
		Slots:    []schedule.Slot{},
	}
	if len(rules) == 0 {
		return resp, nil
	}

	// Rows arrive dated-first; the first one governs the date.
	rule := rules[0]
	slots, err := schedule.Expand(rule.StartTime, rule.EndTime, rule.SlotDurationMinutes)
	if err != nil {
		u.log.Warnf("Stored rule %d has an invalid window: %+v", rule.ID, err)
		return nil, err
	}

	resp.Rule = converter.RuleToResponse(&rule)
	resp.Slots = slots
	resp.TotalSlots = len(slots)
	resp.AvailableCapacity = schedule.AvailableCapacity(len(slots), rule.MaxSlots)

	return resp, nil
}

// findDayConflict reports whether another active rule already occupies the
// rule's day key (doctor+date for dated, doctor+weekday for recurring).
func (u *scheduleRuleUsecase) findDayConflict(db *gorm.DB, rule *entity.ScheduleRule) (bool, error) {
	var existing *entity.ScheduleRule
	var err error

	switch {
	case rule.IsDated() && rule.RuleDate != nil:
		existing, err = u.ruleRepo.FindActiveDated(db, rule.DoctorID, *rule.RuleDate)
	case rule.IsRecurring() && rule.Weekday != nil:
		existing, err = u.ruleRepo.FindActiveRecurring(db, rule.DoctorID, *rule.Weekday)
	default:
		return false, nil
	}
	if err != nil {
		u.log.Warnf("Failed to check rule conflict: %+v", err)
		return false, err
	}

	return existing != nil && existing.ID != rule.ID, nil
}
