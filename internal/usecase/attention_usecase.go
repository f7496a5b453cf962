package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-backend/internal/converter"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/domain/repository"
	"clinic-backend/internal/schedule"
	"clinic-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAttentionNotFound   = errors.New("attention not found")
	ErrNoScheduleForDate   = errors.New("doctor has no schedule for this date")
	ErrInvalidSlot         = errors.New("slot start time does not match the doctor's schedule")
	ErrSlotTaken           = errors.New("slot is already taken")
	ErrDayCapacityFull     = errors.New("doctor's capacity for this date is full")
	ErrInvalidStatusChange = errors.New("invalid status change")
	ErrInvalidAmount       = errors.New("invalid decimal amount")
)

type AttentionUsecase interface {
	CreateAttention(ctx context.Context, req *dto.CreateAttentionRequest, actorID *uuid.UUID) (*dto.AttentionResponse, error)
	GetAttention(ctx context.Context, id uuid.UUID) (*dto.AttentionResponse, error)
	GetAttentions(ctx context.Context, filter *entity.AttentionFilter) (*dto.AttentionListResponse, error)
	UpdateAttention(ctx context.Context, id uuid.UUID, req *dto.UpdateAttentionRequest, actorID *uuid.UUID) (*dto.AttentionResponse, error)
	DeleteAttention(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error
}

type attentionUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	attentionRepo      repository.AttentionRepository
	ruleRepo           repository.ScheduleRuleRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	auditService       service.AuditService
}

func NewAttentionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	attentionRepo repository.AttentionRepository,
	ruleRepo repository.ScheduleRuleRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) AttentionUsecase {
	return &attentionUsecase{
		db:                 db,
		log:                log,
		attentionRepo:      attentionRepo,
		ruleRepo:           ruleRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		auditService:       auditService,
	}
}

func (u *attentionUsecase) CreateAttention(ctx context.Context, req *dto.CreateAttentionRequest, actorID *uuid.UUID) (*dto.AttentionResponse, error) {
	attentionDate, err := time.Parse(schedule.DateLayout, req.AttentionDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	fee := decimal.Zero
	if req.Fee != "" {
		fee, err = decimal.NewFromString(req.Fee)
		if err != nil {
			return nil, ErrInvalidAmount
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientProfileRepo.FindByUserID(tx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	// The slot must be one the schedule actually produces for that date.
	rules, err := u.ruleRepo.FindForDate(tx, req.DoctorID, attentionDate, schedule.ISOWeekday(attentionDate))
	if err != nil {
		u.log.Warnf("Failed to resolve rules for date: %+v", err)
		return nil, err
	}
	if len(rules) == 0 {
		return nil, ErrNoScheduleForDate
	}

	rule := rules[0]
	slots, err := schedule.Expand(rule.StartTime, rule.EndTime, rule.SlotDurationMinutes)
	if err != nil {
		u.log.Warnf("Stored rule %d has an invalid window: %+v", rule.ID, err)
		return nil, err
	}

	valid := false
	for _, slot := range slots {
		if slot.StartTime == req.SlotStartTime {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrInvalidSlot
	}

	if rule.MaxSlots != nil {
		booked, err := u.attentionRepo.CountActiveForDay(tx, req.DoctorID, attentionDate)
		if err != nil {
			u.log.Warnf("Failed to count attentions: %+v", err)
			return nil, err
		}
		if booked >= int64(schedule.AvailableCapacity(len(slots), rule.MaxSlots)) {
			return nil, ErrDayCapacityFull
		}
	}

	existing, err := u.attentionRepo.FindBySlot(tx, req.DoctorID, attentionDate, req.SlotStartTime)
	if err != nil {
		u.log.Warnf("Failed to check slot: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	attention := &entity.Attention{
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		AttentionDate: attentionDate,
		SlotStartTime: req.SlotStartTime,
		Reason:        req.Reason,
		Fee:           fee,
		Status:        entity.AttentionStatusScheduled,
	}

	if err := u.attentionRepo.Create(tx, attention); err != nil {
		if isDuplicateKeyError(err, "attentions_doctor_slot") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to create attention: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, actorID, entity.AuditActionAttentionCreate, "attention", attention.ID.String(), attention); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AttentionToResponse(attention), nil
}

func (u *attentionUsecase) GetAttention(ctx context.Context, id uuid.UUID) (*dto.AttentionResponse, error) {
	attention, err := u.attentionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find attention: %+v", err)
		return nil, err
	}
	if attention == nil {
		return nil, ErrAttentionNotFound
	}

	return converter.AttentionToResponse(attention), nil
}

func (u *attentionUsecase) GetAttentions(ctx context.Context, filter *entity.AttentionFilter) (*dto.AttentionListResponse, error) {
	attentions, err := u.attentionRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list attentions: %+v", err)
		return nil, err
	}

	return &dto.AttentionListResponse{
		Attentions: converter.AttentionsToResponses(attentions),
		Total:      len(attentions),
	}, nil
}

func (u *attentionUsecase) UpdateAttention(ctx context.Context, id uuid.UUID, req *dto.UpdateAttentionRequest, actorID *uuid.UUID) (*dto.AttentionResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	attention, err := u.attentionRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find attention: %+v", err)
		return nil, err
	}
	if attention == nil {
		return nil, ErrAttentionNotFound
	}

	old := *attention

	if req.Reason != nil {
		attention.Reason = *req.Reason
	}
	if req.Diagnosis != nil {
		attention.Diagnosis = *req.Diagnosis
	}
	if req.Fee != "" {
		fee, err := decimal.NewFromString(req.Fee)
		if err != nil {
			return nil, ErrInvalidAmount
		}
		attention.Fee = fee
	}
	if req.Status != "" {
		// Completed and cancelled are terminal.
		if !attention.IsScheduled() && entity.AttentionStatus(req.Status) != attention.Status {
			return nil, ErrInvalidStatusChange
		}
		attention.Status = entity.AttentionStatus(req.Status)
	}

	if err := u.attentionRepo.Update(tx, attention); err != nil {
		u.log.Warnf("Failed to update attention: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorID, entity.AuditActionAttentionUpdate, "attention", id.String(), old, attention); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AttentionToResponse(attention), nil
}

func (u *attentionUsecase) DeleteAttention(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rowsAffected, err := u.attentionRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete attention: %+v", err)
		return err
	}
	if rowsAffected == 0 {
		return ErrAttentionNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, actorID, entity.AuditActionAttentionDelete, "attention", id.String(), nil); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
