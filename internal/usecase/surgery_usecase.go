package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-backend/internal/converter"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/domain/repository"
	"clinic-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrSurgeryNotFound = errors.New("surgery not found")

type SurgeryUsecase interface {
	CreateSurgery(ctx context.Context, req *dto.CreateSurgeryRequest, actorID *uuid.UUID) (*dto.SurgeryResponse, error)
	GetSurgery(ctx context.Context, id uuid.UUID) (*dto.SurgeryResponse, error)
	GetSurgeries(ctx context.Context, filter *entity.SurgeryFilter) (*dto.SurgeryListResponse, error)
	UpdateSurgery(ctx context.Context, id uuid.UUID, req *dto.UpdateSurgeryRequest, actorID *uuid.UUID) (*dto.SurgeryResponse, error)
	DeleteSurgery(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error
}

type surgeryUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	surgeryRepo        repository.SurgeryRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	auditService       service.AuditService
}

func NewSurgeryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	surgeryRepo repository.SurgeryRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) SurgeryUsecase {
	return &surgeryUsecase{
		db:                 db,
		log:                log,
		surgeryRepo:        surgeryRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		auditService:       auditService,
	}
}

func (u *surgeryUsecase) CreateSurgery(ctx context.Context, req *dto.CreateSurgeryRequest, actorID *uuid.UUID) (*dto.SurgeryResponse, error) {
	scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	cost := decimal.Zero
	if req.Cost != "" {
		cost, err = decimal.NewFromString(req.Cost)
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

	surgery := &entity.Surgery{
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		SurgeryType:   req.SurgeryType,
		ScheduledDate: scheduledDate,
		Cost:          cost,
		Status:        entity.SurgeryStatusScheduled,
		Notes:         req.Notes,
	}

	if err := u.surgeryRepo.Create(tx, surgery); err != nil {
		u.log.Warnf("Failed to create surgery: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, actorID, entity.AuditActionSurgeryCreate, "surgery", surgery.ID.String(), surgery); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.SurgeryToResponse(surgery), nil
}

func (u *surgeryUsecase) GetSurgery(ctx context.Context, id uuid.UUID) (*dto.SurgeryResponse, error) {
	surgery, err := u.surgeryRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find surgery: %+v", err)
		return nil, err
	}
	if surgery == nil {
		return nil, ErrSurgeryNotFound
	}

	return converter.SurgeryToResponse(surgery), nil
}

func (u *surgeryUsecase) GetSurgeries(ctx context.Context, filter *entity.SurgeryFilter) (*dto.SurgeryListResponse, error) {
	surgeries, err := u.surgeryRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list surgeries: %+v", err)
		return nil, err
	}

	return &dto.SurgeryListResponse{
		Surgeries: converter.SurgeriesToResponses(surgeries),
		Total:     len(surgeries),
	}, nil
}

func (u *surgeryUsecase) UpdateSurgery(ctx context.Context, id uuid.UUID, req *dto.UpdateSurgeryRequest, actorID *uuid.UUID) (*dto.SurgeryResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	surgery, err := u.surgeryRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find surgery: %+v", err)
		return nil, err
	}
	if surgery == nil {
		return nil, ErrSurgeryNotFound
	}

	old := *surgery

	if req.SurgeryType != "" {
		surgery.SurgeryType = req.SurgeryType
	}
	if req.ScheduledDate != "" {
		scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		surgery.ScheduledDate = scheduledDate
	}
	if req.Cost != "" {
		cost, err := decimal.NewFromString(req.Cost)
		if err != nil {
			return nil, ErrInvalidAmount
		}
		surgery.Cost = cost
	}
	if req.Status != "" {
		if surgery.Status != entity.SurgeryStatusScheduled && entity.SurgeryStatus(req.Status) != surgery.Status {
			return nil, ErrInvalidStatusChange
		}
		surgery.Status = entity.SurgeryStatus(req.Status)
	}
	if req.Notes != nil {
		surgery.Notes = *req.Notes
	}

	if err := u.surgeryRepo.Update(tx, surgery); err != nil {
		u.log.Warnf("Failed to update surgery: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorID, entity.AuditActionSurgeryUpdate, "surgery", id.String(), old, surgery); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.SurgeryToResponse(surgery), nil
}

func (u *surgeryUsecase) DeleteSurgery(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rowsAffected, err := u.surgeryRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete surgery: %+v", err)
		return err
	}
	if rowsAffected == 0 {
		return ErrSurgeryNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, actorID, entity.AuditActionSurgeryDelete, "surgery", id.String(), nil); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
