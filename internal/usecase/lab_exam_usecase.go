package usecase

import (
	"context"
	"errors"

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

var ErrLabExamNotFound = errors.New("lab exam not found")

type LabExamUsecase interface {
	CreateLabExam(ctx context.Context, req *dto.CreateLabExamRequest, actorID *uuid.UUID) (*dto.LabExamResponse, error)
	GetLabExam(ctx context.Context, id uuid.UUID) (*dto.LabExamResponse, error)
	GetLabExams(ctx context.Context, filter *entity.LabExamFilter) (*dto.LabExamListResponse, error)
	UpdateLabExam(ctx context.Context, id uuid.UUID, req *dto.UpdateLabExamRequest, actorID *uuid.UUID) (*dto.LabExamResponse, error)
	DeleteLabExam(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error
}

type labExamUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	labExamRepo        repository.LabExamRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	auditService       service.AuditService
}

func NewLabExamUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	labExamRepo repository.LabExamRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) LabExamUsecase {
	return &labExamUsecase{
		db:                 db,
		log:                log,
		labExamRepo:        labExamRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		auditService:       auditService,
	}
}

func (u *labExamUsecase) CreateLabExam(ctx context.Context, req *dto.CreateLabExamRequest, actorID *uuid.UUID) (*dto.LabExamResponse, error) {
	price := decimal.Zero
	if req.Price != "" {
		var err error
		price, err = decimal.NewFromString(req.Price)
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

	doctor, err := u.doctorProfileRepo.FindByUserID(tx, req.RequestedByID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	exam := &entity.LabExam{
		PatientID:     req.PatientID,
		RequestedByID: req.RequestedByID,
		ExamType:      req.ExamType,
		Price:         price,
		Status:        entity.LabExamStatusRequested,
	}

	if err := u.labExamRepo.Create(tx, exam); err != nil {
		u.log.Warnf("Failed to create lab exam: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, actorID, entity.AuditActionLabExamCreate, "lab_exam", exam.ID.String(), exam); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.LabExamToResponse(exam), nil
}

func (u *labExamUsecase) GetLabExam(ctx context.Context, id uuid.UUID) (*dto.LabExamResponse, error) {
	exam, err := u.labExamRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find lab exam: %+v", err)
		return nil, err
	}
	if exam == nil {
		return nil, ErrLabExamNotFound
	}

	return converter.LabExamToResponse(exam), nil
}

func (u *labExamUsecase) GetLabExams(ctx context.Context, filter *entity.LabExamFilter) (*dto.LabExamListResponse, error) {
	exams, err := u.labExamRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list lab exams: %+v", err)
		return nil, err
	}

	return &dto.LabExamListResponse{
		Exams: converter.LabExamsToResponses(exams),
		Total: len(exams),
	}, nil
}

func (u *labExamUsecase) UpdateLabExam(ctx context.Context, id uuid.UUID, req *dto.UpdateLabExamRequest, actorID *uuid.UUID) (*dto.LabExamResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	exam, err := u.labExamRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find lab exam: %+v", err)
		return nil, err
	}
	if exam == nil {
		return nil, ErrLabExamNotFound
	}

	old := *exam

	if req.ExamType != "" {
		exam.ExamType = req.ExamType
	}
	if req.Price != "" {
		price, err := decimal.NewFromString(req.Price)
		if err != nil {
			return nil, ErrInvalidAmount
		}
		exam.Price = price
	}
	if req.Status != "" {
		// Exams only move forward: requested -> in_progress -> completed.
		next := entity.LabExamStatus(req.Status)
		if !validLabExamTransition(exam.Status, next) {
			return nil, ErrInvalidStatusChange
		}
		exam.Status = next
	}
	if req.Result != nil {
		exam.Result = *req.Result
	}

	if err := u.labExamRepo.Update(tx, exam); err != nil {
		u.log.Warnf("Failed to update lab exam: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorID, entity.AuditActionLabExamUpdate, "lab_exam", id.String(), old, exam); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.LabExamToResponse(exam), nil
}

func (u *labExamUsecase) DeleteLabExam(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rowsAffected, err := u.labExamRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete lab exam: %+v", err)
		return err
	}
	if rowsAffected == 0 {
		return ErrLabExamNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, actorID, entity.AuditActionLabExamDelete, "lab_exam", id.String(), nil); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func validLabExamTransition(from, to entity.LabExamStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case entity.LabExamStatusRequested:
		return to == entity.LabExamStatusInProgress || to == entity.LabExamStatusCompleted
	case entity.LabExamStatusInProgress:
		return to == entity.LabExamStatusCompleted
	}
	return false
}
