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
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound   = errors.New("patient not found")
	ErrPatientNotDeleted = errors.New("patient is not deleted")
)

type PatientProfileUsecase interface {
	GetPatient(ctx context.Context, userID uuid.UUID) (*dto.PatientResponse, error)
	GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, userID uuid.UUID, req *dto.UpdatePatientRequest, actorID *uuid.UUID) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, userID uuid.UUID, actorID *uuid.UUID) error
	RestorePatient(ctx context.Context, userID uuid.UUID, actorID *uuid.UUID) (*dto.PatientResponse, error)
}

type patientProfileUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	patientProfileRepo repository.PatientProfileRepository
	userRepo           repository.UserRepository
	auditService       service.AuditService
}

func NewPatientProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientProfileRepo repository.PatientProfileRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) PatientProfileUsecase {
	return &patientProfileUsecase{
		db:                 db,
		log:                log,
		patientProfileRepo: patientProfileRepo,
		userRepo:           userRepo,
		auditService:       auditService,
	}
}

func (u *patientProfileUsecase) GetPatient(ctx context.Context, userID uuid.UUID) (*dto.PatientResponse, error) {
	profile, err := u.patientProfileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(profile), nil
}

func (u *patientProfileUsecase) GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	profiles, err := u.patientProfileRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(profiles),
		Total:    len(profiles),
	}, nil
}

func (u *patientProfileUsecase) UpdatePatient(ctx context.Context, userID uuid.UUID, req *dto.UpdatePatientRequest, actorID *uuid.UUID) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.patientProfileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	old := *profile

	if req.FullName != "" {
		user, err := u.userRepo.FindByID(tx, userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
		user.FullName = req.FullName
		if err := u.userRepo.Update(tx, user); err != nil {
			u.log.Warnf("Failed to update user: %+v", err)
			return nil, err
		}
		profile.User = *user
	}

	if req.PhoneNumber != "" {
		profile.PhoneNumber = req.PhoneNumber
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		profile.DateOfBirth = dob
	}
	if req.Gender != "" {
		profile.Gender = req.Gender
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}

	if err := u.patientProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorID, entity.AuditActionPatientUpdate, "patient_profile", userID.String(), old, profile); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(profile), nil
}

func (u *patientProfileUsecase) DeletePatient(ctx context.Context, userID uuid.UUID, actorID *uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rowsAffected, err := u.patientProfileRepo.Delete(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}
	if rowsAffected == 0 {
		return ErrPatientNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, actorID, entity.AuditActionPatientDelete, "patient_profile", userID.String(), nil); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *patientProfileUsecase) RestorePatient(ctx context.Context, userID uuid.UUID, actorID *uuid.UUID) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.patientProfileRepo.FindByUserIDUnscoped(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}
	if !profile.DeletedAt.Valid {
		return nil, ErrPatientNotDeleted
	}

	if err := u.patientProfileRepo.Restore(tx, userID); err != nil {
		u.log.Warnf("Failed to restore patient: %+v", err)
		return nil, err
	}
	profile.DeletedAt = gorm.DeletedAt{}

	if err := u.auditService.LogUpdate(ctx, tx, actorID, entity.AuditActionPatientRestore, "patient_profile", userID.String(), nil, profile); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(profile), nil
}
