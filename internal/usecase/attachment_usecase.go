package usecase

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"clinic-backend/config"
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
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrInvalidOwnerKind   = errors.New("invalid owner kind")
	ErrOwnerNotFound      = errors.New("owner record not found")
	ErrFileTooLarge       = errors.New("file exceeds the maximum upload size")
)

type AttachmentUsecase interface {
	Upload(ctx context.Context, ownerKind entity.OwnerKind, ownerID uuid.UUID, file multipart.File, header *multipart.FileHeader, uploadedBy *uuid.UUID) (*dto.AttachmentResponse, error)
	GetAttachment(ctx context.Context, id uuid.UUID) (*entity.Attachment, error)
	GetByOwner(ctx context.Context, ownerKind entity.OwnerKind, ownerID uuid.UUID) (*dto.AttachmentListResponse, error)
	DeleteAttachment(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error
}

// ownerChecker verifies that the record an attachment points at exists.
type ownerChecker func(db *gorm.DB, ownerID uuid.UUID) (bool, error)

type attachmentUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	storage        config.StorageConfig
	attachmentRepo repository.AttachmentRepository
	auditService   service.AuditService
	ownerCheckers  map[entity.OwnerKind]ownerChecker
}

func NewAttachmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	storage config.StorageConfig,
	attachmentRepo repository.AttachmentRepository,
	patientProfileRepo repository.PatientProfileRepository,
	attentionRepo repository.AttentionRepository,
	surgeryRepo repository.SurgeryRepository,
	labExamRepo repository.LabExamRepository,
	auditService service.AuditService,
) AttachmentUsecase {
	// The dispatch table is the single place that maps an owner kind to the
	// lookup confirming its record exists.
	ownerCheckers := map[entity.OwnerKind]ownerChecker{
		entity.OwnerKindPatient: func(db *gorm.DB, ownerID uuid.UUID) (bool, error) {
			profile, err := patientProfileRepo.FindByUserID(db, ownerID)
			return profile != nil, err
		},
		entity.OwnerKindAttention: func(db *gorm.DB, ownerID uuid.UUID) (bool, error) {
			attention, err := attentionRepo.FindByID(db, ownerID)
			return attention != nil, err
		},
		entity.OwnerKindSurgery: func(db *gorm.DB, ownerID uuid.UUID) (bool, error) {
			surgery, err := surgeryRepo.FindByID(db, ownerID)
			return surgery != nil, err
		},
		entity.OwnerKindLabExam: func(db *gorm.DB, ownerID uuid.UUID) (bool, error) {
			exam, err := labExamRepo.FindByID(db, ownerID)
			return exam != nil, err
		},
	}

	return &attachmentUsecase{
		db:             db,
		log:            log,
		storage:        storage,
		attachmentRepo: attachmentRepo,
		auditService:   auditService,
		ownerCheckers:  ownerCheckers,
	}
}

func (u *attachmentUsecase) Upload(ctx context.Context, ownerKind entity.OwnerKind, ownerID uuid.UUID, file multipart.File, header *multipart.FileHeader, uploadedBy *uuid.UUID) (*dto.AttachmentResponse, error) {
	checker, ok := u.ownerCheckers[ownerKind]
	if !ok {
		return nil, ErrInvalidOwnerKind
	}

	if header.Size > u.storage.MaxUploadBytes {
		return nil, ErrFileTooLarge
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	exists, err := checker(tx, ownerID)
	if err != nil {
		u.log.Warnf("Failed to check attachment owner: %+v", err)
		return nil, err
	}
	if !exists {
		return nil, ErrOwnerNotFound
	}

	attachment := &entity.Attachment{
		ID:           uuid.New(),
		OwnerKind:    ownerKind,
		OwnerID:      ownerID,
		FileName:     filepath.Base(header.Filename),
		ContentType:  header.Header.Get("Content-Type"),
		SizeBytes:    header.Size,
		UploadedByID: uploadedBy,
	}
	attachment.StoragePath = filepath.Join(u.storage.AttachmentDir, attachment.ID.String()+filepath.Ext(attachment.FileName))

	if err := u.saveFile(file, attachment.StoragePath); err != nil {
		u.log.Warnf("Failed to store attachment file: %+v", err)
		return nil, err
	}

	if err := u.attachmentRepo.Create(tx, attachment); err != nil {
		u.log.Warnf("Failed to create attachment: %+v", err)
		os.Remove(attachment.StoragePath)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, uploadedBy, entity.AuditActionAttachmentUpload, "attachment", attachment.ID.String(), attachment.FileName); err != nil {
		os.Remove(attachment.StoragePath)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		os.Remove(attachment.StoragePath)
		return nil, err
	}

	return converter.AttachmentToResponse(attachment), nil
}

// GetAttachment returns the stored record including its storage path, so the
// handler can stream the file.
func (u *attachmentUsecase) GetAttachment(ctx context.Context, id uuid.UUID) (*entity.Attachment, error) {
	attachment, err := u.attachmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find attachment: %+v", err)
		return nil, err
	}
	if attachment == nil {
		return nil, ErrAttachmentNotFound
	}

	return attachment, nil
}

func (u *attachmentUsecase) GetByOwner(ctx context.Context, ownerKind entity.OwnerKind, ownerID uuid.UUID) (*dto.AttachmentListResponse, error) {
	if !entity.ValidOwnerKind(ownerKind) {
		return nil, ErrInvalidOwnerKind
	}

	attachments, err := u.attachmentRepo.FindByOwner(u.db.WithContext(ctx), ownerKind, ownerID)
	if err != nil {
		u.log.Warnf("Failed to list attachments: %+v", err)
		return nil, err
	}

	return &dto.AttachmentListResponse{
		Attachments: converter.AttachmentsToResponses(attachments),
		Total:       len(attachments),
	}, nil
}

func (u *attachmentUsecase) DeleteAttachment(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	attachment, err := u.attachmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find attachment: %+v", err)
		return err
	}
	if attachment == nil {
		return ErrAttachmentNotFound
	}

	if _, err := u.attachmentRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete attachment: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actorID, entity.AuditActionAttachmentDelete, "attachment", id.String(), attachment.FileName); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	// Rows are soft deleted; the file stays on disk until a cleanup job
	// reaps orphans.
	return nil
}

func (u *attachmentUsecase) saveFile(file multipart.File, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return err
	}

	return nil
}
