package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
)

// AttachmentToResponse converts an Attachment entity to AttachmentResponse DTO
func AttachmentToResponse(attachment *entity.Attachment) *dto.AttachmentResponse {
	if attachment == nil {
		return nil
	}

	return &dto.AttachmentResponse{
		ID:           attachment.ID,
		OwnerKind:    string(attachment.OwnerKind),
		OwnerID:      attachment.OwnerID,
		FileName:     attachment.FileName,
		ContentType:  attachment.ContentType,
		SizeBytes:    attachment.SizeBytes,
		UploadedByID: attachment.UploadedByID,
		CreatedAt:    attachment.CreatedAt,
	}
}

// AttachmentsToResponses converts a slice of Attachment entities to DTOs
func AttachmentsToResponses(attachments []entity.Attachment) []dto.AttachmentResponse {
	responses := make([]dto.AttachmentResponse, len(attachments))
	for i := range attachments {
		responses[i] = *AttachmentToResponse(&attachments[i])
	}
	return responses
}
