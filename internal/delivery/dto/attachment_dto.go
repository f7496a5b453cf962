package dto

import (
	"time"

	"github.com/google/uuid"
)

// Response DTOs. Uploads arrive as multipart forms (owner_kind, owner_id,
// file), not JSON, so there is no create request DTO.

type AttachmentResponse struct {
	ID           uuid.UUID  `json:"id"`
	OwnerKind    string     `json:"owner_kind"`
	OwnerID      uuid.UUID  `json:"owner_id"`
	FileName     string     `json:"file_name"`
	ContentType  string     `json:"content_type"`
	SizeBytes    int64      `json:"size_bytes"`
	UploadedByID *uuid.UUID `json:"uploaded_by_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type AttachmentListResponse struct {
	Attachments []AttachmentResponse `json:"attachments"`
	Total       int                  `json:"total"`
}
