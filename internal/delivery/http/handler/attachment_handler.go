package handler

import (
	"net/http"

	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AttachmentHandler struct {
	attachmentUsecase usecase.AttachmentUsecase
	maxUploadBytes    int64
}

func NewAttachmentHandler(attachmentUsecase usecase.AttachmentUsecase, maxUploadBytes int64) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentUsecase: attachmentUsecase,
		maxUploadBytes:    maxUploadBytes,
	}
}

// Upload accepts a multipart form with owner_kind, owner_id and file fields
// @Summary Upload an attachment
// @Tags Attachments
// @Accept multipart/form-data
// @Produce json
// @Param owner_kind formData string true "Owner kind (patient, attention, surgery, lab_exam)"
// @Param owner_id formData string true "Owner record ID"
// @Param file formData file true "File to upload"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /attachments [post]
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	ownerKind := entity.OwnerKind(r.FormValue("owner_kind"))
	ownerID, err := uuid.Parse(r.FormValue("owner_id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid owner_id", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "file field is required", nil)
		return
	}
	defer file.Close()

	attachment, err := h.attachmentUsecase.Upload(r.Context(), ownerKind, ownerID, file, header, actorFromContext(r))
	if err != nil {
		h.writeAttachmentError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Attachment uploaded successfully", attachment)
}

// GetByOwner lists attachments belonging to a record
func (h *AttachmentHandler) GetByOwner(w http.ResponseWriter, r *http.Request) {
	ownerKind := entity.OwnerKind(r.URL.Query().Get("owner_kind"))
	ownerID, err := uuid.Parse(r.URL.Query().Get("owner_id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid owner_id", nil)
		return
	}

	attachments, err := h.attachmentUsecase.GetByOwner(r.Context(), ownerKind, ownerID)
	if err != nil {
		h.writeAttachmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Attachments retrieved successfully", attachments)
}

// Download streams the stored file
func (h *AttachmentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid attachment ID", nil)
		return
	}

	attachment, err := h.attachmentUsecase.GetAttachment(r.Context(), id)
	if err != nil {
		h.writeAttachmentError(w, err)
		return
	}

	w.Header().Set("Content-Type", attachment.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+attachment.FileName+`"`)
	http.ServeFile(w, r, attachment.StoragePath)
}

// Delete soft deletes an attachment record
func (h *AttachmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid attachment ID", nil)
		return
	}

	if err := h.attachmentUsecase.DeleteAttachment(r.Context(), id, actorFromContext(r)); err != nil {
		h.writeAttachmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Attachment deleted successfully", nil)
}

func (h *AttachmentHandler) writeAttachmentError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrAttachmentNotFound:
		response.NotFound(w, "Attachment not found")
	case usecase.ErrOwnerNotFound:
		response.NotFound(w, "Owner record not found")
	case usecase.ErrInvalidOwnerKind, usecase.ErrFileTooLarge:
		response.UnprocessableEntity(w, err.Error())
	default:
		response.InternalServerError(w, "Failed to process attachment")
	}
}
