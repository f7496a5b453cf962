package handler

import (
	"encoding/json"
	"net/http"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/response"
	"clinic-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AttentionHandler struct {
	attentionUsecase usecase.AttentionUsecase
	validator        *validator.CustomValidator
}

func NewAttentionHandler(attentionUsecase usecase.AttentionUsecase, validator *validator.CustomValidator) *AttentionHandler {
	return &AttentionHandler{
		attentionUsecase: attentionUsecase,
		validator:        validator,
	}
}

// CreateAttention books a patient visit into a schedule slot
// @Summary Create an attention
// @Tags Attentions
// @Accept json
// @Produce json
// @Param request body dto.CreateAttentionRequest true "Create Attention Request"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /attentions [post]
func (h *AttentionHandler) CreateAttention(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAttentionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	attention, err := h.attentionUsecase.CreateAttention(r.Context(), &req, actorFromContext(r))
	if err != nil {
		h.writeAttentionError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Attention created successfully", attention)
}

// GetAttentions lists attentions with optional filters
func (h *AttentionHandler) GetAttentions(w http.ResponseWriter, r *http.Request) {
	filter := &entity.AttentionFilter{
		StartAt: r.URL.Query().Get("start_at"),
		EndAt:   r.URL.Query().Get("end_at"),
		Status:  r.URL.Query().Get("status"),
	}

	if raw := r.URL.Query().Get("doctor_id"); raw != "" {
		doctorID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid doctor_id", nil)
			return
		}
		filter.DoctorID = &doctorID
	}
	if raw := r.URL.Query().Get("patient_id"); raw != "" {
		patientID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid patient_id", nil)
			return
		}
		filter.PatientID = &patientID
	}

	attentions, err := h.attentionUsecase.GetAttentions(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list attentions")
		return
	}

	response.Success(w, http.StatusOK, "Attentions retrieved successfully", attentions)
}

// GetAttention returns one attention
func (h *AttentionHandler) GetAttention(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid attention ID", nil)
		return
	}

	attention, err := h.attentionUsecase.GetAttention(r.Context(), id)
	if err != nil {
		h.writeAttentionError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Attention retrieved successfully", attention)
}

// UpdateAttention patches reason, diagnosis, fee or status
func (h *AttentionHandler) UpdateAttention(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid attention ID", nil)
		return
	}

	var req dto.UpdateAttentionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	attention, err := h.attentionUsecase.UpdateAttention(r.Context(), id, &req, actorFromContext(r))
	if err != nil {
		h.writeAttentionError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Attention updated successfully", attention)
}

// DeleteAttention soft deletes an attention
func (h *AttentionHandler) DeleteAttention(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid attention ID", nil)
		return
	}

	if err := h.attentionUsecase.DeleteAttention(r.Context(), id, actorFromContext(r)); err != nil {
		h.writeAttentionError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Attention deleted successfully", nil)
}

func (h *AttentionHandler) writeAttentionError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrAttentionNotFound:
		response.NotFound(w, "Attention not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrNoScheduleForDate, usecase.ErrInvalidSlot, usecase.ErrSlotTaken,
		usecase.ErrDayCapacityFull, usecase.ErrInvalidDateFormat, usecase.ErrInvalidAmount,
		usecase.ErrInvalidStatusChange:
		response.UnprocessableEntity(w, err.Error())
	default:
		response.InternalServerError(w, "Failed to process attention")
	}
}
