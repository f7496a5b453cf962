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

type SurgeryHandler struct {
	surgeryUsecase usecase.SurgeryUsecase
	validator      *validator.CustomValidator
}

func NewSurgeryHandler(surgeryUsecase usecase.SurgeryUsecase, validator *validator.CustomValidator) *SurgeryHandler {
	return &SurgeryHandler{
		surgeryUsecase: surgeryUsecase,
		validator:      validator,
	}
}

// CreateSurgery schedules a surgical procedure
func (h *SurgeryHandler) CreateSurgery(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSurgeryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	surgery, err := h.surgeryUsecase.CreateSurgery(r.Context(), &req, actorFromContext(r))
	if err != nil {
		h.writeSurgeryError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Surgery created successfully", surgery)
}

// GetSurgeries lists surgeries with optional filters
func (h *SurgeryHandler) GetSurgeries(w http.ResponseWriter, r *http.Request) {
	filter := &entity.SurgeryFilter{
		Status: r.URL.Query().Get("status"),
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

	surgeries, err := h.surgeryUsecase.GetSurgeries(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list surgeries")
		return
	}

	response.Success(w, http.StatusOK, "Surgeries retrieved successfully", surgeries)
}

// GetSurgery returns one surgery
func (h *SurgeryHandler) GetSurgery(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid surgery ID", nil)
		return
	}

	surgery, err := h.surgeryUsecase.GetSurgery(r.Context(), id)
	if err != nil {
		h.writeSurgeryError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Surgery retrieved successfully", surgery)
}

// UpdateSurgery patches a surgery
func (h *SurgeryHandler) UpdateSurgery(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid surgery ID", nil)
		return
	}

	var req dto.UpdateSurgeryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	surgery, err := h.surgeryUsecase.UpdateSurgery(r.Context(), id, &req, actorFromContext(r))
	if err != nil {
		h.writeSurgeryError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Surgery updated successfully", surgery)
}

// DeleteSurgery soft deletes a surgery
func (h *SurgeryHandler) DeleteSurgery(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid surgery ID", nil)
		return
	}

	if err := h.surgeryUsecase.DeleteSurgery(r.Context(), id, actorFromContext(r)); err != nil {
		h.writeSurgeryError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Surgery deleted successfully", nil)
}

func (h *SurgeryHandler) writeSurgeryError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrSurgeryNotFound:
		response.NotFound(w, "Surgery not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrInvalidDateFormat, usecase.ErrInvalidAmount, usecase.ErrInvalidStatusChange:
		response.UnprocessableEntity(w, err.Error())
	default:
		response.InternalServerError(w, "Failed to process surgery")
	}
}
