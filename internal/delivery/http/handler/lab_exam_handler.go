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

type LabExamHandler struct {
	labExamUsecase usecase.LabExamUsecase
	validator      *validator.CustomValidator
}

func NewLabExamHandler(labExamUsecase usecase.LabExamUsecase, validator *validator.CustomValidator) *LabExamHandler {
	return &LabExamHandler{
		labExamUsecase: labExamUsecase,
		validator:      validator,
	}
}

// CreateLabExam requests a laboratory exam for a patient
func (h *LabExamHandler) CreateLabExam(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLabExamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	exam, err := h.labExamUsecase.CreateLabExam(r.Context(), &req, actorFromContext(r))
	if err != nil {
		h.writeLabExamError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Lab exam created successfully", exam)
}

// GetLabExams lists lab exams with optional filters
func (h *LabExamHandler) GetLabExams(w http.ResponseWriter, r *http.Request) {
	filter := &entity.LabExamFilter{
		Status: r.URL.Query().Get("status"),
	}

	if raw := r.URL.Query().Get("patient_id"); raw != "" {
		patientID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid patient_id", nil)
			return
		}
		filter.PatientID = &patientID
	}
	if raw := r.URL.Query().Get("requested_by_id"); raw != "" {
		requestedByID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid requested_by_id", nil)
			return
		}
		filter.RequestedByID = &requestedByID
	}

	exams, err := h.labExamUsecase.GetLabExams(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list lab exams")
		return
	}

	response.Success(w, http.StatusOK, "Lab exams retrieved successfully", exams)
}

// GetLabExam returns one lab exam
func (h *LabExamHandler) GetLabExam(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid lab exam ID", nil)
		return
	}

	exam, err := h.labExamUsecase.GetLabExam(r.Context(), id)
	if err != nil {
		h.writeLabExamError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Lab exam retrieved successfully", exam)
}

// UpdateLabExam patches a lab exam
func (h *LabExamHandler) UpdateLabExam(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid lab exam ID", nil)
		return
	}

	var req dto.UpdateLabExamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	exam, err := h.labExamUsecase.UpdateLabExam(r.Context(), id, &req, actorFromContext(r))
	if err != nil {
		h.writeLabExamError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Lab exam updated successfully", exam)
}

// DeleteLabExam soft deletes a lab exam
func (h *LabExamHandler) DeleteLabExam(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid lab exam ID", nil)
		return
	}

	if err := h.labExamUsecase.DeleteLabExam(r.Context(), id, actorFromContext(r)); err != nil {
		h.writeLabExamError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Lab exam deleted successfully", nil)
}

func (h *LabExamHandler) writeLabExamError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrLabExamNotFound:
		response.NotFound(w, "Lab exam not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrInvalidAmount, usecase.ErrInvalidStatusChange:
		response.UnprocessableEntity(w, err.Error())
	default:
		response.InternalServerError(w, "Failed to process lab exam")
	}
}
