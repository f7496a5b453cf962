package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/schedule"
	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/response"
	"clinic-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ScheduleRuleHandler struct {
	ruleUsecase usecase.ScheduleRuleUsecase
	validator   *validator.CustomValidator
}

func NewScheduleRuleHandler(ruleUsecase usecase.ScheduleRuleUsecase, validator *validator.CustomValidator) *ScheduleRuleHandler {
	return &ScheduleRuleHandler{
		ruleUsecase: ruleUsecase,
		validator:   validator,
	}
}

// CreateDatedRule handles creation of a one-off dated rule
// @Summary Create a dated schedule rule
// @Tags Schedule Rules
// @Accept json
// @Produce json
// @Param request body dto.CreateDatedRuleRequest true "Create Dated Rule Request"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /schedule-rules/dated [post]
func (h *ScheduleRuleHandler) CreateDatedRule(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDatedRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	rule, err := h.ruleUsecase.CreateDatedRule(r.Context(), &req, actorFromContext(r))
	if err != nil {
		h.writeRuleError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Schedule rule created successfully", rule)
}

// CreateRecurringRule handles creation of a weekly recurring rule
// @Summary Create a recurring schedule rule
// @Tags Schedule Rules
// @Accept json
// @Produce json
// @Param request body dto.CreateRecurringRuleRequest true "Create Recurring Rule Request"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /schedule-rules/recurring [post]
func (h *ScheduleRuleHandler) CreateRecurringRule(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRecurringRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	rule, err := h.ruleUsecase.CreateRecurringRule(r.Context(), &req, actorFromContext(r))
	if err != nil {
		h.writeRuleError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Schedule rule created successfully", rule)
}

// ResolveAvailability resolves a doctor's concrete slots for a date
// @Summary Resolve slot availability for a doctor and date
// @Tags Schedule Rules
// @Produce json
// @Param doctor_id query string true "Doctor ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /schedule-rules [get]
func (h *ScheduleRuleHandler) ResolveAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(r.URL.Query().Get("doctor_id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor_id", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "date is required", nil)
		return
	}

	availability, err := h.ruleUsecase.ResolveAvailability(r.Context(), doctorID, date)
	if err != nil {
		h.writeRuleError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Availability resolved successfully", availability)
}

// GetRulesByDoctor lists a doctor's rules, optionally filtered by kind
func (h *ScheduleRuleHandler) GetRulesByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind != "" && kind != "dated" && kind != "recurring" {
		response.Error(w, http.StatusBadRequest, "kind must be dated or recurring", nil)
		return
	}

	rules, err := h.ruleUsecase.GetRulesByDoctor(r.Context(), doctorID, kind)
	if err != nil {
		h.writeRuleError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedule rules retrieved successfully", rules)
}

// GetRule returns a single rule
func (h *ScheduleRuleHandler) GetRule(w http.ResponseWriter, r *http.Request) {
	ruleID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid rule ID", nil)
		return
	}

	rule, err := h.ruleUsecase.GetRule(r.Context(), ruleID)
	if err != nil {
		h.writeRuleError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedule rule retrieved successfully", rule)
}

// UpdateRule patches a rule's window, day key, capacity or notes
func (h *ScheduleRuleHandler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	ruleID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid rule ID", nil)
		return
	}

	var req dto.UpdateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	rule, err := h.ruleUsecase.UpdateRule(r.Context(), ruleID, &req, actorFromContext(r))
	if err != nil {
		h.writeRuleError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedule rule updated successfully", rule)
}

// ToggleActive flips a rule between active and inactive
func (h *ScheduleRuleHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	ruleID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid rule ID", nil)
		return
	}

	rule, err := h.ruleUsecase.ToggleActive(r.Context(), ruleID, actorFromContext(r))
	if err != nil {
		h.writeRuleError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedule rule toggled successfully", rule)
}

// DeleteRule soft deletes a rule
func (h *ScheduleRuleHandler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	ruleID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid rule ID", nil)
		return
	}

	if err := h.ruleUsecase.DeleteRule(r.Context(), ruleID, actorFromContext(r)); err != nil {
		h.writeRuleError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedule rule deleted successfully", nil)
}

// RestoreRule brings a soft-deleted rule back
func (h *ScheduleRuleHandler) RestoreRule(w http.ResponseWriter, r *http.Request) {
	ruleID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid rule ID", nil)
		return
	}

	rule, err := h.ruleUsecase.RestoreRule(r.Context(), ruleID, actorFromContext(r))
	if err != nil {
		h.writeRuleError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedule rule restored successfully", rule)
}

func (h *ScheduleRuleHandler) writeRuleError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrRuleNotFound:
		response.NotFound(w, "Schedule rule not found")
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrRuleConflict:
		response.UnprocessableEntity(w, err.Error())
	case usecase.ErrRuleDateInPast, usecase.ErrInvalidRuleDate, usecase.ErrRuleNotDeleted,
		schedule.ErrInvalidTimeFormat, schedule.ErrEndNotAfterStart, schedule.ErrInvalidSlotDuration:
		response.UnprocessableEntity(w, err.Error())
	default:
		response.InternalServerError(w, "Failed to process schedule rule")
	}
}
