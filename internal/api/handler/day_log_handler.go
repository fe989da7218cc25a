package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jmarken/shiftpulse/internal/api/validation"
	"github.com/jmarken/shiftpulse/internal/domain"
	"github.com/jmarken/shiftpulse/internal/service"
	"github.com/jmarken/shiftpulse/pkg/problem"
)

type DayLogHandler struct {
	service service.DayLogService
}

func NewDayLogHandler(service service.DayLogService) *DayLogHandler {
	return &DayLogHandler{service: service}
}

// Upsert handles PUT /v1/users/{userId}/day-logs/{date}
// @Summary Create or replace a day log
// @Description Log one day's shift and optional wellbeing fields. The whole day is replaced; omitted fields count as not logged. Returns 201 when the day was new, 200 when it was replaced.
// @Tags day-logs
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param date path string true "Calendar day (YYYY-MM-DD)" example(2024-05-01)
// @Param request body domain.UpsertDayLogRequest true "Day log data"
// @Success 201 {object} domain.DayLogResponse "New day log created"
// @Success 200 {object} domain.DayLogResponse "Existing day log replaced"
// @Failure 400 {object} problem.Problem "Invalid request body or date"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/day-logs/{date} [put]
func (h *DayLogHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	date := chi.URLParam(r, "date")

	var req domain.UpsertDayLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	log, created, err := h.service.Upsert(r.Context(), userID, date, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			problem.BadRequest("Date must be in YYYY-MM-DD format").Write(w)
			return
		}
		problem.InternalError("Failed to save day log").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if created {
		w.WriteHeader(http.StatusCreated)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	json.NewEncoder(w).Encode(log.ToResponse())
}

// List handles GET /v1/users/{userId}/day-logs
// @Summary List day logs
// @Description Fetch paginated day log history, newest first. Filter by date range.
// @Tags day-logs
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param from query string false "Start of date range (YYYY-MM-DD)" example(2024-05-01)
// @Param to query string false "End of date range (YYYY-MM-DD)" example(2024-05-31)
// @Param limit query integer false "Results per page (1-100)" default(20) minimum(1) maximum(100)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.DayLogListResponse "Day logs with pagination"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/day-logs [get]
func (h *DayLogHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	filter, fieldErrors := parseDayLogFilter(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list day logs").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Delete handles DELETE /v1/users/{userId}/day-logs/{date}
// @Summary Delete a day log
// @Description Remove the log for a single day. The day reverts to unlogged for vitals computation.
// @Tags day-logs
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param date path string true "Calendar day (YYYY-MM-DD)" example(2024-05-01)
// @Success 204 "Day log deleted"
// @Failure 400 {object} problem.Problem "Invalid date"
// @Failure 404 {object} problem.Problem "User or day log not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/day-logs/{date} [delete]
func (h *DayLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	date := chi.URLParam(r, "date")

	if err := h.service.Delete(r.Context(), userID, date); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Day log not found").Write(w)
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			problem.BadRequest("Date must be in YYYY-MM-DD format").Write(w)
			return
		}
		problem.InternalError("Failed to delete day log").Write(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseDayLogFilter(r *http.Request) (domain.DayLogFilter, []problem.FieldError) {
	var filter domain.DayLogFilter
	var fieldErrors []problem.FieldError

	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{Field: "from", Message: "must be a date in YYYY-MM-DD format"})
		} else {
			filter.From = &t
		}
	}

	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{Field: "to", Message: "must be a date in YYYY-MM-DD format"})
		} else {
			filter.To = &t
		}
	}

	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		fieldErrors = append(fieldErrors, problem.FieldError{Field: "to", Message: "must not be before from"})
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 100 {
			fieldErrors = append(fieldErrors, problem.FieldError{Field: "limit", Message: "must be an integer between 1 and 100"})
		} else {
			filter.Limit = limit
		}
	}

	filter.Cursor = r.URL.Query().Get("cursor")

	if fieldErrors != nil {
		return domain.DayLogFilter{}, fieldErrors
	}
	return filter, nil
}
