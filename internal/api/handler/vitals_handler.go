package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/jmarken/shiftpulse/internal/domain"
	"github.com/jmarken/shiftpulse/internal/engine"
	"github.com/jmarken/shiftpulse/internal/langfuse"
	"github.com/jmarken/shiftpulse/internal/llm"
	"github.com/jmarken/shiftpulse/internal/service"
	"github.com/jmarken/shiftpulse/pkg/problem"
)

// VitalsHandler handles vitals and advice endpoints.
type VitalsHandler struct {
	vitalsService  service.VitalsService
	adviceService  service.AdviceService
	langfuseClient langfuse.Client
}

// NewVitalsHandler creates a new VitalsHandler.
func NewVitalsHandler(
	vitalsService service.VitalsService,
	adviceService service.AdviceService,
	langfuseClient langfuse.Client,
) *VitalsHandler {
	return &VitalsHandler{
		vitalsService:  vitalsService,
		adviceService:  adviceService,
		langfuseClient: langfuseClient,
	}
}

// GetRange handles GET /v1/users/{userId}/vitals
// @Summary Get daily vitals for a date range
// @Description Compute Body and Mental battery scores for each day in the range. Requires at least 3 logged days of history.
// @Tags vitals
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param from query string true "Start of range (YYYY-MM-DD)" example(2024-05-01)
// @Param to query string true "End of range (YYYY-MM-DD)" example(2024-05-14)
// @Success 200 {object} domain.VitalsResponse "One entry per calendar day"
// @Failure 400 {object} problem.Problem "Invalid or too large date range"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Not enough logged days"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/vitals [get]
func (h *VitalsHandler) GetRange(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		problem.BadRequest("from and to query parameters are required").Write(w)
		return
	}

	result, err := h.vitalsService.ComputeRange(r.Context(), userID, from, to)
	if err != nil {
		h.writeVitalsError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetToday handles GET /v1/users/{userId}/vitals/today
// @Summary Get today's vitals
// @Description Compute Body and Mental battery scores for the current UTC day.
// @Tags vitals
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} engine.DailyVital "Today's vitals"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Not enough logged days"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/vitals/today [get]
func (h *VitalsHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	today := engine.DateKey(time.Now().UTC())
	result, err := h.vitalsService.ComputeRange(r.Context(), userID, today, today)
	if err != nil {
		h.writeVitalsError(w, err)
		return
	}
	if len(result.Days) == 0 {
		problem.InternalError("Failed to compute vitals").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result.Days[0])
}

// GetSummary handles GET /v1/users/{userId}/vitals/summary
// @Summary Get a vitals summary
// @Description Aggregate the trailing window: average scores over usable days, worst severity, top depletion factors, and personalization accuracy.
// @Tags vitals
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param window_days query integer false "Trailing window length" default(7) minimum(1) maximum(30)
// @Success 200 {object} domain.VitalsSummaryResponse "Window summary"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Not enough logged days"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/vitals/summary [get]
func (h *VitalsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	windowDays := parseIntParam(r, "window_days", service.DefaultSummaryWindowDays)
	if windowDays < 1 || windowDays > service.MaxSummaryWindowDays {
		problem.BadRequest("window_days must be between 1 and 30").Write(w)
		return
	}

	result, err := h.vitalsService.Summary(r.Context(), userID, windowDays)
	if err != nil {
		h.writeVitalsError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetAdvice handles GET /v1/users/{userId}/vitals/advice
// @Summary Get LLM-generated recovery advice
// @Description Generate non-medical recovery advice from the last week of vitals. The engine's numbers are the only input; nothing flows back.
// @Tags vitals
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.AdviceResponse "Advice with the backing summary"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Not enough logged days"
// @Failure 500 {object} problem.Problem "Server error"
// @Failure 502 {object} problem.Problem "LLM error"
// @Failure 503 {object} problem.Problem "LLM service unavailable"
// @Router /users/{userId}/vitals/advice [get]
func (h *VitalsHandler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	result, err := h.adviceService.Generate(r.Context(), userID)
	if err != nil {
		if errors.Is(err, llm.ErrOpenAIUnavailable) {
			problem.ServiceUnavailable("OpenAI service is not configured").Write(w)
			return
		}
		if errors.Is(err, llm.ErrOpenAIRequest) || errors.Is(err, llm.ErrOpenAIResponse) {
			problem.BadGateway("Failed to generate advice from LLM").Write(w)
			return
		}
		h.writeVitalsError(w, err)
		return
	}

	// Attach OTEL trace ID (if present) to response for feedback linking
	span := trace.SpanFromContext(r.Context())
	if span.SpanContext().IsValid() {
		result.TraceID = span.SpanContext().TraceID().String()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// FeedbackRequest is the request body for advice feedback.
// @Description Request body for rating a previous advice response.
type FeedbackRequest struct {
	// Trace ID from the advice response
	TraceID string `json:"trace_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Rating score (1-5)
	Score int `json:"score" example:"4" minimum:"1" maximum:"5"`
	// Optional comment
	Comment string `json:"comment,omitempty" example:"The advice matched my schedule."`
}

// PostFeedback handles POST /v1/users/{userId}/vitals/advice/feedback
// @Summary Submit feedback on recovery advice
// @Description Submit a user rating and optional comment for a previous advice response.
// @Tags vitals
// @Accept json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param body body FeedbackRequest true "Feedback request"
// @Success 204 "Feedback submitted"
// @Failure 400 {object} problem.Problem "Invalid request"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/vitals/advice/feedback [post]
func (h *VitalsHandler) PostFeedback(w http.ResponseWriter, r *http.Request) {
	if _, err := uuid.Parse(chi.URLParam(r, "userId")); err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid request body").Write(w)
		return
	}

	if req.TraceID == "" {
		problem.BadRequest("trace_id is required").Write(w)
		return
	}
	if req.Score < 1 || req.Score > 5 {
		problem.BadRequest("score must be between 1 and 5").Write(w)
		return
	}

	// Errors are swallowed; feedback is accepted even when Langfuse is off
	_ = h.langfuseClient.CreateScore(r.Context(), langfuse.ScoreInput{
		TraceID: req.TraceID,
		Name:    "user_rating",
		Value:   float64(req.Score),
		Comment: req.Comment,
	})

	w.WriteHeader(http.StatusNoContent)
}

func (h *VitalsHandler) writeVitalsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		problem.NotFound("User not found").Write(w)
	case errors.Is(err, domain.ErrInvalidDateRange):
		problem.BadRequest("Invalid date range").Write(w)
	case errors.Is(err, domain.ErrInsufficientData):
		problem.New(http.StatusUnprocessableEntity, "insufficient-data", "Insufficient Data", "At least 3 logged days are required before vitals can be computed").Write(w)
	default:
		problem.InternalError("Failed to compute vitals").Write(w)
	}
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultValue int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}
