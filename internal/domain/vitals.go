package domain

import "github.com/jmarken/shiftpulse/internal/engine"

// VitalsResponse is the response for the vitals range endpoint.
// @Description Daily Body/Mental battery scores for a date range.
type VitalsResponse struct {
	// Requested range
	From string `json:"from" example:"2024-05-01"`
	To   string `json:"to" example:"2024-05-14"`
	// One entry per calendar day, ascending
	Days []engine.DailyVital `json:"days"`
}

// VitalsSummaryResponse is the response for the vitals summary endpoint.
// @Description Aggregated vitals over a trailing window, restricted to usable days.
type VitalsSummaryResponse struct {
	WindowDays int `json:"window_days" example:"7"`
	// Days in the window that passed the reliability/gap filter
	UsableDays int `json:"usable_days" example:"5"`
	// Average scores across usable days (0 when no day is usable)
	AvgBody   float64 `json:"avg_body" example:"54.3"`
	AvgMental float64 `json:"avg_mental" example:"61.0"`
	// Worst severity observed in the window
	WorstSeverity engine.Severity `json:"worst_severity" example:"caution"`
	// Top depletion factors, descending
	TopFactors []engine.FactorShare `json:"top_factors"`
	// Confidence in personalized output (0-100), from real-input density
	PersonalizationAccuracy float64 `json:"personalization_accuracy" example:"71.4"`
}

// LLMAdviceOutput contains the structured output from the LLM.
// @Description LLM-generated shift-recovery advice.
type LLMAdviceOutput struct {
	// Summary of the current recovery state (2-3 sentences)
	Summary string `json:"summary" example:"Your recovery is strained after three consecutive night shifts..."`
	// Observations about the driving factors (3-6 items)
	Observations []string `json:"observations"`
	// Actionable, non-medical guidance (3-5 items)
	Guidance []string `json:"guidance"`
}

// AdviceContext is the structured numeric context sent to the LLM. The
// engine supplies it; nothing ever flows back from the LLM into the
// engine.
type AdviceContext struct {
	Summary VitalsSummaryResponse `json:"summary"`
	Recent  []engine.DailyVital   `json:"recent"`
}

// AdviceResponse is the response for the advice endpoint.
// @Description Recovery advice built from engine output.
type AdviceResponse struct {
	Summary VitalsSummaryResponse `json:"summary"`
	Advice  LLMAdviceOutput       `json:"advice"`
	// Trace ID for feedback (present when tracing is enabled)
	TraceID string `json:"trace_id,omitempty"`
}
