package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jmarken/shiftpulse/internal/domain"
	"github.com/jmarken/shiftpulse/internal/engine"
	"github.com/jmarken/shiftpulse/internal/repository"
)

const (
	// MinLoggedDays is how many days a user must have logged before
	// vitals are computed at all.
	MinLoggedDays = 3

	// MaxRangeDays caps a single vitals request.
	MaxRangeDays = 92

	// DefaultSummaryWindowDays is the default trailing window for the
	// vitals summary.
	DefaultSummaryWindowDays = 7

	// MaxSummaryWindowDays caps the summary window.
	MaxSummaryWindowDays = 30

	// SnapshotLookbackDays is how far before the requested start the
	// snapshot extends so the recurrences warm up from real history.
	SnapshotLookbackDays = 14
)

// VitalsService computes daily Body/Mental batteries from day logs.
type VitalsService interface {
	// ComputeRange returns one DailyVital per calendar day in [from, to].
	ComputeRange(ctx context.Context, userID uuid.UUID, from, to string) (*domain.VitalsResponse, error)
	// Summary aggregates the trailing window ending today.
	Summary(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.VitalsSummaryResponse, error)
}

type vitalsService struct {
	dayLogRepo repository.DayLogRepository
	userRepo   repository.UserRepository
}

func NewVitalsService(dayLogRepo repository.DayLogRepository, userRepo repository.UserRepository) VitalsService {
	return &vitalsService{
		dayLogRepo: dayLogRepo,
		userRepo:   userRepo,
	}
}

func (s *vitalsService) ComputeRange(ctx context.Context, userID uuid.UUID, from, to string) (*domain.VitalsResponse, error) {
	start, err := parseDate(from)
	if err != nil {
		return nil, domain.ErrInvalidDateRange
	}
	end, err := parseDate(to)
	if err != nil {
		return nil, domain.ErrInvalidDateRange
	}
	if end.Before(start) || int(end.Sub(start).Hours()/24) >= MaxRangeDays {
		return nil, domain.ErrInvalidDateRange
	}

	vitals, err := s.compute(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	return &domain.VitalsResponse{
		From: engine.DateKey(start),
		To:   engine.DateKey(end),
		Days: vitals,
	}, nil
}

func (s *vitalsService) Summary(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.VitalsSummaryResponse, error) {
	if windowDays <= 0 {
		windowDays = DefaultSummaryWindowDays
	}
	if windowDays > MaxSummaryWindowDays {
		windowDays = MaxSummaryWindowDays
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -(windowDays - 1))

	vitals, err := s.compute(ctx, userID, start, today)
	if err != nil {
		return nil, err
	}

	return buildSummary(windowDays, vitals), nil
}

// compute runs the engine over [start, end] for the user. The snapshot
// extends SnapshotLookbackDays before start so streaks and debt carried
// in from earlier logs are reflected.
func (s *vitalsService) compute(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]engine.DailyVital, error) {
	tracer := otel.Tracer("shiftpulse-api/vitals")
	ctx, span := tracer.Start(ctx, "VitalsService.compute",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.String("range.from", engine.DateKey(start)),
			attribute.String("range.to", engine.DateKey(end)),
		),
	)
	defer span.End()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	logged, err := s.dayLogRepo.CountLogged(ctx, userID)
	if err != nil {
		return nil, err
	}
	if logged < MinLoggedDays {
		return nil, domain.ErrInsufficientData
	}

	snapFrom := start.AddDate(0, 0, -SnapshotLookbackDays)
	logs, err := s.dayLogRepo.ListByDateRange(ctx, userID, snapFrom, end)
	if err != nil {
		return nil, err
	}

	snap := buildSnapshot(user, logs)

	inputPayload := map[string]any{
		"user_id":       userID.String(),
		"from":          engine.DateKey(start),
		"to":            engine.DateKey(end),
		"logged_days":   logged,
		"snapshot_days": len(logs),
	}
	if inputJSON, err := json.Marshal(inputPayload); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.input", string(inputJSON)))
	}

	vitals := engine.ComputeVitalsRange(snap, start, end)

	if outputJSON, err := json.Marshal(vitals); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(outputJSON)))
	}
	span.SetAttributes(attribute.Int("vitals.days", len(vitals)))

	return vitals, nil
}

// buildSnapshot converts stored day logs into the engine's read-only
// input view.
func buildSnapshot(user *domain.User, logs []domain.DayLog) engine.Snapshot {
	snap := engine.Snapshot{
		Shifts:    make(map[string]engine.Shift, len(logs)),
		Bio:       make(map[string]engine.BioInputs, len(logs)),
		Emotions:  make(map[string]engine.EmotionEntry, len(logs)),
		Menstrual: user.MenstrualConfig(),
	}

	for i := range logs {
		log := &logs[i]
		key := engine.DateKey(log.Date)
		snap.Shifts[key] = engine.Shift(log.Shift)
		if bio := log.BioInputs(); bio.HasAny() {
			snap.Bio[key] = bio
		}
		if log.Mood != nil || log.Note != nil {
			snap.Emotions[key] = log.EmotionEntry()
		}
	}

	return snap
}

func buildSummary(windowDays int, vitals []engine.DailyVital) *domain.VitalsSummaryResponse {
	summary := &domain.VitalsSummaryResponse{
		WindowDays:              windowDays,
		WorstSeverity:           engine.SeverityStable,
		TopFactors:              engine.TopFactors(vitals, 3),
		PersonalizationAccuracy: engine.PersonalizationAccuracy(vitals),
	}

	var bodySum, mentalSum float64
	for _, v := range vitals {
		if severityRank(v.Severity) > severityRank(summary.WorstSeverity) {
			summary.WorstSeverity = v.Severity
		}
		if !v.Engine.Usable() {
			continue
		}
		summary.UsableDays++
		bodySum += v.Body.Value
		mentalSum += v.Mental.Value
	}

	if summary.UsableDays > 0 {
		n := float64(summary.UsableDays)
		summary.AvgBody = round1(bodySum / n)
		summary.AvgMental = round1(mentalSum / n)
	}

	return summary
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func severityRank(s engine.Severity) int {
	switch s {
	case engine.SeverityWarning:
		return 2
	case engine.SeverityCaution:
		return 1
	default:
		return 0
	}
}
