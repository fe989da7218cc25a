package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jmarken/shiftpulse/internal/domain"
	"github.com/jmarken/shiftpulse/internal/engine"
	"github.com/jmarken/shiftpulse/internal/llm"
)

// AdviceWindowDays is the window the advice endpoint reasons over.
const AdviceWindowDays = 7

// AdviceService generates recovery advice from engine output.
type AdviceService interface {
	// Generate creates recovery advice for a user.
	Generate(ctx context.Context, userID uuid.UUID) (*domain.AdviceResponse, error)
}

type adviceService struct {
	vitalsService VitalsService
	llmClient     llm.AdviceLLM
}

// NewAdviceService creates a new AdviceService.
func NewAdviceService(vitalsService VitalsService, llmClient llm.AdviceLLM) AdviceService {
	return &adviceService{
		vitalsService: vitalsService,
		llmClient:     llmClient,
	}
}

func (s *adviceService) Generate(ctx context.Context, userID uuid.UUID) (*domain.AdviceResponse, error) {
	summary, err := s.vitalsService.Summary(ctx, userID, AdviceWindowDays)
	if err != nil {
		return nil, err
	}

	// Resolve the same window again for the per-day detail the LLM sees
	today := time.Now().UTC().Truncate(24 * time.Hour)
	from := today.AddDate(0, 0, -(AdviceWindowDays - 1))
	rangeResp, err := s.vitalsService.ComputeRange(ctx, userID, engine.DateKey(from), engine.DateKey(today))
	if err != nil {
		return nil, err
	}

	adviceCtx := &domain.AdviceContext{
		Summary: *summary,
		Recent:  rangeResp.Days,
	}

	output, err := s.llmClient.GenerateAdvice(ctx, adviceCtx)
	if err != nil {
		return nil, err
	}

	return &domain.AdviceResponse{
		Summary: *summary,
		Advice:  *output,
	}, nil
}
