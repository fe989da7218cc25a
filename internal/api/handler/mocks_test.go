package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/jmarken/shiftpulse/internal/domain"
	"github.com/jmarken/shiftpulse/internal/langfuse"
)

// MockUserService is a mock implementation of service.UserService
type MockUserService struct {
	createFunc              func(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	getByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getCycleSettingsFunc    func(ctx context.Context, id uuid.UUID) (*domain.CycleSettingsResponse, error)
	updateCycleSettingsFunc func(ctx context.Context, id uuid.UUID, req *domain.CycleSettingsRequest) (*domain.CycleSettingsResponse, error)
}

func (m *MockUserService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &domain.User{ID: uuid.New(), Timezone: req.Timezone}, nil
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserService) GetCycleSettings(ctx context.Context, id uuid.UUID) (*domain.CycleSettingsResponse, error) {
	if m.getCycleSettingsFunc != nil {
		return m.getCycleSettingsFunc(ctx, id)
	}
	return &domain.CycleSettingsResponse{CycleLengthDays: 28, PeriodLengthDays: 5}, nil
}

func (m *MockUserService) UpdateCycleSettings(ctx context.Context, id uuid.UUID, req *domain.CycleSettingsRequest) (*domain.CycleSettingsResponse, error) {
	if m.updateCycleSettingsFunc != nil {
		return m.updateCycleSettingsFunc(ctx, id, req)
	}
	return &domain.CycleSettingsResponse{Enabled: req.Enabled, CycleLengthDays: 28, PeriodLengthDays: 5}, nil
}

// MockDayLogService is a mock implementation of service.DayLogService
type MockDayLogService struct {
	upsertFunc func(ctx context.Context, userID uuid.UUID, date string, req *domain.UpsertDayLogRequest) (*domain.DayLog, bool, error)
	listFunc   func(ctx context.Context, userID uuid.UUID, filter domain.DayLogFilter) (*domain.DayLogListResponse, error)
	deleteFunc func(ctx context.Context, userID uuid.UUID, date string) error
}

func (m *MockDayLogService) Upsert(ctx context.Context, userID uuid.UUID, date string, req *domain.UpsertDayLogRequest) (*domain.DayLog, bool, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, userID, date, req)
	}
	return &domain.DayLog{ID: uuid.New(), UserID: userID, Shift: req.Shift}, true, nil
}

func (m *MockDayLogService) List(ctx context.Context, userID uuid.UUID, filter domain.DayLogFilter) (*domain.DayLogListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.DayLogListResponse{
		Data:       []domain.DayLogResponse{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}

func (m *MockDayLogService) Delete(ctx context.Context, userID uuid.UUID, date string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, date)
	}
	return nil
}

// MockVitalsService is a mock implementation of service.VitalsService
type MockVitalsService struct {
	computeRangeFunc func(ctx context.Context, userID uuid.UUID, from, to string) (*domain.VitalsResponse, error)
	summaryFunc      func(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.VitalsSummaryResponse, error)
}

func (m *MockVitalsService) ComputeRange(ctx context.Context, userID uuid.UUID, from, to string) (*domain.VitalsResponse, error) {
	if m.computeRangeFunc != nil {
		return m.computeRangeFunc(ctx, userID, from, to)
	}
	return &domain.VitalsResponse{From: from, To: to}, nil
}

func (m *MockVitalsService) Summary(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.VitalsSummaryResponse, error) {
	if m.summaryFunc != nil {
		return m.summaryFunc(ctx, userID, windowDays)
	}
	return &domain.VitalsSummaryResponse{WindowDays: windowDays}, nil
}

// MockAdviceService is a mock implementation of service.AdviceService
type MockAdviceService struct {
	generateFunc func(ctx context.Context, userID uuid.UUID) (*domain.AdviceResponse, error)
}

func (m *MockAdviceService) Generate(ctx context.Context, userID uuid.UUID) (*domain.AdviceResponse, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, userID)
	}
	return &domain.AdviceResponse{
		Advice: domain.LLMAdviceOutput{Summary: "ok"},
	}, nil
}

// MockLangfuseClient is a mock implementation of langfuse.Client
type MockLangfuseClient struct {
	createScoreFunc func(ctx context.Context, in langfuse.ScoreInput) error
	scores          []langfuse.ScoreInput
}

func (m *MockLangfuseClient) IsEnabled() bool { return true }

func (m *MockLangfuseClient) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	return "trace-id", nil
}

func (m *MockLangfuseClient) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	m.scores = append(m.scores, in)
	if m.createScoreFunc != nil {
		return m.createScoreFunc(ctx, in)
	}
	return nil
}
