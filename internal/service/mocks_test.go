package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jmarken/shiftpulse/internal/domain"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	createFunc              func(ctx context.Context, user *domain.User) error
	getByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	existsFunc              func(ctx context.Context, id uuid.UUID) (bool, error)
	updateCycleSettingsFunc func(ctx context.Context, user *domain.User) error
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &domain.User{ID: id, Timezone: "UTC", CycleLengthDays: 28, PeriodLengthDays: 5}, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, id)
	}
	return true, nil
}

func (m *MockUserRepository) UpdateCycleSettings(ctx context.Context, user *domain.User) error {
	if m.updateCycleSettingsFunc != nil {
		return m.updateCycleSettingsFunc(ctx, user)
	}
	return nil
}

// MockDayLogRepository is a mock implementation of repository.DayLogRepository
type MockDayLogRepository struct {
	upsertFunc          func(ctx context.Context, log *domain.DayLog) error
	getByDateFunc       func(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DayLog, error)
	listFunc            func(ctx context.Context, userID uuid.UUID, filter domain.DayLogFilter) ([]domain.DayLog, error)
	listByDateRangeFunc func(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.DayLog, error)
	deleteFunc          func(ctx context.Context, userID uuid.UUID, date time.Time) error
	countLoggedFunc     func(ctx context.Context, userID uuid.UUID) (int64, error)
}

func (m *MockDayLogRepository) Upsert(ctx context.Context, log *domain.DayLog) error {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, log)
	}
	return nil
}

func (m *MockDayLogRepository) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DayLog, error) {
	if m.getByDateFunc != nil {
		return m.getByDateFunc(ctx, userID, date)
	}
	return nil, domain.ErrNotFound
}

func (m *MockDayLogRepository) List(ctx context.Context, userID uuid.UUID, filter domain.DayLogFilter) ([]domain.DayLog, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return nil, nil
}

func (m *MockDayLogRepository) ListByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.DayLog, error) {
	if m.listByDateRangeFunc != nil {
		return m.listByDateRangeFunc(ctx, userID, from, to)
	}
	return nil, nil
}

func (m *MockDayLogRepository) Delete(ctx context.Context, userID uuid.UUID, date time.Time) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, date)
	}
	return nil
}

func (m *MockDayLogRepository) CountLogged(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.countLoggedFunc != nil {
		return m.countLoggedFunc(ctx, userID)
	}
	return 0, nil
}

// MockAdviceLLM is a mock implementation of llm.AdviceLLM
type MockAdviceLLM struct {
	generateFunc func(ctx context.Context, adviceCtx *domain.AdviceContext) (*domain.LLMAdviceOutput, error)
}

func (m *MockAdviceLLM) GenerateAdvice(ctx context.Context, adviceCtx *domain.AdviceContext) (*domain.LLMAdviceOutput, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, adviceCtx)
	}
	return &domain.LLMAdviceOutput{
		Summary:      "Recovery is holding steady.",
		Observations: []string{"Body battery stayed above 50."},
		Guidance:     []string{"Keep the current sleep anchor."},
	}, nil
}
