package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jmarken/shiftpulse/internal/domain"
	"github.com/jmarken/shiftpulse/internal/repository"
)

type UserService interface {
	Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetCycleSettings(ctx context.Context, id uuid.UUID) (*domain.CycleSettingsResponse, error)
	UpdateCycleSettings(ctx context.Context, id uuid.UUID, req *domain.CycleSettingsRequest) (*domain.CycleSettingsResponse, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	user := &domain.User{
		ID:               uuid.New(),
		Timezone:         req.Timezone,
		CycleLengthDays:  28,
		PeriodLengthDays: 5,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) GetCycleSettings(ctx context.Context, id uuid.UUID) (*domain.CycleSettingsResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := user.ToCycleSettingsResponse()
	return &resp, nil
}

func (s *userService) UpdateCycleSettings(ctx context.Context, id uuid.UUID, req *domain.CycleSettingsRequest) (*domain.CycleSettingsResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Enabling without an anchor date has nothing to resolve phases from
	if req.Enabled && req.LastPeriodStart == nil && user.LastPeriodStart == nil {
		return nil, domain.ErrInvalidInput
	}

	user.CycleTrackingOn = req.Enabled
	if req.LastPeriodStart != nil {
		anchor, err := time.Parse("2006-01-02", *req.LastPeriodStart)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		user.LastPeriodStart = &anchor
	}
	if req.CycleLengthDays != 0 {
		user.CycleLengthDays = req.CycleLengthDays
	}
	if req.PeriodLengthDays != 0 {
		user.PeriodLengthDays = req.PeriodLengthDays
	}

	if err := s.repo.UpdateCycleSettings(ctx, user); err != nil {
		return nil, err
	}

	resp := user.ToCycleSettingsResponse()
	return &resp, nil
}
