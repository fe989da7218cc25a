package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jmarken/shiftpulse/internal/domain"
	"github.com/jmarken/shiftpulse/internal/repository"
	"github.com/jmarken/shiftpulse/pkg/pagination"
)

type DayLogService interface {
	// Upsert creates or fully replaces the log for (user, date).
	// Returns (log, created, error) - created is false when an existing
	// day was replaced.
	Upsert(ctx context.Context, userID uuid.UUID, date string, req *domain.UpsertDayLogRequest) (*domain.DayLog, bool, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.DayLogFilter) (*domain.DayLogListResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, date string) error
}

type dayLogService struct {
	repo     repository.DayLogRepository
	userRepo repository.UserRepository
}

func NewDayLogService(repo repository.DayLogRepository, userRepo repository.UserRepository) DayLogService {
	return &dayLogService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *dayLogService) Upsert(ctx context.Context, userID uuid.UUID, date string, req *domain.UpsertDayLogRequest) (*domain.DayLog, bool, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, domain.ErrNotFound
	}

	day, err := parseDate(date)
	if err != nil {
		return nil, false, domain.ErrInvalidInput
	}

	existing, err := s.repo.GetByDate(ctx, userID, day)
	if err != nil && err != domain.ErrNotFound {
		return nil, false, err
	}
	created := existing == nil

	log := &domain.DayLog{
		UserID:          userID,
		Date:            day,
		Shift:           req.Shift,
		SleepHours:      req.SleepHours,
		NapHours:        req.NapHours,
		SleepQuality:    req.SleepQuality,
		SleepTiming:     req.SleepTiming,
		Stress:          req.Stress,
		Activity:        req.Activity,
		CaffeineMg:      req.CaffeineMg,
		CaffeineLastAt:  req.CaffeineLastAt,
		FatigueLevel:    req.FatigueLevel,
		SymptomSeverity: req.SymptomSeverity,
		MenstrualStatus: req.MenstrualStatus,
		MenstrualFlow:   req.MenstrualFlow,
		OvertimeHours:   req.OvertimeHours,
		Mood:            req.Mood,
		Note:            req.Note,
	}
	if existing != nil {
		log.ID = existing.ID
	} else {
		log.ID = uuid.New()
	}

	if err := s.repo.Upsert(ctx, log); err != nil {
		return nil, false, err
	}

	return log, created, nil
}

func (s *dayLogService) List(ctx context.Context, userID uuid.UUID, filter domain.DayLogFilter) (*domain.DayLogListResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	logs, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	hasMore := len(logs) > limit
	if hasMore {
		logs = logs[:limit]
	}

	response := &domain.DayLogListResponse{
		Data: make([]domain.DayLogResponse, len(logs)),
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}

	for i, log := range logs {
		response.Data[i] = log.ToResponse()
	}

	if hasMore && len(logs) > 0 {
		last := logs[len(logs)-1]
		cursor := &pagination.Cursor{
			ID:   last.ID,
			Date: last.Date,
		}
		response.Pagination.NextCursor = cursor.Encode()
	}

	return response, nil
}

func (s *dayLogService) Delete(ctx context.Context, userID uuid.UUID, date string) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}

	day, err := parseDate(date)
	if err != nil {
		return domain.ErrInvalidInput
	}

	return s.repo.Delete(ctx, userID, day)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
