package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jmarken/shiftpulse/internal/domain"
	"github.com/jmarken/shiftpulse/pkg/pagination"
)

type DayLogRepository interface {
	// Upsert inserts or replaces the single row for (user, date).
	Upsert(ctx context.Context, log *domain.DayLog) error
	GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DayLog, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.DayLogFilter) ([]domain.DayLog, error)
	// ListByDateRange returns all rows in [from, to] ordered ascending,
	// the shape the vitals snapshot builder consumes.
	ListByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.DayLog, error)
	Delete(ctx context.Context, userID uuid.UUID, date time.Time) error
	// CountLogged returns how many days the user has logged in total.
	CountLogged(ctx context.Context, userID uuid.UUID) (int64, error)
}

type dayLogRepository struct {
	db *gorm.DB
}

func NewDayLogRepository(db *gorm.DB) DayLogRepository {
	return &dayLogRepository{db: db}
}

func (r *dayLogRepository) Upsert(ctx context.Context, log *domain.DayLog) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		UpdateAll: true,
	}).Create(log).Error
}

func (r *dayLogRepository) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DayLog, error) {
	var log domain.DayLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&log).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

func (r *dayLogRepository) List(ctx context.Context, userID uuid.UUID, filter domain.DayLogFilter) ([]domain.DayLog, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC")

	if filter.From != nil {
		query = query.Where("date >= ?", filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", filter.To)
	}

	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			// DESC order: rows strictly older than the cursor date.
			query = query.Where("date < ?", cursor.Date)
		}
	}

	// Fetch one extra to determine if there are more results.
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var logs []domain.DayLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *dayLogRepository) ListByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.DayLog, error) {
	var logs []domain.DayLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&logs).Error
	return logs, err
}

func (r *dayLogRepository) Delete(ctx context.Context, userID uuid.UUID, date time.Time) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Delete(&domain.DayLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *dayLogRepository) CountLogged(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.DayLog{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
