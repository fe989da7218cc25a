package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jmarken/shiftpulse/internal/domain"
)

func TestDayLogService_Upsert(t *testing.T) {
	userID := uuid.New()
	existingID := uuid.New()

	tests := []struct {
		name        string
		date        string
		getByDate   func(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DayLog, error)
		wantCreated bool
		wantErr     error
	}{
		{
			name:        "new day",
			date:        "2024-05-01",
			wantCreated: true,
		},
		{
			name: "existing day is replaced and keeps its ID",
			date: "2024-05-01",
			getByDate: func(ctx context.Context, _ uuid.UUID, _ time.Time) (*domain.DayLog, error) {
				return &domain.DayLog{ID: existingID, UserID: userID, Shift: "D"}, nil
			},
			wantCreated: false,
		},
		{
			name:    "malformed date",
			date:    "01-05-2024",
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var saved *domain.DayLog
			repo := &MockDayLogRepository{
				getByDateFunc: tt.getByDate,
				upsertFunc: func(ctx context.Context, log *domain.DayLog) error {
					saved = log
					return nil
				},
			}
			svc := NewDayLogService(repo, &MockUserRepository{})

			req := &domain.UpsertDayLogRequest{Shift: "N"}
			log, created, err := svc.Upsert(context.Background(), userID, tt.date, req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Upsert() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Upsert() error = %v", err)
			}
			if created != tt.wantCreated {
				t.Errorf("created = %v, want %v", created, tt.wantCreated)
			}
			if log.Shift != "N" {
				t.Errorf("Shift = %q, want N", log.Shift)
			}
			if !tt.wantCreated && log.ID != existingID {
				t.Errorf("ID = %v, want existing %v", log.ID, existingID)
			}
			if saved == nil {
				t.Fatal("repository Upsert was not called")
			}
		})
	}
}

func TestDayLogService_Upsert_UserNotFound(t *testing.T) {
	userRepo := &MockUserRepository{
		existsFunc: func(ctx context.Context, id uuid.UUID) (bool, error) {
			return false, nil
		},
	}
	svc := NewDayLogService(&MockDayLogRepository{}, userRepo)

	_, _, err := svc.Upsert(context.Background(), uuid.New(), "2024-05-01", &domain.UpsertDayLogRequest{Shift: "D"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestDayLogService_List_Pagination(t *testing.T) {
	userID := uuid.New()

	// Repository returns limit+1 rows to signal another page.
	logs := make([]domain.DayLog, 3)
	for i := range logs {
		logs[i] = domain.DayLog{
			ID:     uuid.New(),
			UserID: userID,
			Date:   time.Date(2024, 5, 10-i, 0, 0, 0, 0, time.UTC),
			Shift:  "D",
		}
	}
	repo := &MockDayLogRepository{
		listFunc: func(ctx context.Context, _ uuid.UUID, filter domain.DayLogFilter) ([]domain.DayLog, error) {
			return logs, nil
		},
	}
	svc := NewDayLogService(repo, &MockUserRepository{})

	resp, err := svc.List(context.Background(), userID, domain.DayLogFilter{Limit: 2})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("len(Data) = %d, want 2", len(resp.Data))
	}
	if !resp.Pagination.HasMore {
		t.Error("expected HasMore")
	}
	if resp.Pagination.NextCursor == "" {
		t.Error("expected next cursor")
	}
	if resp.Data[0].Date != "2024-05-10" {
		t.Errorf("first date = %s, want 2024-05-10", resp.Data[0].Date)
	}
}

func TestDayLogService_Delete(t *testing.T) {
	deleted := false
	repo := &MockDayLogRepository{
		deleteFunc: func(ctx context.Context, userID uuid.UUID, date time.Time) error {
			deleted = true
			if date != time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) {
				t.Errorf("date = %v", date)
			}
			return nil
		},
	}
	svc := NewDayLogService(repo, &MockUserRepository{})

	if err := svc.Delete(context.Background(), uuid.New(), "2024-05-01"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !deleted {
		t.Error("repository Delete was not called")
	}

	if err := svc.Delete(context.Background(), uuid.New(), "bad-date"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestDayLogService_Delete_NotFound(t *testing.T) {
	repo := &MockDayLogRepository{
		deleteFunc: func(ctx context.Context, userID uuid.UUID, date time.Time) error {
			return domain.ErrNotFound
		},
	}
	svc := NewDayLogService(repo, &MockUserRepository{})

	if err := svc.Delete(context.Background(), uuid.New(), "2024-05-01"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
