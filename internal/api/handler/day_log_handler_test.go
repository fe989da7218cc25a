package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jmarken/shiftpulse/internal/domain"
)

func newDayLogRequest(method, userID, date, body string) *http.Request {
	target := "/v1/users/" + userID + "/day-logs"
	if date != "" {
		target += "/" + date
	}
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userId", userID)
	if date != "" {
		rctx.URLParams.Add("date", date)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestDayLogHandler_Upsert(t *testing.T) {
	userID := uuid.New().String()

	tests := []struct {
		name           string
		date           string
		body           string
		mockService    *MockDayLogService
		wantStatusCode int
	}{
		{
			name:           "new day created",
			date:           "2024-05-01",
			body:           `{"shift": "N", "sleep_hours": 5.5, "sleep_quality": 2, "caffeine_mg": 300, "caffeine_last_at": "21:00"}`,
			mockService:    &MockDayLogService{},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "existing day replaced",
			date: "2024-05-01",
			body: `{"shift": "OFF"}`,
			mockService: &MockDayLogService{
				upsertFunc: func(ctx context.Context, userID uuid.UUID, date string, req *domain.UpsertDayLogRequest) (*domain.DayLog, bool, error) {
					return &domain.DayLog{ID: uuid.New(), UserID: userID, Shift: req.Shift}, false, nil
				},
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid shift code",
			date:           "2024-05-01",
			body:           `{"shift": "X"}`,
			mockService:    &MockDayLogService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "sleep hours out of range",
			date:           "2024-05-01",
			body:           `{"shift": "D", "sleep_hours": 30}`,
			mockService:    &MockDayLogService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "bad caffeine time",
			date:           "2024-05-01",
			body:           `{"shift": "D", "caffeine_last_at": "9pm"}`,
			mockService:    &MockDayLogService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name: "malformed date",
			date: "01.05.2024",
			body: `{"shift": "D"}`,
			mockService: &MockDayLogService{
				upsertFunc: func(ctx context.Context, userID uuid.UUID, date string, req *domain.UpsertDayLogRequest) (*domain.DayLog, bool, error) {
					return nil, false, domain.ErrInvalidInput
				},
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "unknown user",
			date: "2024-05-01",
			body: `{"shift": "D"}`,
			mockService: &MockDayLogService{
				upsertFunc: func(ctx context.Context, userID uuid.UUID, date string, req *domain.UpsertDayLogRequest) (*domain.DayLog, bool, error) {
					return nil, false, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewDayLogHandler(tt.mockService)

			req := newDayLogRequest(http.MethodPut, userID, tt.date, tt.body)
			rec := httptest.NewRecorder()

			handler.Upsert(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Upsert() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}

func TestDayLogHandler_List(t *testing.T) {
	userID := uuid.New().String()

	tests := []struct {
		name           string
		query          string
		wantStatusCode int
	}{
		{"no filters", "", http.StatusOK},
		{"date range", "?from=2024-05-01&to=2024-05-31", http.StatusOK},
		{"inverted range", "?from=2024-05-31&to=2024-05-01", http.StatusUnprocessableEntity},
		{"bad from", "?from=yesterday", http.StatusUnprocessableEntity},
		{"bad limit", "?limit=0", http.StatusUnprocessableEntity},
		{"limit too large", "?limit=500", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewDayLogHandler(&MockDayLogService{})

			req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID+"/day-logs"+tt.query, nil)
			req = withURLParam(req, "userId", userID)
			rec := httptest.NewRecorder()

			handler.List(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("List() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}

func TestDayLogHandler_List_PassesFilter(t *testing.T) {
	userID := uuid.New()
	var gotFilter domain.DayLogFilter
	mockService := &MockDayLogService{
		listFunc: func(ctx context.Context, _ uuid.UUID, filter domain.DayLogFilter) (*domain.DayLogListResponse, error) {
			gotFilter = filter
			return &domain.DayLogListResponse{Data: []domain.DayLogResponse{}}, nil
		},
	}
	handler := NewDayLogHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID.String()+"/day-logs?from=2024-05-01&to=2024-05-31&limit=50&cursor=abc", nil)
	req = withURLParam(req, "userId", userID.String())
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("List() status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if gotFilter.From == nil || gotFilter.To == nil {
		t.Fatal("expected date filters to be set")
	}
	if gotFilter.Limit != 50 || gotFilter.Cursor != "abc" {
		t.Errorf("filter = %+v", gotFilter)
	}
}

func TestDayLogHandler_Delete(t *testing.T) {
	userID := uuid.New().String()

	tests := []struct {
		name           string
		date           string
		mockService    *MockDayLogService
		wantStatusCode int
	}{
		{
			name:           "deleted",
			date:           "2024-05-01",
			mockService:    &MockDayLogService{},
			wantStatusCode: http.StatusNoContent,
		},
		{
			name: "not found",
			date: "2024-05-01",
			mockService: &MockDayLogService{
				deleteFunc: func(ctx context.Context, userID uuid.UUID, date string) error {
					return domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "malformed date",
			date: "garbage",
			mockService: &MockDayLogService{
				deleteFunc: func(ctx context.Context, userID uuid.UUID, date string) error {
					return domain.ErrInvalidInput
				},
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewDayLogHandler(tt.mockService)

			req := newDayLogRequest(http.MethodDelete, userID, tt.date, "")
			rec := httptest.NewRecorder()

			handler.Delete(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Delete() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}

func TestDayLogHandler_Upsert_EchoesLog(t *testing.T) {
	userID := uuid.New()
	handler := NewDayLogHandler(&MockDayLogService{})

	req := newDayLogRequest(http.MethodPut, userID.String(), "2024-05-01", `{"shift": "N", "mood": 4}`)
	rec := httptest.NewRecorder()

	handler.Upsert(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var resp domain.DayLogResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Shift != "N" {
		t.Errorf("Shift = %q, want N", resp.Shift)
	}
}
