package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jmarken/shiftpulse/internal/domain"
)

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestUserHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockService    *MockUserService
		wantStatusCode int
	}{
		{
			name: "valid request",
			body: `{"timezone": "Europe/Budapest"}`,
			mockService: &MockUserService{
				createFunc: func(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
					return &domain.User{ID: uuid.New(), Timezone: req.Timezone}, nil
				},
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "invalid JSON",
			body:           `{invalid}`,
			mockService:    &MockUserService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "missing timezone",
			body:           `{}`,
			mockService:    &MockUserService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "invalid timezone",
			body:           `{"timezone": "Invalid/Zone"}`,
			mockService:    &MockUserService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewUserHandler(tt.mockService)

			req := httptest.NewRequest(http.MethodPost, "/v1/users", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			handler.Create(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Create() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}

func TestUserHandler_GetByID(t *testing.T) {
	existingID := uuid.New()
	mockService := &MockUserService{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			if id == existingID {
				return &domain.User{ID: id, Timezone: "UTC"}, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	handler := NewUserHandler(mockService)

	tests := []struct {
		name           string
		userID         string
		wantStatusCode int
	}{
		{"existing user", existingID.String(), http.StatusOK},
		{"unknown user", uuid.New().String(), http.StatusNotFound},
		{"malformed id", "not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/users/"+tt.userID, nil)
			req = withURLParam(req, "userId", tt.userID)
			rec := httptest.NewRecorder()

			handler.GetByID(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("GetByID() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}

func TestUserHandler_UpdateCycleSettings(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		body           string
		mockService    *MockUserService
		wantStatusCode int
	}{
		{
			name:           "valid enable",
			body:           `{"enabled": true, "last_period_start": "2024-05-01", "cycle_length_days": 28, "period_length_days": 5}`,
			mockService:    &MockUserService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "cycle length out of range",
			body:           `{"enabled": true, "last_period_start": "2024-05-01", "cycle_length_days": 10}`,
			mockService:    &MockUserService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "malformed anchor date",
			body:           `{"enabled": true, "last_period_start": "May 1st"}`,
			mockService:    &MockUserService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name: "enable without anchor",
			body: `{"enabled": true}`,
			mockService: &MockUserService{
				updateCycleSettingsFunc: func(ctx context.Context, id uuid.UUID, req *domain.CycleSettingsRequest) (*domain.CycleSettingsResponse, error) {
					return nil, domain.ErrInvalidInput
				},
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "unknown user",
			body: `{"enabled": false}`,
			mockService: &MockUserService{
				updateCycleSettingsFunc: func(ctx context.Context, id uuid.UUID, req *domain.CycleSettingsRequest) (*domain.CycleSettingsResponse, error) {
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewUserHandler(tt.mockService)

			req := httptest.NewRequest(http.MethodPut, "/v1/users/"+userID.String()+"/settings/cycle", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req = withURLParam(req, "userId", userID.String())
			rec := httptest.NewRecorder()

			handler.UpdateCycleSettings(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("UpdateCycleSettings() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
			if tt.wantStatusCode == http.StatusUnprocessableEntity && !strings.Contains(rec.Body.String(), "validation-error") {
				t.Errorf("UpdateCycleSettings() body = %s, want validation-error problem", rec.Body.String())
			}
		})
	}
}

func TestUserHandler_GetCycleSettings(t *testing.T) {
	userID := uuid.New()
	handler := NewUserHandler(&MockUserService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID.String()+"/settings/cycle", nil)
	req = withURLParam(req, "userId", userID.String())
	rec := httptest.NewRecorder()

	handler.GetCycleSettings(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GetCycleSettings() status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}
