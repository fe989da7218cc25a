package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmarken/shiftpulse/internal/engine"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Timezone string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`

	// Cycle tracking settings, read-only to the vitals engine.
	CycleTrackingOn  bool       `gorm:"not null;default:false" json:"cycle_tracking_on"`
	LastPeriodStart  *time.Time `gorm:"type:date" json:"last_period_start,omitempty"`
	CycleLengthDays  int        `gorm:"type:smallint;not null;default:28" json:"cycle_length_days"`
	PeriodLengthDays int        `gorm:"type:smallint;not null;default:5" json:"period_length_days"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// MenstrualConfig converts the persisted settings into the engine's
// read-only cycle configuration.
func (u *User) MenstrualConfig() engine.MenstrualConfig {
	return engine.MenstrualConfig{
		Enabled:         u.CycleTrackingOn,
		LastPeriodStart: u.LastPeriodStart,
		CycleLength:     u.CycleLengthDays,
		PeriodLength:    u.PeriodLengthDays,
	}
}

// CreateUserRequest is the request body for creating a user.
// @Description Request payload for registering a tracked user.
type CreateUserRequest struct {
	// IANA timezone used for local day boundaries
	Timezone string `json:"timezone" validate:"required,timezone" example:"Europe/Prague"`
}

// UserResponse is the response body for user endpoints.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Timezone:  u.Timezone,
		CreatedAt: u.CreatedAt,
	}
}

// CycleSettingsRequest is the request body for updating cycle settings.
// @Description Cycle tracking configuration.
type CycleSettingsRequest struct {
	// Enable or disable cycle tracking
	Enabled bool `json:"enabled"`
	// First day of the most recent period (YYYY-MM-DD)
	LastPeriodStart *string `json:"last_period_start,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2024-05-01"`
	// Average cycle length in days (20-45)
	CycleLengthDays int `json:"cycle_length_days" validate:"omitempty,min=20,max=45" example:"28"`
	// Average period length in days (2-10)
	PeriodLengthDays int `json:"period_length_days" validate:"omitempty,min=2,max=10" example:"5"`
}

// CycleSettingsResponse is the response body for cycle settings endpoints.
type CycleSettingsResponse struct {
	Enabled          bool    `json:"enabled"`
	LastPeriodStart  *string `json:"last_period_start,omitempty"`
	CycleLengthDays  int     `json:"cycle_length_days"`
	PeriodLengthDays int     `json:"period_length_days"`
}

func (u *User) ToCycleSettingsResponse() CycleSettingsResponse {
	resp := CycleSettingsResponse{
		Enabled:          u.CycleTrackingOn,
		CycleLengthDays:  u.CycleLengthDays,
		PeriodLengthDays: u.PeriodLengthDays,
	}
	if u.LastPeriodStart != nil {
		s := u.LastPeriodStart.Format("2006-01-02")
		resp.LastPeriodStart = &s
	}
	return resp
}
