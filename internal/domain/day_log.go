package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmarken/shiftpulse/internal/engine"
)

// DayLog is one calendar day's logged data for a user: the assigned shift
// plus any subset of bio and emotion fields. Exactly one row may exist per
// user and date; null columns mean "not logged", distinct from zero.
type DayLog struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_day_logs_user_date" json:"user_id"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:idx_day_logs_user_date" json:"date"`
	Shift  string    `gorm:"type:varchar(4);not null;default:'OFF'" json:"shift"`

	SleepHours      *float64 `gorm:"type:numeric(4,2)" json:"sleep_hours,omitempty"`
	NapHours        *float64 `gorm:"type:numeric(4,2)" json:"nap_hours,omitempty"`
	SleepQuality    *int     `gorm:"type:smallint" json:"sleep_quality,omitempty"`
	SleepTiming     *string  `gorm:"type:varchar(8)" json:"sleep_timing,omitempty"`
	Stress          *int     `gorm:"type:smallint" json:"stress,omitempty"`
	Activity        *int     `gorm:"type:smallint" json:"activity,omitempty"`
	CaffeineMg      *int     `gorm:"type:smallint" json:"caffeine_mg,omitempty"`
	CaffeineLastAt  *string  `gorm:"type:varchar(5)" json:"caffeine_last_at,omitempty"`
	FatigueLevel    *int     `gorm:"type:smallint" json:"fatigue_level,omitempty"`
	SymptomSeverity *int     `gorm:"type:smallint" json:"symptom_severity,omitempty"`
	MenstrualStatus *string  `gorm:"type:varchar(10)" json:"menstrual_status,omitempty"`
	MenstrualFlow   *int     `gorm:"type:smallint" json:"menstrual_flow,omitempty"`
	OvertimeHours   *float64 `gorm:"type:numeric(3,1)" json:"overtime_hours,omitempty"`
	Mood            *int     `gorm:"type:smallint" json:"mood,omitempty"`
	Note            *string  `gorm:"type:text" json:"note,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (DayLog) TableName() string {
	return "day_logs"
}

// BioInputs extracts the engine-facing physiological fields.
func (d *DayLog) BioInputs() engine.BioInputs {
	bio := engine.BioInputs{
		SleepHours:      d.SleepHours,
		NapHours:        d.NapHours,
		SleepQuality:    d.SleepQuality,
		Stress:          d.Stress,
		Activity:        d.Activity,
		CaffeineMg:      d.CaffeineMg,
		CaffeineLastAt:  d.CaffeineLastAt,
		FatigueLevel:    d.FatigueLevel,
		SymptomSeverity: d.SymptomSeverity,
		MenstrualFlow:   d.MenstrualFlow,
		OvertimeHours:   d.OvertimeHours,
	}
	if d.SleepTiming != nil {
		t := engine.SleepTiming(*d.SleepTiming)
		bio.SleepTiming = &t
	}
	if d.MenstrualStatus != nil {
		s := engine.MenstrualStatus(*d.MenstrualStatus)
		bio.MenstrualStatus = &s
	}
	return bio
}

// EmotionEntry extracts the engine-facing mood fields.
func (d *DayLog) EmotionEntry() engine.EmotionEntry {
	emo := engine.EmotionEntry{Mood: d.Mood}
	if d.Note != nil {
		emo.Note = *d.Note
	}
	return emo
}

// UpsertDayLogRequest is the request body for creating or replacing a
// day log.
// @Description One day's shift and optional logged fields. Omitted fields count as not logged.
type UpsertDayLogRequest struct {
	// Shift code for the day
	Shift string `json:"shift" validate:"required,oneof=D E N M OFF VAC" example:"N" enums:"D,E,N,M,OFF,VAC"`
	// Main sleep block in hours
	SleepHours *float64 `json:"sleep_hours,omitempty" validate:"omitempty,min=0,max=24" example:"6.5"`
	// Daytime naps in hours
	NapHours *float64 `json:"nap_hours,omitempty" validate:"omitempty,min=0,max=12" example:"0.5"`
	// Subjective sleep quality (1-5)
	SleepQuality *int `json:"sleep_quality,omitempty" validate:"omitempty,min=1,max=5" example:"3"`
	// How well sleep aligned with the body clock
	SleepTiming *string `json:"sleep_timing,omitempty" validate:"omitempty,oneof=good fair poor" example:"fair" enums:"good,fair,poor"`
	// Stress level (0-3)
	Stress *int `json:"stress,omitempty" validate:"omitempty,min=0,max=3" example:"1"`
	// Physical activity level (0-3)
	Activity *int `json:"activity,omitempty" validate:"omitempty,min=0,max=3" example:"2"`
	// Total caffeine in milligrams (0-1000)
	CaffeineMg *int `json:"caffeine_mg,omitempty" validate:"omitempty,min=0,max=1000" example:"200"`
	// Time of the last caffeine dose (HH:MM)
	CaffeineLastAt *string `json:"caffeine_last_at,omitempty" validate:"omitempty,datetime=15:04" example:"15:30"`
	// Subjective fatigue (0-10)
	FatigueLevel *int `json:"fatigue_level,omitempty" validate:"omitempty,min=0,max=10" example:"4"`
	// Symptom severity (0-3)
	SymptomSeverity *int `json:"symptom_severity,omitempty" validate:"omitempty,min=0,max=3" example:"0"`
	// Cycle status for the day
	MenstrualStatus *string `json:"menstrual_status,omitempty" validate:"omitempty,oneof=none spotting bleeding" example:"none" enums:"none,spotting,bleeding"`
	// Flow intensity (0-3)
	MenstrualFlow *int `json:"menstrual_flow,omitempty" validate:"omitempty,min=0,max=3" example:"0"`
	// Overtime worked in hours (0-8)
	OvertimeHours *float64 `json:"overtime_hours,omitempty" validate:"omitempty,min=0,max=8" example:"1.5"`
	// Mood check-in (1-5)
	Mood *int `json:"mood,omitempty" validate:"omitempty,min=1,max=5" example:"3"`
	// Free-form note
	Note *string `json:"note,omitempty" validate:"omitempty,max=2000"`
}

// DayLogResponse is the response body for day log endpoints.
type DayLogResponse struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	// Calendar day (YYYY-MM-DD)
	Date  string `json:"date" example:"2024-05-01"`
	Shift string `json:"shift" example:"N"`

	SleepHours      *float64 `json:"sleep_hours,omitempty"`
	NapHours        *float64 `json:"nap_hours,omitempty"`
	SleepQuality    *int     `json:"sleep_quality,omitempty"`
	SleepTiming     *string  `json:"sleep_timing,omitempty"`
	Stress          *int     `json:"stress,omitempty"`
	Activity        *int     `json:"activity,omitempty"`
	CaffeineMg      *int     `json:"caffeine_mg,omitempty"`
	CaffeineLastAt  *string  `json:"caffeine_last_at,omitempty"`
	FatigueLevel    *int     `json:"fatigue_level,omitempty"`
	SymptomSeverity *int     `json:"symptom_severity,omitempty"`
	MenstrualStatus *string  `json:"menstrual_status,omitempty"`
	MenstrualFlow   *int     `json:"menstrual_flow,omitempty"`
	OvertimeHours   *float64 `json:"overtime_hours,omitempty"`
	Mood            *int     `json:"mood,omitempty"`
	Note            *string  `json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *DayLog) ToResponse() DayLogResponse {
	return DayLogResponse{
		ID:              d.ID,
		UserID:          d.UserID,
		Date:            d.Date.Format("2006-01-02"),
		Shift:           d.Shift,
		SleepHours:      d.SleepHours,
		NapHours:        d.NapHours,
		SleepQuality:    d.SleepQuality,
		SleepTiming:     d.SleepTiming,
		Stress:          d.Stress,
		Activity:        d.Activity,
		CaffeineMg:      d.CaffeineMg,
		CaffeineLastAt:  d.CaffeineLastAt,
		FatigueLevel:    d.FatigueLevel,
		SymptomSeverity: d.SymptomSeverity,
		MenstrualStatus: d.MenstrualStatus,
		MenstrualFlow:   d.MenstrualFlow,
		OvertimeHours:   d.OvertimeHours,
		Mood:            d.Mood,
		Note:            d.Note,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// DayLogListResponse is the response body for listing day logs.
// @Description Paginated list of day logs, newest first.
type DayLogListResponse struct {
	Data       []DayLogResponse   `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty"`
	// True if more results are available
	HasMore bool `json:"has_more"`
}

// DayLogFilter contains filter parameters for listing day logs.
type DayLogFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Cursor string
}
