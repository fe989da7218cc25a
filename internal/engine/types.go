// Package engine computes daily Body/Mental battery scores for shift
// workers. It is a pure computation layer: every function operates on an
// immutable Snapshot passed in by the caller, carries recurrence state
// forward one day at a time, and never performs I/O or reads the clock.
package engine

import (
	"math"
	"time"
)

// Shift is the work-shift code assigned to a calendar day.
// @Description Work shift code: D (day), E (evening), N (night), M (middle), OFF, VAC (vacation).
type Shift string

const (
	ShiftDay      Shift = "D"
	ShiftEvening  Shift = "E"
	ShiftNight    Shift = "N"
	ShiftMiddle   Shift = "M"
	ShiftOff      Shift = "OFF"
	ShiftVacation Shift = "VAC"
)

// IsWorking reports whether the shift is an actual work assignment.
func (s Shift) IsWorking() bool {
	switch s {
	case ShiftDay, ShiftEvening, ShiftNight, ShiftMiddle:
		return true
	}
	return false
}

// SleepTiming is a coarse self-assessment of how well the main sleep block
// aligned with the body clock.
type SleepTiming string

const (
	TimingGood SleepTiming = "good"
	TimingFair SleepTiming = "fair"
	TimingPoor SleepTiming = "poor"
)

// MenstrualStatus is the self-reported cycle status for a day.
type MenstrualStatus string

const (
	StatusNone      MenstrualStatus = "none"
	StatusSpotting  MenstrualStatus = "spotting"
	StatusBleeding  MenstrualStatus = "bleeding"
)

// BioInputs holds the optional physiological fields a user may log for one
// day. Nil means "not logged", which is distinct from a logged zero.
type BioInputs struct {
	SleepHours      *float64        `json:"sleep_hours,omitempty"`
	NapHours        *float64        `json:"nap_hours,omitempty"`
	SleepQuality    *int            `json:"sleep_quality,omitempty"` // 1-5
	SleepTiming     *SleepTiming    `json:"sleep_timing,omitempty"`
	Stress          *int            `json:"stress,omitempty"`   // 0-3
	Activity        *int            `json:"activity,omitempty"` // 0-3
	CaffeineMg      *int            `json:"caffeine_mg,omitempty"`      // 0-1000
	CaffeineLastAt  *string         `json:"caffeine_last_at,omitempty"` // "HH:MM"
	FatigueLevel    *int            `json:"fatigue_level,omitempty"`    // 0-10
	SymptomSeverity *int            `json:"symptom_severity,omitempty"` // 0-3
	MenstrualStatus *MenstrualStatus `json:"menstrual_status,omitempty"`
	MenstrualFlow   *int            `json:"menstrual_flow,omitempty"` // 0-3
	OvertimeHours   *float64        `json:"overtime_hours,omitempty"` // 0-8
}

// HasAny reports whether at least one field was logged.
func (b BioInputs) HasAny() bool {
	return b.SleepHours != nil || b.NapHours != nil || b.SleepQuality != nil ||
		b.SleepTiming != nil || b.Stress != nil || b.Activity != nil ||
		b.CaffeineMg != nil || b.CaffeineLastAt != nil || b.FatigueLevel != nil ||
		b.SymptomSeverity != nil || b.MenstrualStatus != nil || b.MenstrualFlow != nil ||
		b.OvertimeHours != nil
}

// EmotionEntry is the optional mood check-in for a day.
type EmotionEntry struct {
	Mood *int   `json:"mood,omitempty"` // 1-5
	Note string `json:"note,omitempty"`
}

// MenstrualConfig is the user's cycle configuration, owned by settings and
// read-only to the engine.
type MenstrualConfig struct {
	Enabled         bool       `json:"enabled"`
	LastPeriodStart *time.Time `json:"last_period_start,omitempty"`
	CycleLength     int        `json:"cycle_length"`  // 20-45 days
	PeriodLength    int        `json:"period_length"` // 2-10 days
}

// Snapshot is the immutable input the engine computes over. Map keys are
// ISO dates (YYYY-MM-DD). The engine never mutates a Snapshot.
type Snapshot struct {
	Shifts    map[string]Shift
	Bio       map[string]BioInputs
	Emotions  map[string]EmotionEntry
	Menstrual MenstrualConfig
}

// DailyRecord is one day's normalized inputs: the snapshot fields for that
// date with legacy/absent values defaulted, or values copied forward from
// the nearest prior logged day when nothing was logged.
type DailyRecord struct {
	Date    time.Time
	Shift   Shift
	Bio     BioInputs
	Emotion EmotionEntry
	Logged  bool // any bio or emotion field logged for this exact date
	Imputed bool // bio fields were carried forward from an earlier day
}

// Phase is the resolved menstrual-cycle phase for a day.
type Phase string

const (
	PhaseNone       Phase = "none"
	PhasePeriod     Phase = "period"
	PhaseFollicular Phase = "follicular"
	PhaseOvulation  Phase = "ovulation"
	PhaseLuteal     Phase = "luteal"
	PhasePMS        Phase = "pms"
)

// Label is the display name for the phase, empty when there is none.
func (p Phase) Label() string {
	switch p {
	case PhasePeriod:
		return "Period"
	case PhaseFollicular:
		return "Follicular"
	case PhaseOvulation:
		return "Ovulation"
	case PhaseLuteal:
		return "Luteal"
	case PhasePMS:
		return "PMS"
	}
	return ""
}

// Tone is the per-battery traffic-light classification.
type Tone string

const (
	ToneGreen  Tone = "green"
	ToneOrange Tone = "orange"
	ToneRed    Tone = "red"
)

// Severity is the combined three-level day classification.
type Severity string

const (
	SeverityStable  Severity = "stable"
	SeverityCaution Severity = "caution"
	SeverityWarning Severity = "warning"
)

// BatteryScore is one of the two headline recovery scores.
type BatteryScore struct {
	Value float64  `json:"value"` // 0-100
	Tone  Tone     `json:"tone"`
	// Change vs. the previous day; nil on the first day of known history.
	Change *float64 `json:"change,omitempty"`
}

// EngineState exposes the internal indices behind a day's scores.
type EngineState struct {
	SleepDebtHours    float64 `json:"sleep_debt_hours"`
	NightStreak       int     `json:"night_streak"`
	CSI               float64 `json:"csi"` // circadian strain, 0-1
	SRI               float64 `json:"sri"` // sleep recovery, 0-1
	CIF               float64 `json:"cif"` // caffeine interference, 0-1 (1 = none)
	SLF               float64 `json:"slf"` // acute sleep loss, 0-1
	MIF               float64 `json:"mif"` // menstrual impact, 0-1 (1 = none)
	InputReliability  float64 `json:"input_reliability"` // 0-1
	DaysSinceAnyInput int     `json:"days_since_any_input"`
}

// MenstrualInfo is the resolved cycle context attached to a day.
type MenstrualInfo struct {
	Enabled bool   `json:"enabled"`
	Label   string `json:"label,omitempty"`
	Phase   Phase  `json:"phase"`
	// CycleDay is 1-based within the configured cycle; 0 when unresolved.
	CycleDay int `json:"cycle_day,omitempty"`
}

// DailyVital is the engine output for a single calendar day. It is created
// fresh on every ComputeVitalsRange call and never mutated afterwards.
type DailyVital struct {
	Date      string        `json:"date"` // YYYY-MM-DD
	Shift     Shift         `json:"shift"`
	Body      BatteryScore  `json:"body"`
	Mental    BatteryScore  `json:"mental"`
	Severity  Severity      `json:"severity"`
	Engine    EngineState   `json:"engine"`
	Inputs    BioInputs     `json:"inputs"`
	Menstrual MenstrualInfo `json:"menstrual"`
	Emotion   *EmotionEntry `json:"emotion,omitempty"`
}

// DateKey formats a date the way Snapshot maps are keyed.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
