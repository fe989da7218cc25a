package engine

// reliabilityHorizonDays is the gap at which imputed input is treated as
// worthless. The linear decay below is a deliberate approximation: the
// contract only requires a strictly decreasing curve with reliability 1 at
// gap 0 and ~0 from a week out.
const reliabilityHorizonDays = 7

// UsableDay thresholds: downstream weekly aggregation counts a day only
// when reliability meets the floor AND the input gap is short. Exact
// contract values relied on by callers filtering 7-day windows.
const (
	UsableReliabilityFloor = 0.45
	UsableMaxGapDays       = 2
)

// inputReliability maps the number of days since the last logged input to
// a confidence score in [0,1].
func inputReliability(gapDays int) float64 {
	if gapDays <= 0 {
		return 1
	}
	return clamp01(1 - float64(gapDays)/reliabilityHorizonDays)
}

// Usable reports whether a computed day is trustworthy enough for
// aggregation windows.
func (e EngineState) Usable() bool {
	return e.InputReliability >= UsableReliabilityFloor && e.DaysSinceAnyInput <= UsableMaxGapDays
}

// imputeFrom copies the most recent known bio and emotion values onto an
// unlogged day, field by field. The record keeps its own date and shift;
// only signal fields are carried forward.
func imputeFrom(rec DailyRecord, last *DailyRecord) DailyRecord {
	if last == nil {
		return rec
	}
	rec.Bio = last.Bio
	rec.Emotion = last.Emotion
	rec.Imputed = true
	return rec
}
