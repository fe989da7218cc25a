package engine

import "time"

// recordFor reads one day's raw fields from the snapshot and normalizes
// them into a DailyRecord. Absent map entries default rather than fail:
// a day with no shift entry is OFF, a day with no bio or emotion entry is
// simply unlogged.
func recordFor(snap Snapshot, date time.Time) DailyRecord {
	key := DateKey(date)

	shift := ShiftOff
	if s, ok := snap.Shifts[key]; ok && s != "" {
		shift = s
	}

	rec := DailyRecord{
		Date:  date,
		Shift: shift,
	}

	if bio, ok := snap.Bio[key]; ok {
		rec.Bio = bio
	}
	if emo, ok := snap.Emotions[key]; ok {
		rec.Emotion = emo
	}

	rec.Logged = rec.Bio.HasAny() || rec.Emotion.Mood != nil
	return rec
}

// Defaults substituted when a field was never logged and nothing earlier
// can be carried forward. Sleep defaults to the nightly target so an
// unlogged day accrues no phantom debt.
const (
	defaultSleepHours   = targetSleepHours
	defaultSleepQuality = 0.5 // normalized, mid-scale
	defaultStressNorm   = 0.5 // stress 1.5 on the 0-3 scale
	defaultMoodNorm     = 0.5 // mood 3 on the 1-5 scale
)

// totalSleepHours returns the day's effective sleep: the main block plus
// naps at half weight.
func totalSleepHours(bio BioInputs) float64 {
	total := defaultSleepHours
	if bio.SleepHours != nil {
		total = *bio.SleepHours
	}
	if bio.NapHours != nil {
		total += *bio.NapHours * 0.5
	}
	if total < 0 {
		total = 0
	}
	return total
}

func sleepQualityNorm(bio BioInputs) float64 {
	if bio.SleepQuality == nil {
		return defaultSleepQuality
	}
	q := *bio.SleepQuality
	if q < 1 {
		q = 1
	}
	if q > 5 {
		q = 5
	}
	return float64(q-1) / 4
}

func stressNorm(bio BioInputs) float64 {
	if bio.Stress == nil {
		return defaultStressNorm
	}
	return clamp01(float64(*bio.Stress) / 3)
}

func moodNorm(emo EmotionEntry) float64 {
	if emo.Mood == nil {
		return defaultMoodNorm
	}
	m := *emo.Mood
	if m < 1 {
		m = 1
	}
	if m > 5 {
		m = 5
	}
	return float64(m-1) / 4
}

// activityBalance scores how restorative the day's activity level is:
// moderate movement scores best, sedentary and overexertion both cost.
func activityBalance(bio BioInputs) float64 {
	if bio.Activity == nil {
		return 0.7
	}
	switch *bio.Activity {
	case 0:
		return 0.4
	case 1:
		return 0.8
	case 2:
		return 1.0
	default:
		return 0.7
	}
}
