package engine

import "time"

// lookbackDays is how far before the requested start the recurrence is
// warmed up, so debt, streaks and the Mental EMA are not artificially
// reset at the window boundary. Fourteen days matches the analysis window
// used by callers; it is a documented approximation of "all history".
const lookbackDays = 14

// ComputeVitalsRange computes one DailyVital per calendar day in
// [start, end] inclusive, in ascending date order. It is a pure function
// of its arguments: identical snapshot and window always reproduce
// identical output, and concurrent calls never share state.
func ComputeVitalsRange(snap Snapshot, start, end time.Time) []DailyVital {
	start = dateOnly(start)
	end = dateOnly(end)
	if end.Before(start) {
		return nil
	}

	// Seeding the recurrence only matters when something was logged before
	// the window; otherwise the neutral state is already correct and the
	// first emitted day is the first day of known history.
	computeStart := start
	if hasInputBefore(snap, start) {
		computeStart = start.AddDate(0, 0, -lookbackDays)
	}

	state := newRollingState()
	days := int(end.Sub(start).Hours()/24) + 1
	out := make([]DailyVital, 0, days)

	for d := computeStart; !d.After(end); d = d.AddDate(0, 0, 1) {
		vital, firstDay := computeDay(snap, d, &state)
		if firstDay {
			vital.Body.Change = nil
			vital.Mental.Change = nil
		}
		if !d.Before(start) {
			out = append(out, vital)
		}
	}

	return out
}

// computeDay advances the recurrence by one day and materializes the
// day's output. The bool result reports whether this was the first day of
// known history (no prior day processed), in which case day-over-day
// change is undefined.
func computeDay(snap Snapshot, d time.Time, state *rollingState) (DailyVital, bool) {
	firstDay := !state.seenAnyDay
	state.seenAnyDay = true

	rec := recordFor(snap, d)
	if rec.Logged {
		state.gapDays = 0
		kept := rec
		state.lastLogged = &kept
	} else {
		state.gapDays++
		rec = imputeFrom(rec, state.lastLogged)
	}

	phase, cycleDay, impact := resolvePhase(snap.Menstrual, d)
	ix := advanceDay(rec, state, impact)

	bodyPrev := state.bodyPrev
	mentalPrev := state.mentalEMAPrev
	body, mental := scoreDay(rec, ix, state)

	engineState := EngineState{
		SleepDebtHours:    round2(state.sleepDebtHours),
		NightStreak:       state.nightStreak,
		CSI:               round2(ix.csi),
		SRI:               round2(ix.sri),
		CIF:               round2(ix.cif),
		SLF:               round2(ix.slf),
		MIF:               round2(ix.mif),
		InputReliability:  round2(inputReliability(state.gapDays)),
		DaysSinceAnyInput: state.gapDays,
	}

	bodyScore := BatteryScore{Value: round1(body), Tone: toneFor(body)}
	mentalScore := BatteryScore{Value: round1(mental), Tone: toneFor(mental)}
	// Change is the difference of the emitted values, so it always agrees
	// with what a client sees for consecutive days.
	bodyChange := round1(bodyScore.Value - round1(bodyPrev))
	mentalChange := round1(mentalScore.Value - round1(mentalPrev))
	bodyScore.Change = &bodyChange
	mentalScore.Change = &mentalChange

	vital := DailyVital{
		Date:     DateKey(d),
		Shift:    rec.Shift,
		Body:     bodyScore,
		Mental:   mentalScore,
		Severity: classifySeverity((bodyScore.Value+mentalScore.Value)/2, engineState),
		Engine:   engineState,
		Inputs:   rec.Bio,
		Menstrual: MenstrualInfo{
			Enabled:  snap.Menstrual.Enabled,
			Label:    phase.Label(),
			Phase:    phase,
			CycleDay: cycleDay,
		},
	}

	if rec.Emotion.Mood != nil || rec.Emotion.Note != "" {
		emo := rec.Emotion
		vital.Emotion = &emo
	}

	return vital, firstDay
}

// hasInputBefore reports whether any shift, bio or emotion entry exists
// strictly before the given date. Shift-calendar entries count: a run of
// night shifts with no bio logged still feeds the streak recurrence. ISO
// date keys compare correctly as strings.
func hasInputBefore(snap Snapshot, date time.Time) bool {
	key := DateKey(date)
	for k := range snap.Shifts {
		if k < key {
			return true
		}
	}
	for k := range snap.Bio {
		if k < key {
			return true
		}
	}
	for k := range snap.Emotions {
		if k < key {
			return true
		}
	}
	return false
}
