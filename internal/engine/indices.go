package engine

import (
	"math"
	"strconv"
	"strings"
)

const (
	// targetSleepHours is the nightly sleep target used for debt accrual.
	targetSleepHours = 7.5

	// debtDecay is the share of remaining debt forgiven on a surplus day,
	// on top of the surplus itself, so debt cannot grow without bound.
	debtDecay = 0.25

	// sleepAvgAlpha is the smoothing factor for the rolling sleep average
	// that SLF compares against.
	sleepAvgAlpha = 0.3

	// caffeineHalfLifeHours models caffeine clearance.
	caffeineHalfLifeHours = 5.0

	// referenceBedtimeMinutes is the assumed bedtime (23:00) used to judge
	// how late a caffeine dose landed.
	referenceBedtimeMinutes = 23 * 60

	// shiftWindowDays is the trailing window for shift-irregularity.
	shiftWindowDays = 7
)

// rollingState is the recurrence state threaded across days by the range
// orchestrator. It is a plain value: copying it is enough to isolate two
// concurrent range computations.
type rollingState struct {
	sleepDebtHours float64
	nightStreak    int
	mentalEMAPrev  float64
	bodyPrev       float64
	sleepAvg       float64
	recentShifts   []Shift
	lastLogged     *DailyRecord
	gapDays        int
	seenAnyDay     bool
}

func newRollingState() rollingState {
	return rollingState{
		mentalEMAPrev: neutralScore,
		bodyPrev:      neutralScore,
		sleepAvg:      targetSleepHours,
	}
}

// indices holds one day's computed sub-indices, all clamped to [0,1].
type indices struct {
	sri float64
	cif float64
	csi float64
	slf float64
	mif float64
}

// advanceDay runs the per-day recurrence: updates debt, streak and rolling
// averages in state and returns the day's sub-indices. The menstrual
// impact is the phase resolver's contribution for this date.
func advanceDay(rec DailyRecord, state *rollingState, menstrualImpact float64) indices {
	actual := totalSleepHours(rec.Bio)
	avgBefore := state.sleepAvg

	// Sleep debt recurrence. Deficit accrues in full; surplus pays debt
	// down and forgives a slice of the remainder.
	deficit := targetSleepHours - actual
	if deficit > 0 {
		state.sleepDebtHours += deficit
	} else {
		state.sleepDebtHours = math.Max(0, (state.sleepDebtHours+deficit)*(1-debtDecay))
	}

	// Night streak: consecutive N shifts only.
	if rec.Shift == ShiftNight {
		state.nightStreak++
	} else {
		state.nightStreak = 0
	}

	state.recentShifts = append(state.recentShifts, rec.Shift)
	if len(state.recentShifts) > shiftWindowDays {
		state.recentShifts = state.recentShifts[len(state.recentShifts)-shiftWindowDays:]
	}

	state.sleepAvg = sleepAvgAlpha*actual + (1-sleepAvgAlpha)*avgBefore

	return indices{
		sri: sleepRecoveryIndex(rec.Bio, actual, state.sleepDebtHours),
		cif: caffeineInterference(rec.Bio),
		csi: circadianStrain(state.nightStreak, state.recentShifts, rec.Bio),
		slf: sleepLossFactor(actual, avgBefore),
		mif: menstrualImpactFactor(menstrualImpact, rec.Bio),
	}
}

// sleepRecoveryIndex rises with sleep quantity and quality, falls with
// accumulated debt and poor timing.
func sleepRecoveryIndex(bio BioInputs, actual, debt float64) float64 {
	duration := clamp01(actual / targetSleepHours)
	quality := sleepQualityNorm(bio)
	debtPenalty := 0.3 * clamp01(debt/10)

	timingPenalty := 0.0
	if bio.SleepTiming != nil {
		switch *bio.SleepTiming {
		case TimingFair:
			timingPenalty = 0.08
		case TimingPoor:
			timingPenalty = 0.2
		}
	}

	return clamp01(0.6*duration + 0.4*quality - debtPenalty - timingPenalty)
}

// caffeineInterference returns 1 for no interference, falling as the dose
// grows and lands closer to the reference bedtime. The residual at bedtime
// follows exponential clearance.
func caffeineInterference(bio BioInputs) float64 {
	if bio.CaffeineMg == nil || *bio.CaffeineMg <= 0 {
		return 1
	}
	mg := clamp(float64(*bio.CaffeineMg), 0, 1000)

	// Hours between the last dose and bedtime; mid-afternoon assumed when
	// only the amount was logged.
	hoursBefore := 8.0
	if bio.CaffeineLastAt != nil {
		if m, ok := parseClockMinutes(*bio.CaffeineLastAt); ok {
			hoursBefore = float64(referenceBedtimeMinutes-m) / 60
			if hoursBefore < 0 {
				hoursBefore = 0
			}
		}
	}

	residual := mg * math.Pow(0.5, hoursBefore/caffeineHalfLifeHours)
	return clamp01(1 - residual/400)
}

// circadianStrain combines night-streak pressure, irregularity of the
// trailing shift pattern, and logged overtime.
func circadianStrain(nightStreak int, recent []Shift, bio BioInputs) float64 {
	nightFactor := math.Min(0.6, 0.15*float64(nightStreak))

	overtime := 0.0
	if bio.OvertimeHours != nil {
		overtime = clamp(*bio.OvertimeHours, 0, 8) / 20
	}

	return clamp01(nightFactor + 0.35*shiftIrregularity(recent) + overtime)
}

// shiftIrregularity is the share of day-to-day transitions in the trailing
// window that change shift category. OFF and VAC collapse to one rest
// category so a stable rotation scores low.
func shiftIrregularity(recent []Shift) float64 {
	if len(recent) < 2 {
		return 0
	}
	changes := 0
	for i := 1; i < len(recent); i++ {
		if shiftCategory(recent[i]) != shiftCategory(recent[i-1]) {
			changes++
		}
	}
	return float64(changes) / float64(len(recent)-1)
}

func shiftCategory(s Shift) Shift {
	if !s.IsWorking() {
		return ShiftOff
	}
	return s
}

// sleepLossFactor spikes when today's sleep drops substantially below the
// rolling average.
func sleepLossFactor(actual, rollingAvg float64) float64 {
	if rollingAvg <= 0 {
		return 0
	}
	return clamp01((rollingAvg - actual) / (rollingAvg * 0.6))
}

// menstrualImpactFactor converts the phase contribution into the 0-1
// factor where 1 means no negative impact. Logged flow deepens the dip
// slightly.
func menstrualImpactFactor(impact float64, bio BioInputs) float64 {
	if impact > 0 && bio.MenstrualFlow != nil {
		impact += 0.02 * clamp(float64(*bio.MenstrualFlow), 0, 3)
	}
	return clamp01(1 - impact)
}

// parseClockMinutes parses "HH:MM" into minutes after midnight.
func parseClockMinutes(s string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
