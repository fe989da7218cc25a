package engine

import "time"

// Cycle configuration bounds and defaults. Values outside the bounds are
// clamped, never rejected.
const (
	minCycleLength     = 20
	maxCycleLength     = 45
	defaultCycleLength = 28

	minPeriodLength     = 2
	maxPeriodLength     = 10
	defaultPeriodLength = 5

	// pmsWindowDays is how many days before the next period count as PMS.
	pmsWindowDays = 4
)

// Phase impact contributions feeding MIF. Strongest during period and PMS,
// zero in the follicular phase.
var phaseImpact = map[Phase]float64{
	PhaseNone:       0,
	PhasePeriod:     0.30,
	PhasePMS:        0.22,
	PhaseLuteal:     0.12,
	PhaseOvulation:  0.08,
	PhaseFollicular: 0,
}

// resolvePhase classifies the target date within the configured cycle and
// returns the phase plus its impact contribution. When tracking is disabled
// or no period start is known the engine never fabricates a cycle: the
// result is PhaseNone with zero impact.
func resolvePhase(cfg MenstrualConfig, date time.Time) (Phase, int, float64) {
	if !cfg.Enabled || cfg.LastPeriodStart == nil {
		return PhaseNone, 0, 0
	}

	cycleLen := cfg.CycleLength
	if cycleLen == 0 {
		cycleLen = defaultCycleLength
	}
	cycleLen = int(clamp(float64(cycleLen), minCycleLength, maxCycleLength))

	periodLen := cfg.PeriodLength
	if periodLen == 0 {
		periodLen = defaultPeriodLength
	}
	periodLen = int(clamp(float64(periodLen), minPeriodLength, maxPeriodLength))

	anchor := dateOnly(*cfg.LastPeriodStart)
	target := dateOnly(date)

	diff := int(target.Sub(anchor).Hours() / 24)
	cycleDay := ((diff % cycleLen) + cycleLen) % cycleLen

	phase := classifyCycleDay(cycleDay, cycleLen, periodLen)
	return phase, cycleDay + 1, phaseImpact[phase]
}

func classifyCycleDay(cycleDay, cycleLen, periodLen int) Phase {
	switch {
	case cycleDay < periodLen:
		return PhasePeriod
	case cycleDay >= cycleLen-pmsWindowDays:
		return PhasePMS
	}

	// Ovulation sits near the cycle midpoint; one day of slack either side.
	mid := cycleLen / 2
	if cycleDay >= mid-1 && cycleDay <= mid+1 {
		return PhaseOvulation
	}
	if cycleDay < mid {
		return PhaseFollicular
	}
	return PhaseLuteal
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
