package engine

import "math"

const (
	// neutralScore seeds both batteries when no history exists.
	neutralScore = 50.0

	// mentalAlpha is the EMA smoothing factor for the Mental battery.
	mentalAlpha = 0.35

	// Per-battery tone thresholds.
	toneGreenFloor = 70.0
	toneRedCeiling = 45.0
)

// neutralSRI is the sleep recovery index produced by fully defaulted
// inputs (target sleep, mid quality, zero debt). Body scoring is centered
// on it so an unlogged day scores exactly neutral.
const neutralSRI = 0.8

// bodyRaw is the instantaneous physiological-capacity composite, built as
// deviations from neutral so fully defaulted inputs land exactly at 50.
// Sleep debt acts through the SRI term, which already carries the debt
// penalty. Weights were tuned to hold the severity thresholds below under
// the documented boundary scenarios.
func bodyRaw(ix indices, actBalance float64) float64 {
	dev := 0.6*(ix.sri-neutralSRI) -
		0.28*ix.csi +
		0.22*(ix.mif-1) +
		0.12*(actBalance-0.7)
	return clamp(neutralScore+130*dev, 0, 100)
}

// mentalRaw blends mood and stress into a 0-100 base, then applies
// caffeine and menstrual interference as multiplicative penalties so they
// can only pull the signal down.
func mentalRaw(rec DailyRecord, ix indices) float64 {
	base := 100 * (0.6*moodNorm(rec.Emotion) + 0.4*(1-stressNorm(rec.Bio)))
	raw := base * (0.65 + 0.35*ix.cif) * (0.75 + 0.25*ix.mif)
	return clamp(raw, 0, 100)
}

// scoreDay turns the day's indices into Body and Mental scores, updating
// the smoothing state. Body uses a short trailing blend (two parts today,
// one part yesterday); Mental is a true EMA.
func scoreDay(rec DailyRecord, ix indices, state *rollingState) (body, mental float64) {
	raw := bodyRaw(ix, activityBalance(rec.Bio))
	body = (2*raw + state.bodyPrev) / 3
	state.bodyPrev = body

	mental = mentalAlpha*mentalRaw(rec, ix) + (1-mentalAlpha)*state.mentalEMAPrev
	state.mentalEMAPrev = mental

	return body, mental
}

func toneFor(value float64) Tone {
	switch {
	case value >= toneGreenFloor:
		return ToneGreen
	case value < toneRedCeiling:
		return ToneRed
	default:
		return ToneOrange
	}
}

// classifySeverity applies the exact combined-vital threshold contract.
// vital is the Body/Mental midpoint on the 0-100 scale. All boundaries are
// inclusive as written.
func classifySeverity(vital float64, e EngineState) Severity {
	switch {
	case vital <= 45,
		e.SleepDebtHours >= 7,
		e.NightStreak >= 2 && (e.CSI >= 0.6 || e.SRI <= 0.55),
		e.CIF <= 0.7,
		e.SLF >= 0.75,
		e.MIF <= 0.75:
		return SeverityWarning
	case vital <= 60,
		e.SleepDebtHours >= 3,
		e.CSI >= 0.45,
		e.SRI <= 0.7,
		e.CIF <= 0.85,
		e.SLF >= 0.55,
		e.MIF <= 0.85:
		return SeverityCaution
	default:
		return SeverityStable
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
