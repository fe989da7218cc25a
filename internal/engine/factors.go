package engine

import "sort"

// Factor identifies a depletion signal category.
type Factor string

const (
	FactorSleep     Factor = "sleep"
	FactorShift     Factor = "shift"
	FactorCaffeine  Factor = "caffeine"
	FactorMenstrual Factor = "menstrual"
	FactorStress    Factor = "stress"
	FactorActivity  Factor = "activity"
	FactorMood      Factor = "mood"
)

// factorPriority is the fixed tie-break order: when two factors explain
// the same share, the earlier one ranks first.
var factorPriority = []Factor{
	FactorSleep, FactorShift, FactorCaffeine, FactorMenstrual,
	FactorStress, FactorActivity, FactorMood,
}

// Importance coefficients weighting each factor's deviation from neutral.
var factorWeight = map[Factor]float64{
	FactorSleep:     0.30,
	FactorShift:     0.22,
	FactorCaffeine:  0.16,
	FactorMenstrual: 0.12,
	FactorStress:    0.08,
	FactorActivity:  0.07,
	FactorMood:      0.05,
}

// FactorShare is one factor's normalized share of total depletion.
type FactorShare struct {
	Factor  Factor  `json:"factor"`
	Percent float64 `json:"percent"` // 0-100, one decimal
}

// TopFactors ranks which signals explain the largest share of depletion
// across the given days and returns the top n, sorted descending by
// percentage. Factors with zero contribution are omitted, so fewer than n
// entries may come back. Percentages sum to at most 100.
func TopFactors(vitals []DailyVital, n int) []FactorShare {
	if len(vitals) == 0 || n <= 0 {
		return nil
	}

	depletion := make(map[Factor]float64, len(factorWeight))
	for _, v := range vitals {
		depletion[FactorSleep] += (1 - v.Engine.SRI) * factorWeight[FactorSleep]
		depletion[FactorShift] += v.Engine.CSI * factorWeight[FactorShift]
		depletion[FactorCaffeine] += (1 - v.Engine.CIF) * factorWeight[FactorCaffeine]
		depletion[FactorMenstrual] += (1 - v.Engine.MIF) * factorWeight[FactorMenstrual]
		depletion[FactorStress] += stressNorm(v.Inputs) * factorWeight[FactorStress]
		depletion[FactorActivity] += (1 - activityBalance(v.Inputs)) * factorWeight[FactorActivity]
		if v.Emotion != nil {
			depletion[FactorMood] += (1 - moodNorm(*v.Emotion)) * factorWeight[FactorMood]
		} else {
			depletion[FactorMood] += (1 - defaultMoodNorm) * factorWeight[FactorMood]
		}
	}

	total := 0.0
	for _, d := range depletion {
		total += d
	}
	if total <= 0 {
		return nil
	}

	shares := make([]FactorShare, 0, len(factorPriority))
	for _, f := range factorPriority {
		if depletion[f] <= 0 {
			continue
		}
		shares = append(shares, FactorShare{
			Factor:  f,
			Percent: round1(depletion[f] / total * 100),
		})
	}

	// Stable sort keeps the priority order for equal percentages.
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Percent > shares[j].Percent
	})

	if len(shares) > n {
		shares = shares[:n]
	}
	return shares
}

// PersonalizationAccuracy reports how trustworthy personalized output is
// for the window, as a 0-100 percentage driven by the share of days with
// reliable input.
func PersonalizationAccuracy(vitals []DailyVital) float64 {
	if len(vitals) == 0 {
		return 0
	}
	reliable := 0
	for _, v := range vitals {
		if v.Engine.InputReliability >= UsableReliabilityFloor {
			reliable++
		}
	}
	return round1(float64(reliable) / float64(len(vitals)) * 100)
}
