package adaptive

import "math"

const (
	// skillMidpoint and skillScale parameterize the logistic expected-score
	// curve: a learner at the midpoint is expected to score 0.5.
	skillMidpoint = 50.0
	skillScale    = 20.0

	// kFactor is the ELO-style update step.
	kFactor = 32.0

	skillFloor = 0.0
	skillCeil  = 100.0
)

// UpdateSkill folds one session's accuracy into the learner's scalar skill
// estimate. sessionAccuracy must be in [0, 1]; it comes from internally
// computed correct/total ratios, so the range is a precondition rather than
// a checked error. Pure and deterministic; monotonic in accuracy.
func UpdateSkill(currentSkill, sessionAccuracy float64) float64 {
	expected := 1.0 / (1.0 + math.Pow(10, (currentSkill-skillMidpoint)/skillScale))
	skill := currentSkill + kFactor*(sessionAccuracy-expected)
	return clamp(skill, skillFloor, skillCeil)
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
