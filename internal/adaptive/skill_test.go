package adaptive

import (
	"math"
	"testing"
)

func TestUpdateSkill_MidpointExpectsHalf(t *testing.T) {
	// At the midpoint the expected score is 0.5, so accuracy 0.5 is a no-op.
	got := UpdateSkill(50, 0.5)
	if math.Abs(got-50) > 1e-9 {
		t.Errorf("UpdateSkill(50, 0.5) = %v, want 50", got)
	}

	// A perfect session from the midpoint gains half the K-factor.
	got = UpdateSkill(50, 1.0)
	if math.Abs(got-66) > 1e-9 {
		t.Errorf("UpdateSkill(50, 1.0) = %v, want 66", got)
	}
}

func TestUpdateSkill_MonotonicInAccuracy(t *testing.T) {
	for _, skill := range []float64{0, 25, 50, 75, 100} {
		prev := -1.0
		for acc := 0.0; acc <= 1.0; acc += 0.1 {
			got := UpdateSkill(skill, acc)
			if got < prev {
				t.Errorf("skill %v: UpdateSkill(%v) = %v < previous %v", skill, acc, got, prev)
			}
			prev = got
		}
	}
}

func TestUpdateSkill_Clamped(t *testing.T) {
	if got := UpdateSkill(99, 1.0); got > 100 {
		t.Errorf("UpdateSkill(99, 1.0) = %v, want <= 100", got)
	}
	if got := UpdateSkill(1, 0.0); got < 0 {
		t.Errorf("UpdateSkill(1, 0.0) = %v, want >= 0", got)
	}
}
