package srs

// NextEase applies the SM-2 ease update for a review with the given numeric
// score (0-5) and clamps the result to [MinEase, MaxEase]. The clamp runs on
// every call, so the ease factor cannot drift out of bounds under repeated
// extreme inputs. Monotonic in score: a higher score never yields a lower
// ease than a lower score at the same oldEase.
func NextEase(oldEase float64, score int) float64 {
	q := float64(score)
	ease := oldEase + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	return clampEase(ease)
}

func clampEase(ease float64) float64 {
	if ease < MinEase {
		return MinEase
	}
	if ease > MaxEase {
		return MaxEase
	}
	return ease
}
