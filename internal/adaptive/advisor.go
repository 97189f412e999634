package adaptive

import "math"

const (
	// Accuracy band: above the high mark difficulty steps up, below the low
	// mark it steps down. The implicit target sits at 0.75.
	highAccuracy = 0.85
	lowAccuracy  = 0.65

	accuracyStep = 0.5
	timeStep     = 0.3

	// targetTimeRatio is the answer-speed sweet spot as a fraction of the
	// per-move time budget. Ratios more than 25% under the target count as
	// unusually fast, more than 25% over as unusually slow.
	targetTimeRatio = 0.6
	timeRatioBand   = 0.25

	// DefaultTimeBudget is the per-move time budget in seconds used to
	// normalize answer times.
	DefaultTimeBudget = 30.0

	// Trend comparison: mean accuracy of the 5 newest metrics vs the 5
	// before them, with a ±0.1 dead band.
	trendWindow    = 5
	trendThreshold = 0.1
)

// Trend classifies the short-window accuracy direction.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// Advisor recommends session difficulty from recent performance. It holds
// only tuning constants, never learner state; every method is a pure
// function over the supplied profile.
type Advisor struct {
	// TimeBudget is the per-move time budget in seconds; answer times are
	// normalized against it before the speed adjustment is applied.
	TimeBudget float64
}

// NewAdvisor returns an Advisor with the default time budget.
func NewAdvisor() Advisor {
	return Advisor{TimeBudget: DefaultTimeBudget}
}

// RecommendDifficulty picks the next difficulty for a learner, optionally
// scoped to a single opening. With adaptive mode disabled or no matching
// history, the learner's preferred difficulty comes back unchanged. The
// result lies in [MinDifficulty, MaxDifficulty], rounded to the nearest 0.5.
//
// Adjustments are deliberately small and damped by the sensitivity setting
// so difficulty never swings hard between sessions.
func (a Advisor) RecommendDifficulty(profile PlayerProfile, openingID string) (float64, error) {
	if err := profile.Settings.Validate(); err != nil {
		return 0, err
	}
	if !profile.Settings.Enabled {
		return profile.PreferredDifficulty, nil
	}

	metrics := a.filterMetrics(profile, openingID)
	if len(metrics) == 0 {
		return profile.PreferredDifficulty, nil
	}

	avgAccuracy, avgTimeRatio, currentDifficulty := a.summarize(metrics)

	adjustment := 0.0
	if avgAccuracy > highAccuracy {
		adjustment += accuracyStep
	} else if avgAccuracy < lowAccuracy {
		adjustment -= accuracyStep
	}

	// Fast-but-correct answers earn extra difficulty; slow answers ease off.
	if avgTimeRatio < targetTimeRatio*(1-timeRatioBand) {
		adjustment += timeStep
	} else if avgTimeRatio > targetTimeRatio*(1+timeRatioBand) {
		adjustment -= timeStep
	}

	adjustment *= profile.Settings.Sensitivity

	difficulty := clamp(currentDifficulty+adjustment,
		profile.Settings.MinDifficulty, profile.Settings.MaxDifficulty)
	return roundHalf(difficulty), nil
}

// Recommendation bundles a difficulty recommendation with the stats and
// reason shown to the learner.
type Recommendation struct {
	Recommended float64
	Reason      string
	Stats       RecommendationStats
}

// RecommendationStats summarizes the history behind a recommendation.
type RecommendationStats struct {
	AvgAccuracy       float64
	AvgTimePerMove    float64
	CurrentDifficulty float64
	Trend             Trend
	Samples           int
}

// Recommendation wraps RecommendDifficulty with a trend classification and
// a human-readable reason.
func (a Advisor) Recommendation(profile PlayerProfile) (Recommendation, error) {
	recommended, err := a.RecommendDifficulty(profile, "")
	if err != nil {
		return Recommendation{}, err
	}

	metrics := a.filterMetrics(profile, "")
	trend := classifyTrend(profile.RecentPerformance)

	rec := Recommendation{
		Recommended: recommended,
		Stats: RecommendationStats{
			Trend:   trend,
			Samples: len(metrics),
		},
	}
	if len(metrics) == 0 {
		rec.Reason = "no recent sessions; keeping your preferred difficulty"
		return rec, nil
	}

	avgAccuracy, _, currentDifficulty := a.summarize(metrics)
	rec.Stats.AvgAccuracy = avgAccuracy
	rec.Stats.CurrentDifficulty = currentDifficulty
	for _, m := range metrics {
		rec.Stats.AvgTimePerMove += m.AvgTimePerMove
	}
	rec.Stats.AvgTimePerMove /= float64(len(metrics))

	rec.Reason = reasonFor(avgAccuracy, trend)
	return rec, nil
}

// reasonFor selects the explanation string from the accuracy band and trend.
func reasonFor(avgAccuracy float64, trend Trend) string {
	switch {
	case avgAccuracy > highAccuracy && trend == TrendImproving:
		return "accuracy is high and still improving; stepping difficulty up"
	case avgAccuracy > highAccuracy:
		return "accuracy is consistently high; stepping difficulty up"
	case avgAccuracy < lowAccuracy && trend == TrendDeclining:
		return "accuracy is low and declining; easing difficulty down"
	case avgAccuracy < lowAccuracy:
		return "accuracy is below target; easing difficulty down"
	case trend == TrendImproving:
		return "performance is trending up; holding difficulty steady"
	case trend == TrendDeclining:
		return "performance is trending down; holding difficulty steady"
	default:
		return "performance is stable at the current difficulty"
	}
}

// classifyTrend compares the mean accuracy of the newest trendWindow metrics
// against the window before it. Fewer than two full windows is stable.
func classifyTrend(newestFirst []PerformanceMetric) Trend {
	if len(newestFirst) < 2*trendWindow {
		return TrendStable
	}
	recent := meanAccuracy(newestFirst[:trendWindow])
	prior := meanAccuracy(newestFirst[trendWindow : 2*trendWindow])
	switch {
	case recent-prior > trendThreshold:
		return TrendImproving
	case prior-recent > trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// filterMetrics returns the advice window, scoped to one opening when
// openingID is non-empty.
func (a Advisor) filterMetrics(profile PlayerProfile, openingID string) []PerformanceMetric {
	var metrics []PerformanceMetric
	for _, m := range profile.RecentPerformance {
		if openingID != "" && m.OpeningID != openingID {
			continue
		}
		metrics = append(metrics, m)
		if len(metrics) == AdviceWindow {
			break
		}
	}
	return metrics
}

// summarize computes the mean accuracy, mean normalized time ratio, and mean
// difficulty of the given metrics. metrics must be non-empty.
func (a Advisor) summarize(metrics []PerformanceMetric) (avgAccuracy, avgTimeRatio, avgDifficulty float64) {
	budget := a.TimeBudget
	if budget <= 0 {
		budget = DefaultTimeBudget
	}
	for _, m := range metrics {
		avgAccuracy += m.Accuracy
		avgTimeRatio += m.AvgTimePerMove / budget
		avgDifficulty += m.Difficulty
	}
	n := float64(len(metrics))
	return avgAccuracy / n, avgTimeRatio / n, avgDifficulty / n
}

func meanAccuracy(metrics []PerformanceMetric) float64 {
	sum := 0.0
	for _, m := range metrics {
		sum += m.Accuracy
	}
	return sum / float64(len(metrics))
}

// roundHalf rounds to the nearest 0.5.
func roundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}
