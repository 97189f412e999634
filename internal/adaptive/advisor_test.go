package adaptive

import (
	"errors"
	"testing"
)

// profileWith builds a profile whose advice window averages the given
// accuracy at difficulty 3 with a neutral time ratio (0.6 of the budget).
func profileWith(accuracy float64, count int) PlayerProfile {
	profile := NewProfile("user-1")
	for i := 0; i < count; i++ {
		profile = profile.RecordPerformance(PerformanceMetric{
			OpeningID:      "ruy-lopez",
			Accuracy:       accuracy,
			AvgTimePerMove: targetTimeRatio * DefaultTimeBudget,
			Difficulty:     3,
		})
	}
	return profile
}

func TestRecommendDifficulty_DisabledReturnsPreferred(t *testing.T) {
	profile := profileWith(0.95, 6)
	profile.PreferredDifficulty = 2.5
	profile.Settings.Enabled = false

	got, err := NewAdvisor().RecommendDifficulty(profile, "")
	if err != nil {
		t.Fatalf("RecommendDifficulty: %v", err)
	}
	if got != 2.5 {
		t.Errorf("got %v, want preferred 2.5", got)
	}
}

func TestRecommendDifficulty_NoHistoryReturnsPreferred(t *testing.T) {
	profile := NewProfile("user-1")
	profile.PreferredDifficulty = 4

	got, err := NewAdvisor().RecommendDifficulty(profile, "")
	if err != nil {
		t.Fatalf("RecommendDifficulty: %v", err)
	}
	if got != 4 {
		t.Errorf("got %v, want preferred 4", got)
	}
}

func TestRecommendDifficulty_HighAccuracyStepsUp(t *testing.T) {
	// Accuracy 0.9 at difficulty 3 with a neutral time ratio climbs by the
	// 0.5 accuracy step.
	got, err := NewAdvisor().RecommendDifficulty(profileWith(0.9, 6), "")
	if err != nil {
		t.Fatalf("RecommendDifficulty: %v", err)
	}
	if got != 3.5 {
		t.Errorf("got %v, want 3.5", got)
	}
}

func TestRecommendDifficulty_LowAccuracyStepsDown(t *testing.T) {
	got, err := NewAdvisor().RecommendDifficulty(profileWith(0.5, 6), "")
	if err != nil {
		t.Fatalf("RecommendDifficulty: %v", err)
	}
	if got != 2.5 {
		t.Errorf("got %v, want 2.5", got)
	}
}

func TestRecommendDifficulty_FastAnswersEarnBonus(t *testing.T) {
	profile := NewProfile("user-1")
	for i := 0; i < 4; i++ {
		profile = profile.RecordPerformance(PerformanceMetric{
			OpeningID:      "caro-kann",
			Accuracy:       0.9,
			AvgTimePerMove: 5, // well under the fast threshold
			Difficulty:     3,
		})
	}

	got, err := NewAdvisor().RecommendDifficulty(profile, "")
	if err != nil {
		t.Fatalf("RecommendDifficulty: %v", err)
	}
	// +0.5 accuracy +0.3 speed = 3.8, rounded to nearest half.
	if got != 4.0 {
		t.Errorf("got %v, want 4.0", got)
	}
}

func TestRecommendDifficulty_SensitivityDamps(t *testing.T) {
	profile := profileWith(0.9, 6)
	profile.Settings.Sensitivity = 0.4 // raw +0.5 becomes +0.2, rounds away

	got, err := NewAdvisor().RecommendDifficulty(profile, "")
	if err != nil {
		t.Fatalf("RecommendDifficulty: %v", err)
	}
	if got != 3.0 {
		t.Errorf("got %v, want 3.0", got)
	}
}

func TestRecommendDifficulty_ClampedToBounds(t *testing.T) {
	profile := profileWith(0.95, 6)
	profile.Settings.MaxDifficulty = 3

	got, err := NewAdvisor().RecommendDifficulty(profile, "")
	if err != nil {
		t.Fatalf("RecommendDifficulty: %v", err)
	}
	if got != 3 {
		t.Errorf("got %v, want clamped 3", got)
	}
}

func TestRecommendDifficulty_ScopedToOpening(t *testing.T) {
	profile := NewProfile("user-1")
	for i := 0; i < 4; i++ {
		profile = profile.RecordPerformance(PerformanceMetric{
			OpeningID: "english-opening", Accuracy: 0.95,
			AvgTimePerMove: targetTimeRatio * DefaultTimeBudget, Difficulty: 4,
		})
		profile = profile.RecordPerformance(PerformanceMetric{
			OpeningID: "dutch-defense", Accuracy: 0.3,
			AvgTimePerMove: targetTimeRatio * DefaultTimeBudget, Difficulty: 2,
		})
	}

	advisor := NewAdvisor()
	up, err := advisor.RecommendDifficulty(profile, "english-opening")
	if err != nil {
		t.Fatalf("RecommendDifficulty: %v", err)
	}
	down, err := advisor.RecommendDifficulty(profile, "dutch-defense")
	if err != nil {
		t.Fatalf("RecommendDifficulty: %v", err)
	}
	if up != 4.5 {
		t.Errorf("english-opening: got %v, want 4.5", up)
	}
	if down != 1.5 {
		t.Errorf("dutch-defense: got %v, want 1.5", down)
	}
}

func TestRecommendDifficulty_InvalidSettings(t *testing.T) {
	profile := profileWith(0.8, 3)
	profile.Settings.MinDifficulty = 5
	profile.Settings.MaxDifficulty = 1

	_, err := NewAdvisor().RecommendDifficulty(profile, "")
	if !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("err = %v, want ErrInvalidSettings", err)
	}
}

func TestClassifyTrend(t *testing.T) {
	build := func(recent, prior float64) []PerformanceMetric {
		var metrics []PerformanceMetric
		for i := 0; i < trendWindow; i++ {
			metrics = append(metrics, PerformanceMetric{Accuracy: recent})
		}
		for i := 0; i < trendWindow; i++ {
			metrics = append(metrics, PerformanceMetric{Accuracy: prior})
		}
		return metrics
	}

	tests := []struct {
		name    string
		metrics []PerformanceMetric
		want    Trend
	}{
		{"improving", build(0.9, 0.6), TrendImproving},
		{"declining", build(0.5, 0.8), TrendDeclining},
		{"within dead band", build(0.75, 0.7), TrendStable},
		{"too little history", build(0.9, 0.6)[:7], TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyTrend(tt.metrics); got != tt.want {
				t.Errorf("classifyTrend() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecommendation_ReasonSelection(t *testing.T) {
	tests := []struct {
		name       string
		avgAcc     float64
		trend      Trend
		wantReason string
	}{
		{"high improving", 0.9, TrendImproving, "accuracy is high and still improving; stepping difficulty up"},
		{"high stable", 0.9, TrendStable, "accuracy is consistently high; stepping difficulty up"},
		{"low declining", 0.5, TrendDeclining, "accuracy is low and declining; easing difficulty down"},
		{"low stable", 0.5, TrendStable, "accuracy is below target; easing difficulty down"},
		{"mid improving", 0.75, TrendImproving, "performance is trending up; holding difficulty steady"},
		{"mid declining", 0.75, TrendDeclining, "performance is trending down; holding difficulty steady"},
		{"mid stable", 0.75, TrendStable, "performance is stable at the current difficulty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reasonFor(tt.avgAcc, tt.trend); got != tt.wantReason {
				t.Errorf("reasonFor() = %q, want %q", got, tt.wantReason)
			}
		})
	}
}

func TestRecommendation_StatsPopulated(t *testing.T) {
	profile := profileWith(0.9, 6)

	rec, err := NewAdvisor().Recommendation(profile)
	if err != nil {
		t.Fatalf("Recommendation: %v", err)
	}
	if rec.Recommended != 3.5 {
		t.Errorf("Recommended = %v, want 3.5", rec.Recommended)
	}
	if rec.Stats.Samples != 6 {
		t.Errorf("Samples = %d, want 6", rec.Stats.Samples)
	}
	if diff := rec.Stats.AvgAccuracy - 0.9; diff < -1e-9 || diff > 1e-9 {
		t.Errorf("AvgAccuracy = %v, want 0.9", rec.Stats.AvgAccuracy)
	}
	if rec.Stats.CurrentDifficulty != 3 {
		t.Errorf("CurrentDifficulty = %v, want 3", rec.Stats.CurrentDifficulty)
	}
	if rec.Reason == "" {
		t.Error("Reason is empty")
	}
}
