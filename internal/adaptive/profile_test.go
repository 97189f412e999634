package adaptive

import (
	"fmt"
	"testing"
	"time"
)

func metricAt(openingID string, accuracy float64, age int) PerformanceMetric {
	return PerformanceMetric{
		Timestamp:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Add(-time.Duration(age) * time.Hour),
		OpeningID:      openingID,
		Accuracy:       accuracy,
		AvgTimePerMove: 18,
		Difficulty:     3,
	}
}

func TestRecordPerformance_NewestFirstAndCapped(t *testing.T) {
	profile := NewProfile("user-1")

	for i := 0; i < RetainedHistory+5; i++ {
		m := metricAt(fmt.Sprintf("line-%d", i), 0.7, 0)
		profile = profile.RecordPerformance(m)
	}

	if len(profile.RecentPerformance) != RetainedHistory {
		t.Fatalf("len(RecentPerformance) = %d, want %d", len(profile.RecentPerformance), RetainedHistory)
	}
	// Most recent insertion sits at the head.
	if got := profile.RecentPerformance[0].OpeningID; got != fmt.Sprintf("line-%d", RetainedHistory+4) {
		t.Errorf("head = %s, want the newest metric", got)
	}
}

func TestRecordPerformance_DerivesStrengthsAndWeaknesses(t *testing.T) {
	profile := NewProfile("user-1")

	// Three high-accuracy samples for one opening, three low for another,
	// and only two low samples for a third (below the sample floor).
	for i := 0; i < 3; i++ {
		profile = profile.RecordPerformance(metricAt("italian-game", 0.95, i))
		profile = profile.RecordPerformance(metricAt("kings-gambit", 0.40, i))
	}
	profile = profile.RecordPerformance(metricAt("pirc-defense", 0.30, 0))
	profile = profile.RecordPerformance(metricAt("pirc-defense", 0.30, 1))

	if len(profile.Strengths) != 1 || profile.Strengths[0] != "italian-game" {
		t.Errorf("Strengths = %v, want [italian-game]", profile.Strengths)
	}
	if len(profile.Weaknesses) != 1 || profile.Weaknesses[0] != "kings-gambit" {
		t.Errorf("Weaknesses = %v, want [kings-gambit]", profile.Weaknesses)
	}
}

func TestRecordPerformance_ListsCappedAtFive(t *testing.T) {
	profile := NewProfile("user-1")
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("strong-%d", i)
		for j := 0; j < 3; j++ {
			profile = profile.RecordPerformance(metricAt(id, 0.9+float64(i)*0.01, j))
		}
	}
	if len(profile.Strengths) != 5 {
		t.Errorf("len(Strengths) = %d, want 5", len(profile.Strengths))
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings AdaptiveSettings
		wantErr  bool
	}{
		{"defaults", DefaultSettings(), false},
		{"zero sensitivity", AdaptiveSettings{Sensitivity: 0, MinDifficulty: 1, MaxDifficulty: 5}, true},
		{"sensitivity above one", AdaptiveSettings{Sensitivity: 1.5, MinDifficulty: 1, MaxDifficulty: 5}, true},
		{"min above max", AdaptiveSettings{Sensitivity: 0.5, MinDifficulty: 4, MaxDifficulty: 2}, true},
		{"narrow band", AdaptiveSettings{Sensitivity: 0.25, MinDifficulty: 2, MaxDifficulty: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
