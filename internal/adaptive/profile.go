package adaptive

import (
	"errors"
	"sort"
	"time"
)

// ErrInvalidSettings is returned when adaptive settings are inconsistent.
var ErrInvalidSettings = errors.New("adaptive: invalid settings")

const (
	// AdviceWindow is how many recent metrics feed difficulty advice.
	AdviceWindow = 10

	// RetainedHistory is how many metrics are kept per learner before the
	// oldest are dropped.
	RetainedHistory = 3 * AdviceWindow

	// Strength/weakness derivation thresholds.
	strengthAccuracy = 0.8
	weaknessAccuracy = 0.6
	minSamples       = 3
	maxListed        = 5
)

// PerformanceMetric is one per-opening performance sample from a completed
// training session.
type PerformanceMetric struct {
	Timestamp      time.Time `json:"timestamp"`
	OpeningID      string    `json:"opening_id"`
	Accuracy       float64   `json:"accuracy"`          // 0-1
	AvgTimePerMove float64   `json:"avg_time_per_move"` // seconds
	Difficulty     float64   `json:"difficulty"`        // 1-5
}

// AdaptiveSettings controls how difficulty advice is computed.
type AdaptiveSettings struct {
	Enabled       bool    `json:"enabled"`
	Sensitivity   float64 `json:"sensitivity"` // (0, 1]
	MinDifficulty float64 `json:"min_difficulty"`
	MaxDifficulty float64 `json:"max_difficulty"`
}

// DefaultSettings returns the settings used for a fresh profile.
func DefaultSettings() AdaptiveSettings {
	return AdaptiveSettings{
		Enabled:       true,
		Sensitivity:   1.0,
		MinDifficulty: 1,
		MaxDifficulty: 5,
	}
}

// Validate checks the settings for internal consistency.
func (s AdaptiveSettings) Validate() error {
	if s.Sensitivity <= 0 || s.Sensitivity > 1 {
		return errors.Join(ErrInvalidSettings, errors.New("sensitivity must be in (0, 1]"))
	}
	if s.MinDifficulty > s.MaxDifficulty {
		return errors.Join(ErrInvalidSettings, errors.New("min difficulty exceeds max"))
	}
	return nil
}

// PlayerProfile is the per-learner state read and rewritten by the adaptive
// components. It owns its RecentPerformance list and the derived
// strengths/weaknesses, which are recomputed wholesale on every update.
type PlayerProfile struct {
	UserID              string              `json:"user_id"`
	SkillLevel          float64             `json:"skill_level"` // 0-100
	RecentPerformance   []PerformanceMetric `json:"recent_performance"` // newest first
	Strengths           []string            `json:"strengths"`
	Weaknesses          []string            `json:"weaknesses"`
	PreferredDifficulty float64             `json:"preferred_difficulty"` // 1-5
	Settings            AdaptiveSettings    `json:"settings"`
}

// NewProfile returns a fresh profile at the skill midpoint.
func NewProfile(userID string) PlayerProfile {
	return PlayerProfile{
		UserID:              userID,
		SkillLevel:          50,
		PreferredDifficulty: 3,
		Settings:            DefaultSettings(),
	}
}

// RecordPerformance prepends a metric, trims the retained history, and
// rederives strengths and weaknesses. Returns the updated profile; the
// receiver value is not mutated beyond its own copy.
func (p PlayerProfile) RecordPerformance(metric PerformanceMetric) PlayerProfile {
	recent := make([]PerformanceMetric, 0, len(p.RecentPerformance)+1)
	recent = append(recent, metric)
	recent = append(recent, p.RecentPerformance...)
	if len(recent) > RetainedHistory {
		recent = recent[:RetainedHistory]
	}
	p.RecentPerformance = recent
	p.Strengths, p.Weaknesses = deriveStrengths(recent)
	return p
}

// deriveStrengths groups metrics by opening and flags openings with at least
// minSamples samples whose mean accuracy clears the strength threshold or
// falls below the weakness threshold. Each list is capped at maxListed,
// strongest/weakest first.
func deriveStrengths(metrics []PerformanceMetric) (strengths, weaknesses []string) {
	type agg struct {
		id    string
		sum   float64
		count int
	}
	byOpening := make(map[string]*agg)
	for _, m := range metrics {
		a := byOpening[m.OpeningID]
		if a == nil {
			a = &agg{id: m.OpeningID}
			byOpening[m.OpeningID] = a
		}
		a.sum += m.Accuracy
		a.count++
	}

	var strong, weak []agg
	for _, a := range byOpening {
		if a.count < minSamples {
			continue
		}
		mean := a.sum / float64(a.count)
		switch {
		case mean > strengthAccuracy:
			strong = append(strong, *a)
		case mean < weaknessAccuracy:
			weak = append(weak, *a)
		}
	}

	sort.Slice(strong, func(i, j int) bool {
		mi, mj := strong[i].sum/float64(strong[i].count), strong[j].sum/float64(strong[j].count)
		if mi != mj {
			return mi > mj
		}
		return strong[i].id < strong[j].id
	})
	sort.Slice(weak, func(i, j int) bool {
		mi, mj := weak[i].sum/float64(weak[i].count), weak[j].sum/float64(weak[j].count)
		if mi != mj {
			return mi < mj
		}
		return weak[i].id < weak[j].id
	})

	for i := 0; i < len(strong) && i < maxListed; i++ {
		strengths = append(strengths, strong[i].id)
	}
	for i := 0; i < len(weak) && i < maxListed; i++ {
		weaknesses = append(weaknesses, weak[i].id)
	}
	return strengths, weaknesses
}
