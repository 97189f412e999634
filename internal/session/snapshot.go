package session

import (
	"context"
	"fmt"
	"time"

	"github.com/nikostojak/repertoire/internal/adaptive"
	"github.com/nikostojak/repertoire/internal/srs"
	"github.com/nikostojak/repertoire/internal/store"
)

// snapshotVersion tags the persisted state layout.
const snapshotVersion = 1

// LoadState restores the learner state from the latest snapshot. A missing
// snapshot yields a fresh profile for userID with no reviews.
func LoadState(ctx context.Context, snapshots store.SnapshotRepo, userID string) (State, error) {
	snap, err := snapshots.Latest(ctx)
	if err != nil {
		return State{}, fmt.Errorf("load latest snapshot: %w", err)
	}
	if snap == nil || snap.Data.Profile == nil {
		return State{
			Profile: adaptive.NewProfile(userID),
			Reviews: map[string]srs.ReviewItem{},
		}, nil
	}
	return stateFromSnapshot(snap.Data)
}

// BuildSnapshotData converts in-memory learner state to its persisted form.
func BuildSnapshotData(state State) store.SnapshotData {
	p := state.Profile
	data := store.SnapshotData{
		Version: snapshotVersion,
		Profile: &store.ProfileData{
			UserID:              p.UserID,
			SkillLevel:          p.SkillLevel,
			PreferredDifficulty: p.PreferredDifficulty,
			Strengths:           p.Strengths,
			Weaknesses:          p.Weaknesses,
			AdaptiveEnabled:     p.Settings.Enabled,
			Sensitivity:         p.Settings.Sensitivity,
			MinDifficulty:       p.Settings.MinDifficulty,
			MaxDifficulty:       p.Settings.MaxDifficulty,
		},
		Reviews: make(map[string]*store.ReviewItemData, len(state.Reviews)),
	}
	for _, m := range p.RecentPerformance {
		data.Profile.RecentPerformance = append(data.Profile.RecentPerformance, &store.MetricData{
			Timestamp:      m.Timestamp.Format(time.RFC3339),
			OpeningID:      m.OpeningID,
			Accuracy:       m.Accuracy,
			AvgTimePerMove: m.AvgTimePerMove,
			Difficulty:     m.Difficulty,
		})
	}
	for id, item := range state.Reviews {
		data.Reviews[id] = &store.ReviewItemData{
			UserID:       item.UserID,
			OpeningID:    item.OpeningID,
			LastSeen:     item.LastSeen.Format(time.RFC3339),
			NextReview:   item.NextReview.Format(time.RFC3339),
			IntervalDays: item.IntervalDays,
			EaseFactor:   item.EaseFactor,
			Repetitions:  item.Repetitions,
			Lapses:       item.Lapses,
		}
	}
	return data
}

func stateFromSnapshot(data store.SnapshotData) (State, error) {
	pd := data.Profile
	profile := adaptive.PlayerProfile{
		UserID:              pd.UserID,
		SkillLevel:          pd.SkillLevel,
		PreferredDifficulty: pd.PreferredDifficulty,
		Strengths:           pd.Strengths,
		Weaknesses:          pd.Weaknesses,
		Settings: adaptive.AdaptiveSettings{
			Enabled:       pd.AdaptiveEnabled,
			Sensitivity:   pd.Sensitivity,
			MinDifficulty: pd.MinDifficulty,
			MaxDifficulty: pd.MaxDifficulty,
		},
	}
	for _, m := range pd.RecentPerformance {
		ts, err := time.Parse(time.RFC3339, m.Timestamp)
		if err != nil {
			return State{}, fmt.Errorf("parse metric timestamp %q: %w", m.Timestamp, err)
		}
		profile.RecentPerformance = append(profile.RecentPerformance, adaptive.PerformanceMetric{
			Timestamp:      ts,
			OpeningID:      m.OpeningID,
			Accuracy:       m.Accuracy,
			AvgTimePerMove: m.AvgTimePerMove,
			Difficulty:     m.Difficulty,
		})
	}

	reviews := make(map[string]srs.ReviewItem, len(data.Reviews))
	for id, rd := range data.Reviews {
		lastSeen, err := time.Parse(time.RFC3339, rd.LastSeen)
		if err != nil {
			return State{}, fmt.Errorf("parse last seen %q: %w", rd.LastSeen, err)
		}
		nextReview, err := time.Parse(time.RFC3339, rd.NextReview)
		if err != nil {
			return State{}, fmt.Errorf("parse next review %q: %w", rd.NextReview, err)
		}
		reviews[id] = srs.ReviewItem{
			UserID:       rd.UserID,
			OpeningID:    rd.OpeningID,
			LastSeen:     lastSeen,
			NextReview:   nextReview,
			IntervalDays: rd.IntervalDays,
			EaseFactor:   rd.EaseFactor,
			Repetitions:  rd.Repetitions,
			Lapses:       rd.Lapses,
		}
	}
	return State{Profile: profile, Reviews: reviews}, nil
}
