package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SnapshotData captures the full learner state at a point in time.
type SnapshotData struct {
	Version int                        `json:"version"`
	Profile *ProfileData               `json:"profile,omitempty"`
	Reviews map[string]*ReviewItemData `json:"reviews,omitempty"`
}

// ProfileData is the persisted form of the learner profile.
type ProfileData struct {
	UserID              string        `json:"user_id"`
	SkillLevel          float64       `json:"skill_level"`
	PreferredDifficulty float64       `json:"preferred_difficulty"`
	Strengths           []string      `json:"strengths,omitempty"`
	Weaknesses          []string      `json:"weaknesses,omitempty"`
	AdaptiveEnabled     bool          `json:"adaptive_enabled"`
	Sensitivity         float64       `json:"sensitivity"`
	MinDifficulty       float64       `json:"min_difficulty"`
	MaxDifficulty       float64       `json:"max_difficulty"`
	RecentPerformance   []*MetricData `json:"recent_performance,omitempty"`
}

// MetricData is the persisted form of one performance sample.
type MetricData struct {
	Timestamp      string  `json:"timestamp"` // RFC3339
	OpeningID      string  `json:"opening_id"`
	Accuracy       float64 `json:"accuracy"`
	AvgTimePerMove float64 `json:"avg_time_per_move"`
	Difficulty     float64 `json:"difficulty"`
}

// ReviewItemData is the persisted form of one spaced repetition item.
type ReviewItemData struct {
	UserID       string  `json:"user_id"`
	OpeningID    string  `json:"opening_id"`
	LastSeen     string  `json:"last_seen"`   // RFC3339
	NextReview   string  `json:"next_review"` // RFC3339
	IntervalDays int     `json:"interval_days"`
	EaseFactor   float64 `json:"ease_factor"`
	Repetitions  int     `json:"repetitions"`
	Lapses       int     `json:"lapses"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID       string
	UserID          string
	Action          string // "start" or "end"
	Difficulty      float64
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// AttemptEventData captures one answered question.
type AttemptEventData struct {
	SessionID   string
	UserID      string
	OpeningID   string
	Prompt      string
	CorrectMove string
	LearnerMove string
	Correct     bool
	TimeMs      int
	Difficulty  float64
	Format      string
}

// SessionSummaryRecord is a compact per-session row for stats output.
type SessionSummaryRecord struct {
	SessionID       string
	Timestamp       time.Time
	Difficulty      float64
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendSessionEvent records a session start/end event.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAttemptEvent records an answered question.
	AppendAttemptEvent(ctx context.Context, data AttemptEventData) error

	// OpeningAccuracy returns the historical accuracy and attempt count for
	// one opening.
	OpeningAccuracy(ctx context.Context, openingID string) (float64, int, error)

	// LatestAttemptTime returns the timestamp of the most recent attempt on
	// an opening, or the zero time if none exist.
	LatestAttemptTime(ctx context.Context, openingID string) (time.Time, error)

	// SessionSummaries returns completed-session rows, newest first.
	SessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)
}
