package session

import (
	"context"
	"fmt"
	"time"

	"github.com/nikostojak/repertoire/internal/adaptive"
	"github.com/nikostojak/repertoire/internal/srs"
	"github.com/nikostojak/repertoire/internal/store"
)

// Attempt is one answered question, as reported by the trainer UI.
type Attempt struct {
	OpeningID   string
	Prompt      string
	CorrectMove string
	LearnerMove string
	Correct     bool
	TimeMs      int
	Format      string
}

// State is the learner state the recorder reads and rewrites: the adaptive
// profile plus all spaced repetition items keyed by opening id.
type State struct {
	Profile adaptive.PlayerProfile
	Reviews map[string]srs.ReviewItem
}

// Recorder persists session results: it folds attempts into the learner
// state, appends the event log, and saves a fresh snapshot.
type Recorder struct {
	Events    store.EventRepo
	Snapshots store.SnapshotRepo

	// KeepSnapshots bounds snapshot history; older rows are pruned after
	// each save.
	KeepSnapshots int
}

// NewRecorder wires a recorder to the given repositories.
func NewRecorder(events store.EventRepo, snapshots store.SnapshotRepo) *Recorder {
	return &Recorder{Events: events, Snapshots: snapshots, KeepSnapshots: 20}
}

// Start logs the beginning of a session.
func (r *Recorder) Start(ctx context.Context, plan *Plan, userID string) error {
	err := r.Events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:  plan.SessionID,
		UserID:     userID,
		Action:     "start",
		Difficulty: plan.Difficulty,
	})
	if err != nil {
		return fmt.Errorf("record session start: %w", err)
	}
	return nil
}

// Complete applies a finished session to the learner state and persists
// everything. It returns the updated state and a per-opening summary.
//
// Per opening: attempts are aggregated into an accuracy and average answer
// time, the spaced repetition item is advanced (created first if the opening
// was never reviewed), and a performance metric is recorded on the profile.
// The scalar skill estimate is updated once from the whole-session accuracy.
func (r *Recorder) Complete(ctx context.Context, plan *Plan, state State, attempts []Attempt, startedAt, now time.Time) (State, *Summary, error) {
	if len(attempts) == 0 {
		return state, nil, fmt.Errorf("session %s: no attempts to record", plan.SessionID)
	}

	reviews := make(map[string]srs.ReviewItem, len(state.Reviews))
	for id, item := range state.Reviews {
		reviews[id] = item
	}

	summary := &Summary{
		SessionID:  plan.SessionID,
		Difficulty: plan.Difficulty,
		StartedAt:  startedAt,
		FinishedAt: now,
	}

	profile := state.Profile
	correct := 0
	for _, id := range attemptOrder(attempts) {
		group := groupFor(attempts, id)
		result := summarizeAttempts(id, group)
		correct += result.Correct

		quality := qualityForAccuracy(result.Accuracy)
		item, ok := reviews[id]
		if !ok {
			item = srs.NewReviewItem(profile.UserID, id, now)
		}
		item, err := srs.CalculateNextReview(item, quality, now)
		if err != nil {
			return state, nil, fmt.Errorf("advance review for %s: %w", id, err)
		}
		reviews[id] = item
		result.NextReview = item.NextReview
		result.IntervalDays = item.IntervalDays

		profile = profile.RecordPerformance(adaptive.PerformanceMetric{
			Timestamp:      now,
			OpeningID:      id,
			Accuracy:       result.Accuracy,
			AvgTimePerMove: result.AvgTimeSecs,
			Difficulty:     plan.Difficulty,
		})
		summary.Openings = append(summary.Openings, result)
	}

	sessionAccuracy := float64(correct) / float64(len(attempts))
	profile.SkillLevel = adaptive.UpdateSkill(profile.SkillLevel, sessionAccuracy)

	summary.Questions = len(attempts)
	summary.Correct = correct
	summary.Accuracy = sessionAccuracy
	summary.SkillBefore = state.Profile.SkillLevel
	summary.SkillAfter = profile.SkillLevel

	next := State{Profile: profile, Reviews: reviews}
	if err := r.persist(ctx, plan, next, attempts, summary, now); err != nil {
		return state, nil, err
	}
	return next, summary, nil
}

func (r *Recorder) persist(ctx context.Context, plan *Plan, state State, attempts []Attempt, summary *Summary, now time.Time) error {
	for _, a := range attempts {
		err := r.Events.AppendAttemptEvent(ctx, store.AttemptEventData{
			SessionID:   plan.SessionID,
			UserID:      state.Profile.UserID,
			OpeningID:   a.OpeningID,
			Prompt:      a.Prompt,
			CorrectMove: a.CorrectMove,
			LearnerMove: a.LearnerMove,
			Correct:     a.Correct,
			TimeMs:      a.TimeMs,
			Difficulty:  plan.Difficulty,
			Format:      a.Format,
		})
		if err != nil {
			return fmt.Errorf("record attempt: %w", err)
		}
	}

	err := r.Events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:       plan.SessionID,
		UserID:          state.Profile.UserID,
		Action:          "end",
		Difficulty:      plan.Difficulty,
		QuestionsServed: summary.Questions,
		CorrectAnswers:  summary.Correct,
		DurationSecs:    int(summary.FinishedAt.Sub(summary.StartedAt).Seconds()),
	})
	if err != nil {
		return fmt.Errorf("record session end: %w", err)
	}

	snap := &store.Snapshot{Timestamp: now, Data: BuildSnapshotData(state)}
	if err := r.Snapshots.Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if r.KeepSnapshots > 0 {
		if err := r.Snapshots.Prune(ctx, r.KeepSnapshots); err != nil {
			return fmt.Errorf("prune snapshots: %w", err)
		}
	}
	return nil
}

// qualityForAccuracy maps a per-opening accuracy onto a recall grade.
func qualityForAccuracy(accuracy float64) srs.Quality {
	switch {
	case accuracy >= 0.9:
		return srs.Easy
	case accuracy >= 0.7:
		return srs.Good
	case accuracy >= 0.5:
		return srs.Hard
	default:
		return srs.Again
	}
}

// attemptOrder returns the distinct opening ids in first-seen order.
func attemptOrder(attempts []Attempt) []string {
	seen := make(map[string]bool, len(attempts))
	var order []string
	for _, a := range attempts {
		if !seen[a.OpeningID] {
			seen[a.OpeningID] = true
			order = append(order, a.OpeningID)
		}
	}
	return order
}

func groupFor(attempts []Attempt, openingID string) []Attempt {
	var group []Attempt
	for _, a := range attempts {
		if a.OpeningID == openingID {
			group = append(group, a)
		}
	}
	return group
}

func summarizeAttempts(openingID string, group []Attempt) OpeningResult {
	result := OpeningResult{OpeningID: openingID, Attempts: len(group)}
	var totalMs int
	for _, a := range group {
		if a.Correct {
			result.Correct++
		}
		totalMs += a.TimeMs
	}
	result.Accuracy = float64(result.Correct) / float64(len(group))
	result.AvgTimeSecs = float64(totalMs) / float64(len(group)) / 1000.0
	return result
}
