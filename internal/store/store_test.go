package store

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().UTC().Truncate(time.Second)
	data := SnapshotData{
		Version: 1,
		Profile: &ProfileData{
			UserID:              "local",
			SkillLevel:          62.5,
			PreferredDifficulty: 3,
			AdaptiveEnabled:     true,
			Sensitivity:         1,
			MinDifficulty:       1,
			MaxDifficulty:       5,
		},
		Reviews: map[string]*ReviewItemData{
			"ruy-lopez": {
				UserID:       "local",
				OpeningID:    "ruy-lopez",
				LastSeen:     now.Format(time.RFC3339),
				NextReview:   now.AddDate(0, 0, 6).Format(time.RFC3339),
				IntervalDays: 6,
				EaseFactor:   2.5,
				Repetitions:  2,
			},
		},
	}
	if err := repo.Save(ctx, &Snapshot{Sequence: 7, Timestamp: now, Data: data}); err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected a snapshot")
	}
	if snap.Sequence != 7 {
		t.Errorf("Sequence = %d, want 7", snap.Sequence)
	}
	if snap.Data.Profile == nil || snap.Data.Profile.SkillLevel != 62.5 {
		t.Errorf("Profile = %+v, want skill 62.5", snap.Data.Profile)
	}
	rd := snap.Data.Reviews["ruy-lopez"]
	if rd == nil || rd.IntervalDays != 6 || rd.Repetitions != 2 {
		t.Errorf("Reviews[ruy-lopez] = %+v, want interval 6 reps 2", rd)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 2); err != nil {
		t.Fatalf("prune: %v", err)
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil || snap.Sequence != 4 {
		t.Fatalf("latest after prune = %+v, want sequence 4", snap)
	}
}

func TestEventRepo_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "sess-1", UserID: "local", Action: "start", Difficulty: 3,
	})
	if err != nil {
		t.Fatalf("append session start: %v", err)
	}

	attempts := []struct {
		opening string
		correct bool
	}{
		{"caro-kann", true},
		{"caro-kann", true},
		{"caro-kann", false},
		{"ruy-lopez", true},
	}
	for _, a := range attempts {
		err := repo.AppendAttemptEvent(ctx, AttemptEventData{
			SessionID: "sess-1", UserID: "local", OpeningID: a.opening,
			Prompt: "1. e4", CorrectMove: "c6", LearnerMove: "c6",
			Correct: a.correct, TimeMs: 4200, Difficulty: 3, Format: "multiple_choice",
		})
		if err != nil {
			t.Fatalf("append attempt: %v", err)
		}
	}

	err = repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "sess-1", UserID: "local", Action: "end", Difficulty: 3,
		QuestionsServed: 4, CorrectAnswers: 3, DurationSecs: 310,
	})
	if err != nil {
		t.Fatalf("append session end: %v", err)
	}

	acc, count, err := repo.OpeningAccuracy(ctx, "caro-kann")
	if err != nil {
		t.Fatalf("opening accuracy: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	if acc < 0.66 || acc > 0.67 {
		t.Errorf("accuracy = %v, want 2/3", acc)
	}

	latest, err := repo.LatestAttemptTime(ctx, "ruy-lopez")
	if err != nil {
		t.Fatalf("latest attempt time: %v", err)
	}
	if latest.IsZero() {
		t.Error("expected non-zero latest attempt time")
	}

	none, err := repo.LatestAttemptTime(ctx, "never-played")
	if err != nil {
		t.Fatalf("latest attempt time (none): %v", err)
	}
	if !none.IsZero() {
		t.Error("expected zero time for unplayed opening")
	}

	summaries, err := repo.SessionSummaries(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("session summaries: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("len(summaries) = %d, want 1 (end events only)", len(summaries))
	}
	if summaries[0].QuestionsServed != 4 || summaries[0].CorrectAnswers != 3 {
		t.Errorf("summary = %+v", summaries[0])
	}
}
