package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nikostojak/repertoire/internal/adaptive"
	"github.com/nikostojak/repertoire/internal/openings"
	"github.com/nikostojak/repertoire/internal/srs"
	"github.com/nikostojak/repertoire/internal/store"
)

const testCatalogJSON = `{
  "openings": [
    {
      "id": "italian-game",
      "eco": "C50",
      "name": "Italian Game",
      "moves": ["e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5"],
      "difficulty": 1
    },
    {
      "id": "ruy-lopez",
      "eco": "C60",
      "name": "Ruy Lopez",
      "moves": ["e4", "e5", "Nf3", "Nc6", "Bb5", "a6"],
      "difficulty": 2
    },
    {
      "id": "sicilian-najdorf",
      "eco": "B90",
      "name": "Sicilian Defense: Najdorf Variation",
      "moves": ["e4", "c5", "Nf3", "d6", "d4", "cxd4", "Nxd4", "Nf6"],
      "difficulty": 4
    }
  ]
}`

func testCatalog(t *testing.T) *openings.Catalog {
	t.Helper()
	catalog, err := openings.Parse([]byte(testCatalogJSON))
	if err != nil {
		t.Fatalf("parse test catalog: %v", err)
	}
	return catalog
}

type fakeEventRepo struct {
	sessionEvents []store.SessionEventData
	attemptEvents []store.AttemptEventData
	appendErr     error
}

func (f *fakeEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.sessionEvents = append(f.sessionEvents, data)
	return nil
}

func (f *fakeEventRepo) AppendAttemptEvent(_ context.Context, data store.AttemptEventData) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.attemptEvents = append(f.attemptEvents, data)
	return nil
}

func (f *fakeEventRepo) OpeningAccuracy(context.Context, string) (float64, int, error) {
	return 0, 0, nil
}

func (f *fakeEventRepo) LatestAttemptTime(context.Context, string) (time.Time, error) {
	return time.Time{}, nil
}

func (f *fakeEventRepo) SessionSummaries(context.Context, store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	return nil, nil
}

type fakeSnapshotRepo struct {
	saved  []*store.Snapshot
	pruned int
}

func (f *fakeSnapshotRepo) Save(_ context.Context, snap *store.Snapshot) error {
	f.saved = append(f.saved, snap)
	return nil
}

func (f *fakeSnapshotRepo) Latest(context.Context) (*store.Snapshot, error) {
	if len(f.saved) == 0 {
		return nil, nil
	}
	return f.saved[len(f.saved)-1], nil
}

func (f *fakeSnapshotRepo) Prune(_ context.Context, keep int) error {
	f.pruned = keep
	return nil
}

func TestBuildPlanReviewsFirstThenDiscovery(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	planner := NewPlanner(testCatalog(t), adaptive.NewAdvisor(), 3)

	reviews := map[string]srs.ReviewItem{
		"ruy-lopez": {
			UserID:     "local",
			OpeningID:  "ruy-lopez",
			NextReview: now.AddDate(0, 0, -2),
		},
	}

	plan, err := planner.BuildPlan(adaptive.NewProfile("local"), reviews, now)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if plan.SessionID == "" {
		t.Error("expected a session id")
	}
	if plan.Difficulty != 3 {
		t.Errorf("fresh profile difficulty = %v, want preferred 3", plan.Difficulty)
	}
	if len(plan.Slots) != 3 {
		t.Fatalf("len(Slots) = %d, want 3", len(plan.Slots))
	}
	if plan.Slots[0].Category != CategoryReview || plan.Slots[0].Opening.ID != "ruy-lopez" {
		t.Errorf("slot 0 = %s/%s, want review/ruy-lopez",
			plan.Slots[0].Category, plan.Slots[0].Opening.ID)
	}
	// Discovery fill comes easiest first.
	if plan.Slots[1].Opening.ID != "italian-game" || plan.Slots[2].Opening.ID != "sicilian-najdorf" {
		t.Errorf("discover fill = %s, %s; want italian-game, sicilian-najdorf",
			plan.Slots[1].Opening.ID, plan.Slots[2].Opening.ID)
	}
	for _, slot := range plan.Slots[1:] {
		if slot.Category != CategoryDiscover {
			t.Errorf("slot for %s category = %s, want discover", slot.Opening.ID, slot.Category)
		}
		if slot.Item != nil {
			t.Errorf("discover slot for %s carries a review item", slot.Opening.ID)
		}
	}
	if plan.ReviewCount() != 1 {
		t.Errorf("ReviewCount() = %d, want 1", plan.ReviewCount())
	}
}

func TestBuildPlanSkipsNotDueAndMissingOpenings(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	planner := NewPlanner(testCatalog(t), adaptive.NewAdvisor(), 2)

	reviews := map[string]srs.ReviewItem{
		// Due, but the opening is gone from the catalog.
		"kings-gambit-removed": {OpeningID: "kings-gambit-removed", NextReview: now.AddDate(0, 0, -1)},
		// Not due.
		"ruy-lopez": {OpeningID: "ruy-lopez", NextReview: now.AddDate(0, 0, 5)},
	}

	plan, err := planner.BuildPlan(adaptive.NewProfile("local"), reviews, now)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if plan.ReviewCount() != 0 {
		t.Errorf("ReviewCount() = %d, want 0", plan.ReviewCount())
	}
	if len(plan.Slots) != 2 {
		t.Fatalf("len(Slots) = %d, want 2", len(plan.Slots))
	}
	// ruy-lopez is tracked, so discovery skips it.
	for _, slot := range plan.Slots {
		if slot.Opening.ID == "ruy-lopez" {
			t.Error("discovery offered an already tracked opening")
		}
	}
}

func TestBuildPlanNothingToTrain(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	catalog := testCatalog(t)
	planner := NewPlanner(catalog, adaptive.NewAdvisor(), 5)

	reviews := make(map[string]srs.ReviewItem)
	for _, o := range catalog.All() {
		reviews[o.ID] = srs.ReviewItem{OpeningID: o.ID, NextReview: now.AddDate(0, 0, 10)}
	}

	_, err := planner.BuildPlan(adaptive.NewProfile("local"), reviews, now)
	if !errors.Is(err, ErrNothingToTrain) {
		t.Fatalf("err = %v, want ErrNothingToTrain", err)
	}
}

func TestRecorderCompleteAdvancesState(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	startedAt := now.Add(-4 * time.Minute)
	events := &fakeEventRepo{}
	snapshots := &fakeSnapshotRepo{}
	rec := NewRecorder(events, snapshots)

	plan := &Plan{SessionID: "s-1", Difficulty: 3}
	state := State{
		Profile: adaptive.NewProfile("local"),
		Reviews: map[string]srs.ReviewItem{},
	}

	attempts := []Attempt{
		{OpeningID: "italian-game", Correct: true, TimeMs: 8000, Format: "multiple_choice"},
		{OpeningID: "italian-game", Correct: true, TimeMs: 6000, Format: "multiple_choice"},
		{OpeningID: "ruy-lopez", Correct: false, TimeMs: 20000, Format: "multiple_choice"},
	}

	next, summary, err := rec.Complete(context.Background(), plan, state, attempts, startedAt, now)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if summary.Questions != 3 || summary.Correct != 2 {
		t.Errorf("summary = %d/%d, want 2/3 correct", summary.Correct, summary.Questions)
	}
	if summary.Accuracy < 0.66 || summary.Accuracy > 0.67 {
		t.Errorf("Accuracy = %v, want 2/3", summary.Accuracy)
	}

	// A first correct pass starts the opening at a one-day interval.
	italian, ok := next.Reviews["italian-game"]
	if !ok {
		t.Fatal("italian-game missing from reviews")
	}
	if italian.IntervalDays != 1 || italian.Repetitions != 1 {
		t.Errorf("italian-game interval=%d reps=%d, want 1/1", italian.IntervalDays, italian.Repetitions)
	}
	// A failed opening records a lapse.
	ruy := next.Reviews["ruy-lopez"]
	if ruy.Lapses != 1 || ruy.Repetitions != 0 {
		t.Errorf("ruy-lopez lapses=%d reps=%d, want 1/0", ruy.Lapses, ruy.Repetitions)
	}

	// 2/3 accuracy at skill 50 raises the estimate.
	if next.Profile.SkillLevel <= 50 {
		t.Errorf("SkillLevel = %v, want > 50", next.Profile.SkillLevel)
	}
	if summary.SkillBefore != 50 || summary.SkillAfter != next.Profile.SkillLevel {
		t.Errorf("summary skill %v -> %v does not match profile %v",
			summary.SkillBefore, summary.SkillAfter, next.Profile.SkillLevel)
	}
	if len(next.Profile.RecentPerformance) != 2 {
		t.Errorf("RecentPerformance len = %d, want 2 (one per opening)", len(next.Profile.RecentPerformance))
	}

	// Input state is untouched.
	if len(state.Reviews) != 0 {
		t.Error("Complete mutated the input review map")
	}
	if state.Profile.SkillLevel != 50 {
		t.Error("Complete mutated the input profile")
	}

	if len(events.attemptEvents) != 3 {
		t.Errorf("attempt events = %d, want 3", len(events.attemptEvents))
	}
	if len(events.sessionEvents) != 1 || events.sessionEvents[0].Action != "end" {
		t.Fatalf("session events = %+v, want one end event", events.sessionEvents)
	}
	end := events.sessionEvents[0]
	if end.QuestionsServed != 3 || end.CorrectAnswers != 2 || end.DurationSecs != 240 {
		t.Errorf("end event = %+v, want 3 served, 2 correct, 240s", end)
	}

	if len(snapshots.saved) != 1 {
		t.Fatalf("snapshots saved = %d, want 1", len(snapshots.saved))
	}
	if snapshots.pruned != rec.KeepSnapshots {
		t.Errorf("pruned to %d, want %d", snapshots.pruned, rec.KeepSnapshots)
	}
}

func TestRecorderCompleteRejectsEmptySessions(t *testing.T) {
	rec := NewRecorder(&fakeEventRepo{}, &fakeSnapshotRepo{})
	now := time.Now()
	_, _, err := rec.Complete(context.Background(), &Plan{SessionID: "s-2"}, State{
		Profile: adaptive.NewProfile("local"),
	}, nil, now, now)
	if err == nil {
		t.Fatal("expected an error for a session with no attempts")
	}
}

func TestQualityForAccuracy(t *testing.T) {
	cases := []struct {
		accuracy float64
		want     srs.Quality
	}{
		{1.0, srs.Easy},
		{0.9, srs.Easy},
		{0.8, srs.Good},
		{0.7, srs.Good},
		{0.6, srs.Hard},
		{0.5, srs.Hard},
		{0.4, srs.Again},
		{0, srs.Again},
	}
	for _, tc := range cases {
		if got := qualityForAccuracy(tc.accuracy); got != tc.want {
			t.Errorf("qualityForAccuracy(%v) = %v, want %v", tc.accuracy, got, tc.want)
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	profile := adaptive.NewProfile("local")
	profile.SkillLevel = 61.5
	profile = profile.RecordPerformance(adaptive.PerformanceMetric{
		Timestamp:      now,
		OpeningID:      "italian-game",
		Accuracy:       0.8,
		AvgTimePerMove: 9.5,
		Difficulty:     3,
	})

	state := State{
		Profile: profile,
		Reviews: map[string]srs.ReviewItem{
			"italian-game": {
				UserID:       "local",
				OpeningID:    "italian-game",
				LastSeen:     now,
				NextReview:   now.AddDate(0, 0, 6),
				IntervalDays: 6,
				EaseFactor:   2.5,
				Repetitions:  2,
			},
		},
	}

	snapshots := &fakeSnapshotRepo{}
	snapshots.saved = append(snapshots.saved, &store.Snapshot{
		Timestamp: now,
		Data:      BuildSnapshotData(state),
	})

	restored, err := LoadState(context.Background(), snapshots, "local")
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if restored.Profile.SkillLevel != 61.5 {
		t.Errorf("SkillLevel = %v, want 61.5", restored.Profile.SkillLevel)
	}
	if len(restored.Profile.RecentPerformance) != 1 {
		t.Fatalf("RecentPerformance len = %d, want 1", len(restored.Profile.RecentPerformance))
	}
	if !restored.Profile.RecentPerformance[0].Timestamp.Equal(now) {
		t.Errorf("metric timestamp = %v, want %v", restored.Profile.RecentPerformance[0].Timestamp, now)
	}
	item := restored.Reviews["italian-game"]
	if item.IntervalDays != 6 || item.Repetitions != 2 || !item.NextReview.Equal(now.AddDate(0, 0, 6)) {
		t.Errorf("restored item = %+v", item)
	}
}

func TestLoadStateFreshProfile(t *testing.T) {
	state, err := LoadState(context.Background(), &fakeSnapshotRepo{}, "local")
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if state.Profile.UserID != "local" || state.Profile.SkillLevel != 50 {
		t.Errorf("fresh profile = %+v", state.Profile)
	}
	if len(state.Reviews) != 0 {
		t.Errorf("fresh state has %d reviews", len(state.Reviews))
	}
}
