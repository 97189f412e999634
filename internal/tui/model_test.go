package tui

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/nikostojak/repertoire/internal/adaptive"
	"github.com/nikostojak/repertoire/internal/openings"
	"github.com/nikostojak/repertoire/internal/session"
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
      "id": "french-defense",
      "eco": "C00",
      "name": "French Defense",
      "moves": ["e4", "e6", "d4", "d5", "Nc3", "Bb4"],
      "difficulty": 2
    },
    {
      "id": "caro-kann",
      "eco": "B10",
      "name": "Caro-Kann Defense",
      "moves": ["e4", "c6", "d4", "d5", "Nc3", "dxe4"],
      "difficulty": 2
    }
  ]
}`

type stubEventRepo struct {
	sessionEvents []store.SessionEventData
	attemptEvents []store.AttemptEventData
}

func (s *stubEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	s.sessionEvents = append(s.sessionEvents, data)
	return nil
}

func (s *stubEventRepo) AppendAttemptEvent(_ context.Context, data store.AttemptEventData) error {
	s.attemptEvents = append(s.attemptEvents, data)
	return nil
}

func (s *stubEventRepo) OpeningAccuracy(context.Context, string) (float64, int, error) {
	return 0, 0, nil
}

func (s *stubEventRepo) LatestAttemptTime(context.Context, string) (time.Time, error) {
	return time.Time{}, nil
}

func (s *stubEventRepo) SessionSummaries(context.Context, store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	return nil, nil
}

type stubSnapshotRepo struct {
	snapshots []*store.Snapshot
}

func (s *stubSnapshotRepo) Save(_ context.Context, snap *store.Snapshot) error {
	s.snapshots = append(s.snapshots, snap)
	return nil
}

func (s *stubSnapshotRepo) Latest(context.Context) (*store.Snapshot, error) {
	if len(s.snapshots) == 0 {
		return nil, nil
	}
	return s.snapshots[len(s.snapshots)-1], nil
}

func (s *stubSnapshotRepo) Prune(context.Context, int) error {
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testModel(t *testing.T) (Model, *stubEventRepo, *stubSnapshotRepo) {
	t.Helper()
	catalog, err := openings.Parse([]byte(testCatalogJSON))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	events := &stubEventRepo{}
	snapshots := &stubSnapshotRepo{}

	m := NewModel(Options{
		Catalog:   catalog,
		Planner:   session.NewPlanner(catalog, adaptive.NewAdvisor(), 2),
		Recorder:  session.NewRecorder(events, snapshots),
		Snapshots: snapshots,
		UserID:    "local",
		Seed:      1,
	})
	m.width = 80
	m.height = 24
	return m, events, snapshots
}

// startSession drives the model through plan loading.
func startSession(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.loadSession()()
	ready, ok := msg.(planReadyMsg)
	if !ok {
		t.Fatalf("loadSession returned %T", msg)
	}
	if ready.Err != nil {
		t.Fatalf("loadSession: %v", ready.Err)
	}
	next, _ := m.Update(ready)
	return next.(Model)
}

func TestModelStartsWithQuestion(t *testing.T) {
	m, events, _ := testModel(t)
	m = startSession(t, m)

	if m.phase != phaseQuestion {
		t.Fatalf("phase = %d, want phaseQuestion", m.phase)
	}
	if m.question.OpeningID == "" {
		t.Error("expected a question for the first slot")
	}
	if len(events.sessionEvents) != 1 || events.sessionEvents[0].Action != "start" {
		t.Errorf("session events = %+v, want one start event", events.sessionEvents)
	}
}

func TestModelQuitConfirmFlow(t *testing.T) {
	m, _, _ := testModel(t)
	m = startSession(t, m)

	next, _ := m.Update(specialKey(tea.KeyEscape))
	m = next.(Model)
	if m.phase != phaseQuitConfirm {
		t.Fatalf("phase = %d, want phaseQuitConfirm", m.phase)
	}

	next, _ = m.Update(keyPress('n'))
	m = next.(Model)
	if m.phase != phaseQuestion {
		t.Errorf("phase after N = %d, want phaseQuestion", m.phase)
	}
}

func TestModelQuitWithoutAnswersDiscards(t *testing.T) {
	m, _, snapshots := testModel(t)
	m = startSession(t, m)

	next, _ := m.Update(specialKey(tea.KeyEscape))
	m = next.(Model)
	_, cmd := m.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if len(snapshots.snapshots) != 0 {
		t.Error("abandoned session must not save a snapshot")
	}
}

func TestModelMultipleChoiceAnswer(t *testing.T) {
	m, _, _ := testModel(t)
	m = startSession(t, m)

	if m.question.Format != openings.FormatMultipleChoice {
		t.Fatalf("question format = %s, want multiple choice at default difficulty", m.question.Format)
	}

	// Pick the correct choice by number key.
	correct := 0
	for i, c := range m.question.Choices {
		if c == m.question.Answer {
			correct = i
			break
		}
	}
	next, _ := m.Update(keyPress(rune('1' + correct)))
	m = next.(Model)

	if m.phase != phaseFeedback {
		t.Fatalf("phase = %d, want phaseFeedback", m.phase)
	}
	if !m.lastCorrect {
		t.Error("expected the correct choice to grade correct")
	}
	if len(m.attempts) != 1 || !m.attempts[0].Correct {
		t.Errorf("attempts = %+v, want one correct attempt", m.attempts)
	}
}

func TestModelFullSessionPersists(t *testing.T) {
	m, events, snapshots := testModel(t)
	m = startSession(t, m)

	for i := 0; i < len(m.plan.Slots); i++ {
		// Always answer choice 1; correctness does not matter here.
		next, _ := m.Update(keyPress('1'))
		m = next.(Model)
		if m.phase != phaseFeedback {
			t.Fatalf("slot %d: phase = %d, want phaseFeedback", i, m.phase)
		}

		next, cmd := m.Update(keyPress(' '))
		m = next.(Model)
		if i < len(m.plan.Slots)-1 {
			continue
		}

		// Last slot: the model saves and reports the summary.
		if m.phase != phaseSaving {
			t.Fatalf("phase = %d, want phaseSaving", m.phase)
		}
		if cmd == nil {
			t.Fatal("expected a save command")
		}
		saved, ok := cmd().(sessionSavedMsg)
		if !ok {
			t.Fatal("save command did not produce sessionSavedMsg")
		}
		if saved.Err != nil {
			t.Fatalf("save: %v", saved.Err)
		}
		next, _ = m.Update(saved)
		m = next.(Model)
	}

	if m.phase != phaseSummary {
		t.Fatalf("phase = %d, want phaseSummary", m.phase)
	}
	if m.summary == nil || m.summary.Questions != 2 {
		t.Fatalf("summary = %+v, want 2 questions", m.summary)
	}
	if len(events.attemptEvents) != 2 {
		t.Errorf("attempt events = %d, want 2", len(events.attemptEvents))
	}
	if len(snapshots.snapshots) != 1 {
		t.Errorf("snapshots = %d, want 1", len(snapshots.snapshots))
	}

	// Any key exits from the summary.
	_, cmd := m.Update(keyPress(' '))
	if cmd == nil {
		t.Error("expected quit command from summary")
	}
}

func TestSanEqual(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"Nf3", "Nf3", true},
		{"nf3", "Nf3", true},
		{" Nf3 ", "Nf3", true},
		{"Qxd8+", "Qxd8", true},
		{"e4!?", "e4", true},
		{"e4", "d4", false},
		{"", "e4", false},
	}
	for _, tc := range cases {
		if got := sanEqual(tc.a, tc.b); got != tc.want {
			t.Errorf("sanEqual(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
