package tui

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/nikostojak/repertoire/internal/openings"
	"github.com/nikostojak/repertoire/internal/session"
	"github.com/nikostojak/repertoire/internal/store"
	"github.com/nikostojak/repertoire/internal/ui/components"
)

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseFeedback
	phaseQuitConfirm
	phaseSaving
	phaseSummary
	phaseError
)

// Options carries the dependencies for a training session.
type Options struct {
	Catalog   *openings.Catalog
	Planner   *session.Planner
	Recorder  *session.Recorder
	Snapshots store.SnapshotRepo
	UserID    string
	Seed      int64 // 0 means derive from the clock
}

// Model is the Bubble Tea model for one training session.
type Model struct {
	opts Options
	rng  *rand.Rand

	width  int
	height int

	phase  phase
	errMsg string

	plan      *session.Plan
	state     session.State
	slotIndex int
	startedAt time.Time

	question      openings.Question
	questionStart time.Time
	choice        components.MoveChoice
	input         components.MoveInput

	lastCorrect bool
	lastAnswer  string

	attempts []session.Attempt
	correct  int

	summary *session.Summary
}

// NewModel creates the session model. The plan is built asynchronously in
// Init so the terminal comes up immediately.
func NewModel(opts Options) Model {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return Model{
		opts:  opts,
		rng:   rand.New(rand.NewSource(seed)),
		phase: phaseLoading,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadSession()
}

// loadSession restores learner state, builds the plan, and logs the session
// start event.
func (m Model) loadSession() tea.Cmd {
	opts := m.opts
	return func() tea.Msg {
		ctx := context.Background()

		state, err := session.LoadState(ctx, opts.Snapshots, opts.UserID)
		if err != nil {
			return planReadyMsg{Err: err}
		}

		plan, err := opts.Planner.BuildPlan(state.Profile, state.Reviews, time.Now())
		if err != nil {
			return planReadyMsg{Err: err}
		}

		if err := opts.Recorder.Start(ctx, plan, opts.UserID); err != nil {
			return planReadyMsg{Err: err}
		}
		return planReadyMsg{Plan: plan, State: state}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case planReadyMsg:
		if msg.Err != nil {
			m.phase = phaseError
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.plan = msg.Plan
		m.state = msg.State
		m.startedAt = time.Now()
		m.slotIndex = 0
		return m.presentQuestion()

	case sessionSavedMsg:
		if msg.Err != nil {
			m.phase = phaseError
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.state = msg.State
		m.summary = msg.Summary
		m.phase = phaseSummary
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == phaseQuestion && m.question.Format == openings.FormatTyped {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.phase {
	case phaseError, phaseSummary:
		return m, tea.Quit

	case phaseLoading, phaseSaving:
		return m, nil

	case phaseQuitConfirm:
		switch key {
		case "y", "Y":
			return m.finishSession()
		case "n", "N", "esc":
			m.phase = phaseQuestion
		}
		return m, nil

	case phaseFeedback:
		return m.advanceSlot()

	case phaseQuestion:
		return m.handleQuestionKey(msg)
	}
	return m, nil
}

func (m Model) handleQuestionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "esc" {
		m.phase = phaseQuitConfirm
		return m, nil
	}

	if m.question.Format == openings.FormatMultipleChoice {
		switch key {
		case "1", "2", "3", "4":
			if m.choice.Choose(int(key[0] - '1')) {
				return m.submitAnswer(m.choice.Value())
			}
			return m, nil
		case "enter":
			var cmd tea.Cmd
			m.choice, cmd = m.choice.Update(msg)
			if m.choice.Submitted {
				return m.submitAnswer(m.choice.Value())
			}
			return m, cmd
		default:
			var cmd tea.Cmd
			m.choice, cmd = m.choice.Update(msg)
			return m, cmd
		}
	}

	// Typed answer.
	if key == "enter" {
		answer := m.input.Value()
		if answer == "" {
			return m, nil
		}
		m.input.Submit(sanEqual(answer, m.question.Answer))
		return m.submitAnswer(answer)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitAnswer grades the answer, records the attempt, and shows feedback.
func (m Model) submitAnswer(answer string) (tea.Model, tea.Cmd) {
	m.lastAnswer = answer
	m.lastCorrect = sanEqual(answer, m.question.Answer)
	if m.lastCorrect {
		m.correct++
	}

	m.attempts = append(m.attempts, session.Attempt{
		OpeningID:   m.question.OpeningID,
		Prompt:      m.question.Prompt,
		CorrectMove: m.question.Answer,
		LearnerMove: answer,
		Correct:     m.lastCorrect,
		TimeMs:      int(time.Since(m.questionStart).Milliseconds()),
		Format:      string(m.question.Format),
	})

	m.phase = phaseFeedback
	return m, nil
}

// advanceSlot moves to the next opening or ends the session.
func (m Model) advanceSlot() (tea.Model, tea.Cmd) {
	m.slotIndex++
	if m.slotIndex >= len(m.plan.Slots) {
		return m.finishSession()
	}
	return m.presentQuestion()
}

// presentQuestion builds the question for the current slot and resets the
// answer widgets.
func (m Model) presentQuestion() (tea.Model, tea.Cmd) {
	slot := m.plan.Slots[m.slotIndex]
	q, err := m.opts.Catalog.BuildQuestion(slot.Opening.ID, m.plan.Difficulty, m.rng)
	if err != nil {
		m.phase = phaseError
		m.errMsg = err.Error()
		return m, nil
	}

	m.question = q
	m.questionStart = time.Now()
	m.phase = phaseQuestion

	if q.Format == openings.FormatMultipleChoice {
		correct := 0
		for i, c := range q.Choices {
			if c == q.Answer {
				correct = i
				break
			}
		}
		m.choice = components.NewMoveChoice(q.PromptText(), q.Choices, correct)
		return m, nil
	}

	m.input = components.NewMoveInput("Type the move...")
	return m, m.input.Init()
}

// finishSession persists the results. A session abandoned before the first
// answer is simply discarded.
func (m Model) finishSession() (tea.Model, tea.Cmd) {
	if len(m.attempts) == 0 {
		return m, tea.Quit
	}

	m.phase = phaseSaving
	opts := m.opts
	plan, state, attempts, startedAt := m.plan, m.state, m.attempts, m.startedAt
	return m, func() tea.Msg {
		next, summary, err := opts.Recorder.Complete(
			context.Background(), plan, state, attempts, startedAt, time.Now())
		return sessionSavedMsg{State: next, Summary: summary, Err: err}
	}
}

// sanEqual compares two SAN moves, tolerating case slips and decorations
// like "!?" that learners sometimes type along with the move.
func sanEqual(a, b string) bool {
	trim := func(s string) string {
		return strings.TrimRight(strings.TrimSpace(s), "!?+#")
	}
	return strings.EqualFold(trim(a), trim(b))
}

// Run starts the Bubble Tea program for a training session.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
