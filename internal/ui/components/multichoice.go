package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nikostojak/repertoire/internal/ui/theme"
)

// MoveChoice is a multiple-choice move selector.
type MoveChoice struct {
	Prompt       string
	Moves        []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewMoveChoice creates a move selector with the cursor on the first option.
func NewMoveChoice(prompt string, moves []string, correctIndex int) MoveChoice {
	return MoveChoice{
		Prompt:       prompt,
		Moves:        moves,
		CorrectIndex: correctIndex,
		Selected:     0,
		Submitted:    false,
		ChosenIndex:  -1,
	}
}

// Init returns nil.
func (m MoveChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MoveChoice) Update(msg tea.Msg) (MoveChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Moves)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	}

	return m, nil
}

// View renders the selector. After submission the correct move is shown in
// green and a wrong pick in red.
func (m MoveChoice) View() string {
	s := theme.Body.Bold(true).Render(m.Prompt) + "\n\n"

	for i, move := range m.Moves {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, move)

		switch {
		case m.Submitted && i == m.CorrectIndex:
			s += theme.Correct.Render(line) + "\n"
		case m.Submitted && i == m.ChosenIndex:
			s += theme.Incorrect.Render(line) + "\n"
		case m.Submitted:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == m.Selected:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}

	return s
}

// Choose submits the option at index i if it exists.
func (m *MoveChoice) Choose(i int) bool {
	if m.Submitted || i < 0 || i >= len(m.Moves) {
		return false
	}
	m.Selected = i
	m.Submitted = true
	m.ChosenIndex = i
	return true
}

// Value returns the chosen move, or "" before submission.
func (m MoveChoice) Value() string {
	if !m.Submitted || m.ChosenIndex < 0 {
		return ""
	}
	return m.Moves[m.ChosenIndex]
}

// IsCorrect reports whether the chosen move is the right one.
func (m MoveChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}
