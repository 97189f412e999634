package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nikostojak/repertoire/internal/ui/theme"
)

// MoveInput wraps bubbles/textinput for typing a move in algebraic notation.
type MoveInput struct {
	Model     textinput.Model
	submitted bool
	valid     bool
}

// NewMoveInput creates a focused input sized for SAN moves.
func NewMoveInput(placeholder string) MoveInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 8 // longest SAN move, e.g. exd8=Q#
	ti.Focus()
	return MoveInput{Model: ti}
}

// Init returns the initial command.
func (t MoveInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t MoveInput) Update(msg tea.Msg) (MoveInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input, with a verdict mark after submission.
func (t MoveInput) View() string {
	view := t.Model.View()
	if t.submitted {
		if t.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the trimmed input value.
func (t MoveInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// Submit marks the input as submitted with a validation result.
func (t *MoveInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
}
