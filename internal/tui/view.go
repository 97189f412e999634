package tui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nikostojak/repertoire/internal/openings"
	"github.com/nikostojak/repertoire/internal/session"
	"github.com/nikostojak/repertoire/internal/ui/components"
	"github.com/nikostojak/repertoire/internal/ui/layout"
	"github.com/nikostojak/repertoire/internal/ui/theme"
)

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	skill := m.state.Profile.SkillLevel
	difficulty := 0.0
	if m.plan != nil {
		difficulty = m.plan.Difficulty
	}
	header := layout.RenderHeader(m.title(), skill, difficulty, m.width)
	footer := layout.RenderFooter(m.keyHints(), m.width)

	var content string
	switch m.phase {
	case phaseLoading:
		content = centered(m.width, theme.Subtitle.Render("\n\nPreparing your session..."))
	case phaseSaving:
		content = centered(m.width, theme.Subtitle.Render("\n\nSaving your progress..."))
	case phaseError:
		content = centered(m.width, theme.Incorrect.Render("\n\n"+m.errMsg))
	case phaseQuitConfirm:
		content = m.renderQuitConfirm()
	case phaseFeedback:
		content = m.renderFeedback()
	case phaseSummary:
		content = m.renderSummary()
	case phaseQuestion:
		content = m.renderQuestion()
	}

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m Model) title() string {
	switch m.phase {
	case phaseSummary:
		return "Session Complete"
	case phaseQuitConfirm:
		return "End Session?"
	default:
		return "Training"
	}
}

func (m Model) keyHints() []layout.KeyHint {
	switch m.phase {
	case phaseQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	case phaseSummary, phaseError:
		return []layout.KeyHint{
			{Key: "any key", Description: "Exit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
			{Key: "Ctrl+C", Description: "Abort"},
		}
	}
}

func (m Model) renderQuestion() string {
	if m.plan == nil {
		return ""
	}
	slot := m.plan.Slots[m.slotIndex]

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s (%s)", slot.Opening.Name, slot.Opening.ECO))

	tag := "new line"
	if slot.Category == session.CategoryReview {
		tag = "review"
	}
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s   %d/%d   %d correct",
			tag, m.slotIndex+1, len(m.plan.Slots), m.correct))

	infoLine := infoLeft
	rightPad := m.width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(m.width-4, 0))))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("", float64(m.slotIndex)/float64(len(m.plan.Slots)), false, m.width/2)
	b.WriteString(centered(m.width, bar.View()))
	b.WriteString("\n\n")

	if m.question.Format == openings.FormatMultipleChoice {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.choice.View()))
		b.WriteString("\n")
		b.WriteString(centered(m.width, theme.Hint.Render("Select (1-4) or use arrows + Enter")))
		return b.String()
	}

	b.WriteString(centered(m.width, theme.Body.Bold(true).Render(m.question.PromptText())))
	b.WriteString("\n\n")
	b.WriteString(centered(m.width, "Your move: "+m.input.View()))
	return b.String()
}

func (m Model) renderFeedback() string {
	var b strings.Builder
	b.WriteString("\n\n")

	if m.lastCorrect {
		b.WriteString(centered(m.width, theme.Correct.Render("Correct!")))
	} else {
		b.WriteString(centered(m.width, theme.Incorrect.Render("Not quite")))
		b.WriteString("\n")
		b.WriteString(centered(m.width, theme.Subtitle.Render(
			fmt.Sprintf("The move here is %s", m.question.Answer))))
	}

	b.WriteString("\n\n")
	b.WriteString(centered(m.width, theme.Subtitle.Render(
		fmt.Sprintf("%s continues: %s", m.question.Name, fullLine(m)))))
	return b.String()
}

// fullLine renders the whole opening line so the learner sees the move in
// context after answering.
func fullLine(m Model) string {
	slot := m.plan.Slots[m.slotIndex]
	return slot.Opening.PGN(len(slot.Opening.Moves))
}

func (m Model) renderQuitConfirm() string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(centered(m.width, theme.Body.Bold(true).Render("End this session early?")))
	b.WriteString("\n\n")
	if len(m.attempts) > 0 {
		b.WriteString(centered(m.width, theme.Subtitle.Render("Your answers so far will be saved.")))
	} else {
		b.WriteString(centered(m.width, theme.Subtitle.Render("Nothing answered yet; nothing will be saved.")))
	}
	return b.String()
}

func (m Model) renderSummary() string {
	s := m.summary
	if s == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centered(m.width, theme.Title.Render("Session complete")))
	b.WriteString("\n\n")
	b.WriteString(centered(m.width, theme.Body.Render(fmt.Sprintf(
		"%d/%d correct (%.0f%%) in %s",
		s.Correct, s.Questions, s.Accuracy*100, s.Duration().Round(time.Second)))))
	b.WriteString("\n")
	b.WriteString(centered(m.width, theme.Subtitle.Render(fmt.Sprintf(
		"Skill %.1f -> %.1f", s.SkillBefore, s.SkillAfter))))
	b.WriteString("\n\n")

	for _, r := range s.Openings {
		bar := components.NewProgressBar(fmt.Sprintf("%-28s", r.OpeningID), r.Accuracy, true, m.width*2/3)
		line := bar.View() + lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  next in %dd", r.IntervalDays))
		b.WriteString(centered(m.width, line))
		b.WriteString("\n")
	}
	return b.String()
}

func centered(width int, s string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s)
}
