package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ksuda/kioku/internal/card"
	"github.com/ksuda/kioku/internal/ui/components"
	"github.com/ksuda/kioku/internal/ui/theme"
)

func (s *StudyScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.state == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Building your deck...")
	}
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}
	if s.state.Done() {
		return ""
	}
	return s.renderCard(width, height)
}

// renderCard renders the current card: front only, or front and back
// once revealed.
func (s *StudyScreen) renderCard(width, height int) string {
	c := s.state.Current()
	if c == nil {
		return ""
	}

	var b strings.Builder

	// Info line: mode and position on the left, session stats on the right.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · %s", s.state.Mode, c.Chapter))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Card %d/%d  %s %d  streak %d",
			s.state.Index+1,
			len(s.state.Deck),
			lipgloss.NewStyle().Foreground(theme.Success).Render("*"),
			s.state.Stats.CorrectCount,
			s.state.Stats.CurrentStreak,
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")

	bar := components.NewProgressBar("", s.state.Progress(), false, min(width-4, 60))
	b.WriteString("  " + bar.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Type badge.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Render(typeBadge(c.Type)))
	b.WriteString("\n\n")

	// Question.
	questionStyle := lipgloss.NewStyle().
		Width(min(width-8, 70)).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, questionStyle.Render(c.Question)))
	b.WriteString("\n\n")

	if !s.state.Revealed {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Press space to reveal the answer"))
		return b.String()
	}

	// Answer.
	answerStyle := lipgloss.NewStyle().
		Width(min(width-8, 70)).
		Align(lipgloss.Center).
		Foreground(theme.Success)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, answerStyle.Render(c.Answer)))
	b.WriteString("\n\n")

	// Conditions and misconceptions, when the card carries them.
	detail := lipgloss.NewStyle().
		Width(min(width-8, 70)).
		Foreground(theme.TextDim)
	if len(c.Conditions) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			detail.Render("Assumes: "+strings.Join(c.Conditions, "; "))))
		b.WriteString("\n")
	}
	if len(c.Misconceptions) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			detail.Render("Watch out for: "+strings.Join(c.Misconceptions, "; "))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("← didn't know    → knew it    ↑ perfect    (or grade 0-5)"))

	return b.String()
}

// typeBadge labels the card type for the learner.
func typeBadge(t card.Type) string {
	switch t {
	case card.TypeDecision:
		return "[ decision ]"
	case card.TypeProcess:
		return "[ process ]"
	default:
		return "[ recall ]"
	}
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End session early?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Graded cards are already saved."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
