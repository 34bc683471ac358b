package interview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mpandit/prepterm/internal/bank"
	"github.com/mpandit/prepterm/internal/evaluate"
	"github.com/mpandit/prepterm/internal/session"
	"github.com/mpandit/prepterm/internal/ui/theme"
)

func (s *InterviewScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.quitConfirm:
		return renderQuitConfirm(width)
	case s.showingFeedback:
		return s.renderFeedback(width)
	case s.hasQuestion:
		return s.renderQuestion(width)
	default:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Preparing your report...")
	}
}

// renderQuestion shows the current question above the answer editor.
func (s *InterviewScreen) renderQuestion(width int) string {
	var b strings.Builder

	q := s.current
	state := s.engine.State()

	// Context line: type and tier on the left, timer on the right.
	var label string
	if state.Phase == session.PhaseNegotiation {
		label = fmt.Sprintf("Negotiation %d/%d",
			state.NegotiationTurns+1, s.engine.Config().NegotiationTurns)
	} else {
		label = fmt.Sprintf("%s  %s", bank.TypeDisplayName(q.Type), q.Tier.DisplayName())
	}
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + label)

	remaining := state.TimeBudget - s.elapsed
	if remaining < 0 {
		remaining = 0
	}
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d:%02d left", int(remaining.Minutes()), int(remaining.Seconds())%60))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Question text, wrapped and centered.
	question := lipgloss.NewStyle().
		Width(min(width-8, 76)).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, question))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.answer.View()))
	return b.String()
}

// renderFeedback shows the evaluation of the last answer.
func (s *InterviewScreen) renderFeedback(width int) string {
	rec := s.lastRecord

	var b strings.Builder
	b.WriteString("\n\n")

	scoreLine := fmt.Sprintf("Score: %s / 5", formatScore(rec.Score))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.ScoreStyle(rec.Score).Render(scoreLine)))
	b.WriteString("\n")

	if !rec.Negotiation {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(starLine(rec)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	feedback := lipgloss.NewStyle().
		Width(min(width-8, 70)).
		Foreground(theme.Text).
		Render(rec.Feedback)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, feedback))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key to continue..."))
	return b.String()
}

// starLine renders the component markers, e.g. "STAR: S+ T- A+ R-".
func starLine(rec evaluate.AnswerRecord) string {
	marks := []struct {
		label   string
		present bool
	}{
		{"S", rec.STAR.Situation},
		{"T", rec.STAR.Task},
		{"A", rec.STAR.Action},
		{"R", rec.STAR.Result},
	}
	parts := make([]string, len(marks))
	for i, m := range marks {
		sign := "-"
		if m.present {
			sign = "+"
		}
		parts[i] = m.label + sign
	}
	return "STAR: " + strings.Join(parts, " ")
}

// renderQuitConfirm renders the early-exit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End the interview early?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("You'll still get a report for the answers so far."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, end now"))
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

func formatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}

func formatTurn(current, total int) string {
	if current > total {
		current = total
	}
	return fmt.Sprintf("Q %d/%d", current, total)
}
