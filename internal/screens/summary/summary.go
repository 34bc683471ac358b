package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mpandit/prepterm/internal/report"
	"github.com/mpandit/prepterm/internal/router"
	"github.com/mpandit/prepterm/internal/screen"
	"github.com/mpandit/prepterm/internal/ui/components"
	"github.com/mpandit/prepterm/internal/ui/layout"
	"github.com/mpandit/prepterm/internal/ui/theme"
)

// SummaryScreen displays the final interview report.
type SummaryScreen struct {
	report *report.FinalReport
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(r *report.FinalReport) *SummaryScreen {
	return &SummaryScreen{report: r}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Interview Report"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.report
	if r == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Interview complete"))
	b.WriteString("\n")

	roleLine := fmt.Sprintf("%s (%s)", r.Role, r.Seniority)
	if r.Company != "" {
		roleLine += " at " + r.Company
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(roleLine))
	b.WriteString("\n\n")

	// Headline numbers.
	statsLine := fmt.Sprintf("Questions: %d (%d technical, %d behavioral)",
		r.TotalQuestions, r.TechnicalCount, r.BehavioralCount)
	if r.SkippedTurns > 0 {
		statsLine += fmt.Sprintf("   Skipped: %d", r.SkippedTurns)
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n")

	scoreLine := fmt.Sprintf("Average score: %.2f / 5   Confidence: %s", r.AverageScore, r.OverallConfidence)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.ScoreStyle(r.AverageScore).Render(scoreLine)))
	b.WriteString("\n\n")

	// STAR coverage bar.
	bar := components.NewProgressBar("STAR coverage", r.STARCoverage, true, min(width-8, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	b.WriteString(renderSection(width, "Strengths", r.Strengths, theme.Success))
	b.WriteString(renderSection(width, "Areas to improve", r.ImprovementAreas, theme.Warning))
	b.WriteString(renderSection(width, "Next steps", r.NextSteps, theme.Secondary))

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Negotiation")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(r.NegotiationOutcome)))
	b.WriteString("\n")

	return b.String()
}

// renderSection renders a titled bullet list, centered.
func renderSection(width int, title string, items []string, accent color.Color) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(title)))
	b.WriteString("\n")

	for _, item := range items {
		line := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render("  " + lipgloss.NewStyle().Foreground(accent).Render("*") + " " + item)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}
