// Package history lists past interview sessions from the store and
// shows their saved reports.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mpandit/prepterm/internal/router"
	"github.com/mpandit/prepterm/internal/screen"
	"github.com/mpandit/prepterm/internal/store"
	"github.com/mpandit/prepterm/internal/ui/layout"
	"github.com/mpandit/prepterm/internal/ui/theme"
)

// sessionsLoadedMsg delivers the session listing.
type sessionsLoadedMsg struct {
	Sessions []store.SessionSummary
	Err      error
}

// HistoryScreen lists past sessions, newest first.
type HistoryScreen struct {
	repo     *store.TranscriptRepo
	sessions []store.SessionSummary
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo *store.TranscriptRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo}
}

func (h *HistoryScreen) Init() tea.Cmd {
	repo := h.repo
	return func() tea.Msg {
		sessions, err := repo.ListSessions(context.Background(), 50)
		return sessionsLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (h *HistoryScreen) Title() string {
	return "History"
}

func (h *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "View report"},
		{Key: "Esc", Description: "Back"},
	}
}

func (h *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionsLoadedMsg:
		h.loaded = true
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.sessions = msg.Sessions
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if h.selected > 0 {
				h.selected--
			}
		case "down", "j":
			if h.selected < len(h.sessions)-1 {
				h.selected++
			}
		case "enter":
			if h.selected < len(h.sessions) {
				return h, h.openReport(h.sessions[h.selected].ID)
			}
		}
	}
	return h, nil
}

// openReport loads the stored report and pushes the viewer.
func (h *HistoryScreen) openReport(sessionID string) tea.Cmd {
	repo := h.repo
	return func() tea.Msg {
		row, err := repo.SessionReport(context.Background(), sessionID)
		if err != nil {
			return router.PushScreenMsg{Screen: newReportScreen(sessionID, store.ReportRow{}, err)}
		}
		return router.PushScreenMsg{Screen: newReportScreen(sessionID, row, nil)}
	}
}

func (h *HistoryScreen) View(width, height int) string {
	if h.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\nError: " + h.errMsg)
	}
	if !h.loaded {
		return theme.Subtitle.Width(width).Render("\n\nLoading history...")
	}
	if len(h.sessions) == 0 {
		return theme.Subtitle.Width(width).Render("\n\nNo sessions yet. Run an interview first.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, s := range h.sessions {
		when := s.StartedAt.Local().Format("2006-01-02 15:04")
		status := "abandoned"
		if !s.FinishedAt.IsZero() {
			status = fmt.Sprintf("%.1f avg", s.AverageScore)
		}
		role := s.Role
		if s.Company != "" {
			role += " @ " + s.Company
		}
		line := fmt.Sprintf("%s  %-40s  %2d turns  %s", when, role, s.Turns, status)

		if i == h.selected {
			line = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("> " + line)
		} else {
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("  " + line)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	return b.String()
}
