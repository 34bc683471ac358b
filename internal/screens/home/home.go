package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mpandit/prepterm/internal/bank"
	"github.com/mpandit/prepterm/internal/router"
	"github.com/mpandit/prepterm/internal/screen"
	"github.com/mpandit/prepterm/internal/screens/history"
	"github.com/mpandit/prepterm/internal/screens/setup"
	"github.com/mpandit/prepterm/internal/session"
	"github.com/mpandit/prepterm/internal/store"
	"github.com/mpandit/prepterm/internal/ui/components"
	"github.com/mpandit/prepterm/internal/ui/theme"
)

// HomeScreen is the entry screen: start an interview, browse history,
// or quit.
type HomeScreen struct {
	menu         components.Menu
	sessionCount int
	lastAverage  float64
	hasHistory   bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(b *bank.Bank, cfg session.Config, repo *store.TranscriptRepo) *HomeScreen {
	h := &HomeScreen{}

	if repo != nil {
		if sessions, err := repo.ListSessions(context.Background(), 1); err == nil && len(sessions) > 0 {
			h.hasHistory = true
			h.lastAverage = sessions[0].AverageScore
		}
		if all, err := repo.ListSessions(context.Background(), 0); err == nil {
			h.sessionCount = len(all)
		}
	}

	items := []components.MenuItem{
		{Label: "START INTERVIEW", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(b, cfg, repo)}
			}
		}},
		{Label: "HISTORY", Disabled: repo == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(repo)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := theme.Title.Width(width).Render("PrepTerm")
	subtitle := theme.Subtitle.Width(width).Render("Terminal mock interview coach")
	sections = append(sections, title+"\n"+subtitle)

	if h.sessionCount > 0 {
		stats := fmt.Sprintf("%d past sessions", h.sessionCount)
		if h.hasHistory {
			stats += fmt.Sprintf("   last average %.1f / 5", h.lastAverage)
		}
		sections = append(sections, lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(stats))
	}

	menu := lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View())
	sections = append(sections, menu)

	content := "\n\n" + strings.Join(sections, "\n\n")
	return content
}

func (h *HomeScreen) Title() string {
	return "Home"
}
