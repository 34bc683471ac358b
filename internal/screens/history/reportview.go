package history

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mpandit/prepterm/internal/router"
	"github.com/mpandit/prepterm/internal/screen"
	"github.com/mpandit/prepterm/internal/store"
	"github.com/mpandit/prepterm/internal/ui/layout"
	"github.com/mpandit/prepterm/internal/ui/theme"
)

// reportScreen renders a stored report body with simple scrolling.
type reportScreen struct {
	sessionID string
	row       store.ReportRow
	err       error
	offset    int
}

var _ screen.Screen = (*reportScreen)(nil)
var _ screen.KeyHintProvider = (*reportScreen)(nil)

func newReportScreen(sessionID string, row store.ReportRow, err error) *reportScreen {
	return &reportScreen{sessionID: sessionID, row: row, err: err}
}

func (r *reportScreen) Init() tea.Cmd {
	return nil
}

func (r *reportScreen) Title() string {
	return "Saved Report"
}

func (r *reportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (r *reportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			if r.offset > 0 {
				r.offset--
			}
		case "down", "j":
			r.offset++
		case "enter":
			return r, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return r, nil
}

func (r *reportScreen) View(width, height int) string {
	if r.err != nil {
		msg := "Error: " + r.err.Error()
		if errors.Is(r.err, store.ErrNotFound) {
			msg = "No report was saved for this session (it may have been abandoned)."
		}
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n" + msg)
	}

	lines := strings.Split(r.row.Body, "\n")
	if r.offset > len(lines)-1 {
		r.offset = len(lines) - 1
	}
	if r.offset < 0 {
		r.offset = 0
	}
	visible := lines[r.offset:]
	if height > 0 && len(visible) > height {
		visible = visible[:height]
	}

	body := theme.Body.Render(strings.Join(visible, "\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}
