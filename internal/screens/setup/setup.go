// Package setup collects the job parameters before an interview: role,
// company, and a free-form job description the session binds skills
// and seniority from.
package setup

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mpandit/prepterm/internal/bank"
	"github.com/mpandit/prepterm/internal/router"
	"github.com/mpandit/prepterm/internal/screen"
	"github.com/mpandit/prepterm/internal/screens/interview"
	"github.com/mpandit/prepterm/internal/session"
	"github.com/mpandit/prepterm/internal/store"
	"github.com/mpandit/prepterm/internal/ui/components"
	"github.com/mpandit/prepterm/internal/ui/layout"
	"github.com/mpandit/prepterm/internal/ui/theme"
)

// field indexes, in tab order.
const (
	fieldRole = iota
	fieldCompany
	fieldDescription
	fieldCount
)

// SetupScreen gathers the job parameters and launches the interview.
type SetupScreen struct {
	bank *bank.Bank
	cfg  session.Config
	repo *store.TranscriptRepo

	role        components.TextInput
	company     components.TextInput
	description components.TextArea
	focused     int
	errMsg      string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a new SetupScreen.
func New(b *bank.Bank, cfg session.Config, repo *store.TranscriptRepo) *SetupScreen {
	s := &SetupScreen{
		bank:        b,
		cfg:         cfg,
		repo:        repo,
		role:        components.NewTextInput("Role", "Backend Developer", 60),
		company:     components.NewTextInput("Company (optional)", "", 60),
		description: components.NewTextArea("Paste the job description here, or leave empty for a generic profile...", 70, 6),
	}
	s.description.Model.Blur()
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.role.Init()
}

func (s *SetupScreen) Title() string {
	return "Interview Setup"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+S", Description: "Start interview"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab":
			return s, s.focusField((s.focused + 1) % fieldCount)
		case "shift+tab":
			return s, s.focusField((s.focused + fieldCount - 1) % fieldCount)
		case "ctrl+s":
			return s.startInterview()
		case "enter":
			// Enter advances through the single-line fields; in the
			// description it inserts a newline as usual.
			if s.focused != fieldDescription {
				return s, s.focusField(s.focused + 1)
			}
		}
	}

	var cmd tea.Cmd
	switch s.focused {
	case fieldRole:
		s.role, cmd = s.role.Update(msg)
	case fieldCompany:
		s.company, cmd = s.company.Update(msg)
	case fieldDescription:
		s.description, cmd = s.description.Update(msg)
	}
	return s, cmd
}

// focusField moves keyboard focus to the given field.
func (s *SetupScreen) focusField(idx int) tea.Cmd {
	s.role.Blur()
	s.company.Blur()
	s.description.Model.Blur()

	s.focused = idx
	switch idx {
	case fieldRole:
		return s.role.Focus()
	case fieldCompany:
		return s.company.Focus()
	default:
		return s.description.Model.Focus()
	}
}

// startInterview binds the job and replaces this screen with the
// running interview.
func (s *SetupScreen) startInterview() (screen.Screen, tea.Cmd) {
	job := session.BindJob(
		strings.TrimSpace(s.role.Value()),
		strings.TrimSpace(s.company.Value()),
		s.description.Value(),
	)

	iv, err := interview.New(s.bank, s.cfg, s.repo, job)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: iv}
	}
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Who are you interviewing as?"))
	b.WriteString("\n\n")

	fields := []string{
		s.role.View(),
		s.company.View(),
		theme.Body.Render("Job description") + "\n" + s.description.View(),
	}
	for i, field := range fields {
		marker := "  "
		if i == s.focused {
			marker = lipgloss.NewStyle().Foreground(theme.Primary).Render("> ")
		}
		block := lipgloss.JoinHorizontal(lipgloss.Top, marker, field)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
		b.WriteString("\n\n")
	}

	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("Error: " + s.errMsg))
		b.WriteString("\n")
	}

	return b.String()
}
