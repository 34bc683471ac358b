// Package interview is the TUI driver for a live session: it presents
// questions, collects multi-line answers, shows per-answer feedback,
// and hands over to the summary screen once the report is ready.
package interview

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/mpandit/prepterm/internal/bank"
	"github.com/mpandit/prepterm/internal/evaluate"
	"github.com/mpandit/prepterm/internal/report"
	"github.com/mpandit/prepterm/internal/router"
	"github.com/mpandit/prepterm/internal/screen"
	"github.com/mpandit/prepterm/internal/screens/summary"
	"github.com/mpandit/prepterm/internal/session"
	"github.com/mpandit/prepterm/internal/store"
	"github.com/mpandit/prepterm/internal/ui/components"
	"github.com/mpandit/prepterm/internal/ui/layout"
)

// InterviewScreen runs one session turn loop over the headless engine.
type InterviewScreen struct {
	engine *session.Engine
	repo   *store.TranscriptRepo

	current       bank.Question
	hasQuestion   bool
	questionStart time.Time
	answer        components.TextArea

	showingFeedback bool
	lastRecord      evaluate.AnswerRecord
	quitConfirm     bool
	finishing       bool
	elapsed         time.Duration
	errMsg          string
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)
var _ screen.StatusProvider = (*InterviewScreen)(nil)
var _ screen.EscOwner = (*InterviewScreen)(nil)

// OwnsEsc marks that Esc opens the quit confirmation instead of
// popping the screen.
func (s *InterviewScreen) OwnsEsc() {}

// New builds the engine, binds the job, and records the session start.
func New(b *bank.Bank, cfg session.Config, repo *store.TranscriptRepo, job session.Job) (*InterviewScreen, error) {
	opts := session.Options{Bank: b, Config: cfg}
	if repo != nil {
		opts.Sink = repo
	}
	engine, err := session.NewEngine(opts)
	if err != nil {
		return nil, err
	}
	if err := engine.Begin(job); err != nil {
		return nil, err
	}
	if repo != nil {
		// History survives even if the session is abandoned mid-way.
		_ = repo.BeginSession(context.Background(), engine.State())
	}

	return &InterviewScreen{
		engine: engine,
		repo:   repo,
		answer: components.NewTextArea("Type your answer. STAR structure helps: situation, task, action, result.", 70, 8),
	}, nil
}

func (s *InterviewScreen) Init() tea.Cmd {
	s.advance()
	return tea.Batch(s.answer.Init(), tickCmd())
}

func (s *InterviewScreen) Title() string {
	state := s.engine.State()
	switch state.Phase {
	case session.PhaseNegotiation:
		return "Salary Negotiation"
	default:
		return "Interview"
	}
}

// Status renders the header's right side: turn, tier, and running mean.
func (s *InterviewScreen) Status() string {
	state := s.engine.State()
	if state.Phase == session.PhaseNegotiation {
		return "negotiation"
	}

	var b strings.Builder
	b.WriteString(formatTurn(state.TurnCount+1, s.engine.Config().MaxQuestions))
	b.WriteString("  ")
	b.WriteString(state.Tier.String())
	if len(state.Transcript) > 0 {
		b.WriteString("  avg ")
		b.WriteString(formatScore(state.CumulativeScore))
	}
	return b.String()
}

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.quitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End interview"},
			{Key: "N", Description: "Keep going"},
		}
	case s.showingFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Next question"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Ctrl+S", Description: "Submit answer"},
			{Key: "Esc", Description: "End early"},
		}
	}
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick()

	case feedbackDoneMsg:
		return s.handleFeedbackDone()

	case interviewDoneMsg:
		return s.handleDone(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.hasQuestion && !s.showingFeedback && !s.quitConfirm {
		var cmd tea.Cmd
		s.answer, cmd = s.answer.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *InterviewScreen) handleTick() (screen.Screen, tea.Cmd) {
	state := s.engine.State()
	if state.Terminal() || state.Phase == session.PhaseReporting {
		return s, nil
	}
	s.elapsed = state.Elapsed(time.Now())
	return s, tickCmd()
}

func (s *InterviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	// The report is being written out; input no longer has anywhere
	// to go.
	if s.finishing {
		return s, nil
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			s.engine.Cancel()
			// The engine moves to reporting at the next turn boundary.
			s.hasQuestion = false
			return s, s.finish()
		case "n", "N", "esc":
			s.quitConfirm = false
			return s, nil
		}
		return s, nil
	}

	if s.showingFeedback {
		return s, func() tea.Msg { return feedbackDoneMsg{} }
	}

	switch key {
	case "esc":
		s.quitConfirm = true
		return s, nil
	case "ctrl+s":
		return s.submitAnswer()
	}

	if s.hasQuestion {
		var cmd tea.Cmd
		s.answer, cmd = s.answer.Update(msg)
		return s, cmd
	}
	return s, nil
}

// submitAnswer evaluates the current answer and shows the feedback
// overlay.
func (s *InterviewScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	if !s.hasQuestion {
		return s, nil
	}

	elapsed := time.Since(s.questionStart)
	rec, err := s.engine.Submit(s.answer.Value(), elapsed)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	s.lastRecord = rec
	s.showingFeedback = true
	s.hasQuestion = false
	return s, nil
}

func (s *InterviewScreen) handleFeedbackDone() (screen.Screen, tea.Cmd) {
	s.showingFeedback = false
	if !s.advance() {
		return s, s.finish()
	}
	return s, s.answer.Init()
}

// advance pulls the next question from the engine. Returns false once
// the interview portion is over.
func (s *InterviewScreen) advance() bool {
	q, ok := s.engine.NextQuestion()
	if !ok {
		s.hasQuestion = false
		return false
	}
	s.current = q
	s.hasQuestion = true
	s.questionStart = time.Now()
	s.answer.Reset()
	return true
}

// finish drives the engine into its terminal phase and generates the
// report, all on the update path. The returned command only persists
// the finished report: the engine is not safe for concurrent use, so
// nothing in the command's goroutine may touch it.
func (s *InterviewScreen) finish() tea.Cmd {
	s.finishing = true

	// Cancelled sessions still need the phase transition to run.
	if _, ok := s.engine.NextQuestion(); ok {
		return func() tea.Msg { return interviewDoneMsg{Err: errUnfinished} }
	}

	rep, err := report.Generate(s.engine.State())
	if err != nil {
		return func() tea.Msg { return interviewDoneMsg{Err: err} }
	}

	sessionID := s.engine.State().ID
	_ = s.engine.Complete()

	repo := s.repo
	return func() tea.Msg {
		if repo != nil {
			ctx := context.Background()
			var body strings.Builder
			_ = rep.WriteText(&body)
			_ = repo.SaveReport(ctx, store.ReportRow{
				SessionID:    sessionID,
				CreatedAt:    time.Now(),
				AverageScore: rep.AverageScore,
				Confidence:   string(rep.OverallConfidence),
				STARCoverage: rep.STARCoverage,
				Body:         body.String(),
			})
			_ = repo.FinishSession(ctx, sessionID, time.Now())
		}
		return interviewDoneMsg{Report: rep}
	}
}

func (s *InterviewScreen) handleDone(msg interviewDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.finishing = false
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(msg.Report)}
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
