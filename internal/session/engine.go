// Package session drives one mock interview: the phase state machine,
// the question turn loop, and the session-owned state. The engine is
// headless; the TUI and the blocking Run loop are both thin drivers
// over the same step API.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mpandit/prepterm/internal/bank"
	"github.com/mpandit/prepterm/internal/difficulty"
	"github.com/mpandit/prepterm/internal/evaluate"
	"github.com/mpandit/prepterm/internal/selector"
)

// AnswerProvider supplies the candidate's answer for a question. The
// call may block; text may be empty. An error is treated as a transient
// input fault.
type AnswerProvider interface {
	GetAnswer(ctx context.Context, q bank.Question) (string, error)
}

// TranscriptSink receives completed turns for append-only persistence.
// The engine never reads it back, and sink failures never fail a turn.
type TranscriptSink interface {
	AppendTurn(ctx context.Context, sessionID string, turn int, q bank.Question, rec evaluate.AnswerRecord) error
}

// Options configures an Engine.
type Options struct {
	// Bank is the question catalog. Required.
	Bank *bank.Bank

	// Config holds the session options; zero value means DefaultConfig.
	Config Config

	// Sink optionally persists turns as they complete.
	Sink TranscriptSink

	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

// Engine owns the session state machine. It is not safe for concurrent
// use; each session gets its own engine.
type Engine struct {
	bank  *bank.Bank
	cfg   Config
	eval  *evaluate.Evaluator
	ctrl  *difficulty.Controller
	sink  TranscriptSink
	clock func() time.Time

	state   *SessionState
	current *bank.Question // question awaiting an answer, nil between turns
}

// NewEngine validates the options and creates an engine in the intro
// phase.
func NewEngine(opts Options) (*Engine, error) {
	if opts.Bank == nil {
		return nil, errors.New("session: nil bank")
	}
	cfg := opts.Config
	if cfg.MaxQuestions == 0 && cfg.TimeBudget == 0 {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}
	// The controller starts where the session starts.
	cfg.Difficulty.Start = cfg.StartingTier

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Engine{
		bank:  opts.Bank,
		cfg:   cfg,
		eval:  evaluate.New(cfg.Evaluator),
		ctrl:  difficulty.New(cfg.Difficulty),
		sink:  opts.Sink,
		clock: clock,
		state: newSessionState(uuid.NewString(), cfg),
	}, nil
}

// State returns the session state. Callers must treat it as read-only;
// the engine is the single writer.
func (e *Engine) State() *SessionState {
	return e.state
}

// Config returns the effective session configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Begin binds the job parameters and moves Intro -> Questioning. It is
// a no-op error to begin twice: phases never rewind.
func (e *Engine) Begin(job Job) error {
	if e.state.Phase != PhaseIntro {
		return fmt.Errorf("session: Begin in phase %s", e.state.Phase)
	}
	e.state.Job = job
	e.state.Phase = PhaseQuestioning
	e.state.StartTime = e.clock()
	return nil
}

// NextQuestion advances the state machine to the next turn and returns
// the question to present. ok is false once the interview portion is
// over and the session has moved to the reporting phase; the engine
// handles the Questioning -> SalaryNegotiation transition internally.
func (e *Engine) NextQuestion() (bank.Question, bool) {
	for {
		switch e.state.Phase {
		case PhaseQuestioning:
			if q, ok := e.nextInterviewQuestion(); ok {
				return q, true
			}
		case PhaseNegotiation:
			if q, ok := e.nextNegotiationQuestion(); ok {
				return q, true
			}
		default:
			return bank.Question{}, false
		}
	}
}

// nextInterviewQuestion runs the questioning-phase exit tests, then
// selects a question. Returns ok=false after transitioning out of the
// phase.
func (e *Engine) nextInterviewQuestion() (bank.Question, bool) {
	s := e.state
	switch {
	case s.Cancelled:
		// User quit: straight to reporting with the transcript so far.
		s.Phase = PhaseReporting
		return bank.Question{}, false
	case s.TurnCount >= e.cfg.MaxQuestions,
		s.Elapsed(e.clock()) >= s.TimeBudget:
		e.enterNegotiation()
		return bank.Question{}, false
	}

	desired := e.cfg.TypeSchedule[s.ScheduleIndex%len(e.cfg.TypeSchedule)]
	q, err := selector.SelectNext(e.bank, s.AskedIDs, s.Tier, desired)
	if errors.Is(err, selector.ErrExhaustedBank) {
		// Not a failure: the bank ran dry, end questioning early.
		e.enterNegotiation()
		return bank.Question{}, false
	}

	s.markAsked(q)
	s.ScheduleIndex++
	e.current = &q
	return q, true
}

// nextNegotiationQuestion serves the fixed negotiation exchanges.
func (e *Engine) nextNegotiationQuestion() (bank.Question, bool) {
	s := e.state
	if s.Cancelled || s.NegotiationTurns >= e.cfg.NegotiationTurns {
		s.Phase = PhaseReporting
		return bank.Question{}, false
	}

	q, err := selector.SelectSalary(e.bank, s.AskedIDs)
	if errors.Is(err, selector.ErrExhaustedBank) {
		s.Phase = PhaseReporting
		return bank.Question{}, false
	}

	s.markAsked(q)
	e.current = &q
	return q, true
}

// enterNegotiation transitions out of questioning, skipping negotiation
// entirely when disabled by configuration.
func (e *Engine) enterNegotiation() {
	if e.cfg.EnableNegotiation {
		e.state.Phase = PhaseNegotiation
	} else {
		e.state.Phase = PhaseReporting
	}
}

// Submit evaluates the answer to the current question, folds the record
// into the session, and lets the difficulty controller pick the tier
// for the next turn. elapsed is the time the candidate took.
func (e *Engine) Submit(answer string, elapsed time.Duration) (evaluate.AnswerRecord, error) {
	q := e.current
	if q == nil {
		return evaluate.AnswerRecord{}, errors.New("session: Submit with no question outstanding")
	}
	e.current = nil

	rec := e.eval.Evaluate(*q, answer, e.state.Tier, e.state.Job.Skills)
	rec.Elapsed = elapsed
	e.finishTurn(*q, rec)
	return rec, nil
}

// Skip abandons the current question after repeated input faults,
// recording a zero-score turn so the session keeps moving.
func (e *Engine) Skip(elapsed time.Duration) (evaluate.AnswerRecord, error) {
	q := e.current
	if q == nil {
		return evaluate.AnswerRecord{}, errors.New("session: Skip with no question outstanding")
	}
	e.current = nil

	rec := evaluate.SkippedRecord(q.ID, elapsed)
	e.finishTurn(*q, rec)
	return rec, nil
}

// finishTurn appends the record, advances counters, adjusts difficulty,
// and hands the turn to the sink.
func (e *Engine) finishTurn(q bank.Question, rec evaluate.AnswerRecord) {
	s := e.state

	if s.Phase == PhaseNegotiation {
		rec.Negotiation = true
		s.appendRecord(rec)
		s.NegotiationTurns++
	} else {
		s.appendRecord(rec)
		s.TurnCount++
		// Tier changes only between questioning turns.
		s.Tier = e.ctrl.Next(s.Tier, s.ScoreHistory())
	}

	if e.sink != nil {
		// Append-only telemetry; a sink fault must not break the turn.
		_ = e.sink.AppendTurn(context.Background(), s.ID, len(s.Transcript), q, rec)
	}
}

// Cancel requests an early end. It takes effect at the next turn
// boundary; the current turn is never interrupted.
func (e *Engine) Cancel() {
	e.state.Cancelled = true
}

// Complete moves Reporting -> Done once the caller has generated the
// final report.
func (e *Engine) Complete() error {
	if e.state.Phase != PhaseReporting {
		return fmt.Errorf("session: Complete in phase %s", e.state.Phase)
	}
	e.state.Phase = PhaseDone
	return nil
}

// Run drives a whole session against a blocking answer provider: bind
// the job, loop turns until a budget trips or the bank drains, then
// leave the session in the reporting phase. A provider error is retried
// once; a second failure degrades the turn to a skip. Context
// cancellation is honored at turn boundaries only.
func (e *Engine) Run(ctx context.Context, job Job, provider AnswerProvider) error {
	if provider == nil {
		return errors.New("session: nil answer provider")
	}
	if err := e.Begin(job); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			e.Cancel()
		}

		q, ok := e.NextQuestion()
		if !ok {
			return nil
		}

		started := e.clock()
		answer, err := provider.GetAnswer(ctx, q)
		if err != nil {
			// One retry for transient input faults.
			answer, err = provider.GetAnswer(ctx, q)
		}

		elapsed := e.clock().Sub(started)
		if err != nil {
			if _, skipErr := e.Skip(elapsed); skipErr != nil {
				return skipErr
			}
			continue
		}
		if _, subErr := e.Submit(answer, elapsed); subErr != nil {
			return subErr
		}
	}
}
