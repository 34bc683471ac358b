package session

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/mpandit/prepterm/internal/bank"
	"github.com/mpandit/prepterm/internal/evaluate"
)

// fakeClock advances a fixed step on every reading.
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func newFakeClock(step time.Duration) *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), step: step}
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

// scriptedProvider returns canned responses in order, repeating the
// last one forever.
type scriptedProvider struct {
	responses []response
	calls     int
}

type response struct {
	text string
	err  error
}

func (p *scriptedProvider) GetAnswer(_ context.Context, _ bank.Question) (string, error) {
	idx := p.calls
	if idx >= len(p.responses) {
		idx = len(p.responses) - 1
	}
	p.calls++
	r := p.responses[idx]
	return r.text, r.err
}

const goodAnswer = "At my previous company my task was to fix a slow endpoint; " +
	"I profiled it, optimized the SQL, and reduced latency by 40%, a result the whole team noticed."

func repeatAnswer(text string, n int) []response {
	out := make([]response, n)
	for i := range out {
		out[i] = response{text: text}
	}
	return out
}

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := NewEngine(Options{
		Bank:   bank.Default(),
		Config: cfg,
		Clock:  newFakeClock(time.Second).Now,
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func TestFullSessionReachesReporting(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	provider := &scriptedProvider{responses: repeatAnswer(goodAnswer, 1)}

	err := e.Run(context.Background(), BindJob("Backend Developer", "FinTechX", "senior backend python sql docker"), provider)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	s := e.State()
	if s.Phase != PhaseReporting {
		t.Fatalf("phase = %s, want reporting", s.Phase)
	}
	if s.TurnCount != DefaultConfig().MaxQuestions {
		t.Errorf("turn count = %d, want %d", s.TurnCount, DefaultConfig().MaxQuestions)
	}
	if s.NegotiationTurns != DefaultConfig().NegotiationTurns {
		t.Errorf("negotiation turns = %d, want %d", s.NegotiationTurns, DefaultConfig().NegotiationTurns)
	}
	if len(s.Transcript) != s.TurnCount+s.NegotiationTurns {
		t.Errorf("transcript length = %d, want %d", len(s.Transcript), s.TurnCount+s.NegotiationTurns)
	}
}

func TestCumulativeScoreIsAlwaysTheMean(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	if err := e.Begin(BindJob("Dev", "", "")); err != nil {
		t.Fatal(err)
	}

	// Answers of very different quality.
	answers := []string{goodAnswer, "", "I did stuff.", goodAnswer, "no comment"}
	for _, answer := range answers {
		q, ok := e.NextQuestion()
		if !ok {
			break
		}
		_ = q
		if _, err := e.Submit(answer, time.Second); err != nil {
			t.Fatal(err)
		}

		s := e.State()
		sum := 0.0
		for _, rec := range s.Transcript {
			sum += rec.Score
		}
		want := sum / float64(len(s.Transcript))
		if math.Abs(s.CumulativeScore-want) > 1e-9 {
			t.Fatalf("cumulative = %v, want mean %v after %d turns", s.CumulativeScore, want, len(s.Transcript))
		}
	}
}

func TestNoQuestionRepeatsWithinSession(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxQuestions = 100 // larger than the bank; drains it fully
	cfg.TimeBudget = 24 * time.Hour
	e := newTestEngine(t, cfg)
	provider := &scriptedProvider{responses: repeatAnswer(goodAnswer, 1)}

	if err := e.Run(context.Background(), BindJob("Dev", "", ""), provider); err != nil {
		t.Fatal(err)
	}

	seen := make(map[string]bool)
	for _, id := range e.State().AskedOrder {
		if seen[id] {
			t.Fatalf("question %q asked twice", id)
		}
		seen[id] = true
	}
}

func TestExhaustedBankEndsQuestioningEarly(t *testing.T) {
	tiny, err := bank.New([]bank.Question{
		{ID: "t1", Text: "one", Type: bank.TypeTechnical, Tier: bank.TierMedium, Topic: "x"},
		{ID: "t2", Text: "two", Type: bank.TypeTechnical, Tier: bank.TierMedium, Topic: "x"},
	})
	if err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.MaxQuestions = 10
	cfg.EnableNegotiation = true
	e, err := NewEngine(Options{Bank: tiny, Config: cfg, Clock: newFakeClock(time.Second).Now})
	if err != nil {
		t.Fatal(err)
	}

	provider := &scriptedProvider{responses: repeatAnswer(goodAnswer, 1)}
	if err := e.Run(context.Background(), BindJob("Dev", "", ""), provider); err != nil {
		t.Fatal(err)
	}

	s := e.State()
	// Both questions answered, no crash, session moved on with the
	// transcript intact. No salary questions exist in the tiny bank, so
	// negotiation drains immediately.
	if s.TurnCount != 2 {
		t.Errorf("turn count = %d, want 2", s.TurnCount)
	}
	if len(s.Transcript) != 2 {
		t.Errorf("transcript length = %d, want 2", len(s.Transcript))
	}
	if s.Phase != PhaseReporting {
		t.Errorf("phase = %s, want reporting", s.Phase)
	}
}

func TestInputFaultRetriesOnceThenSkips(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxQuestions = 2
	cfg.EnableNegotiation = false
	e := newTestEngine(t, cfg)

	fault := errors.New("input hiccup")
	provider := &scriptedProvider{responses: []response{
		{err: fault},         // turn 1, attempt 1
		{text: goodAnswer},   // turn 1, retry succeeds
		{err: fault},         // turn 2, attempt 1
		{err: fault},         // turn 2, retry fails -> skip
	}}

	if err := e.Run(context.Background(), BindJob("Dev", "", ""), provider); err != nil {
		t.Fatal(err)
	}

	s := e.State()
	if len(s.Transcript) != 2 {
		t.Fatalf("transcript length = %d, want 2", len(s.Transcript))
	}
	if s.Transcript[0].Skipped {
		t.Error("turn 1 should have recovered on retry")
	}
	second := s.Transcript[1]
	if !second.Skipped || second.Score != 0 || second.Feedback != evaluate.FeedbackSkipped {
		t.Errorf("turn 2 not degraded to a skip: %+v", second)
	}
}

func TestCancellationMovesToReportingWithTranscript(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxQuestions = 10
	e := newTestEngine(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	provider := &cancellingProvider{cancel: cancel, after: 2}

	if err := e.Run(ctx, BindJob("Dev", "", ""), provider); err != nil {
		t.Fatal(err)
	}

	s := e.State()
	if s.Phase != PhaseReporting {
		t.Errorf("phase = %s, want reporting", s.Phase)
	}
	if len(s.Transcript) != 2 {
		t.Errorf("transcript length = %d, want the 2 turns before cancel", len(s.Transcript))
	}
}

// cancellingProvider cancels the context after a fixed number of answers.
type cancellingProvider struct {
	cancel context.CancelFunc
	after  int
	calls  int
}

func (p *cancellingProvider) GetAnswer(_ context.Context, _ bank.Question) (string, error) {
	p.calls++
	if p.calls >= p.after {
		p.cancel()
	}
	return goodAnswer, nil
}

func TestTimeBudgetEndsQuestioning(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxQuestions = 100
	cfg.TimeBudget = 10 * time.Second
	cfg.EnableNegotiation = false
	e, err := NewEngine(Options{
		Bank:   bank.Default(),
		Config: cfg,
		Clock:  newFakeClock(3 * time.Second).Now, // each reading jumps 3s
	})
	if err != nil {
		t.Fatal(err)
	}

	provider := &scriptedProvider{responses: repeatAnswer(goodAnswer, 1)}
	if err := e.Run(context.Background(), BindJob("Dev", "", ""), provider); err != nil {
		t.Fatal(err)
	}

	s := e.State()
	if s.Phase != PhaseReporting {
		t.Errorf("phase = %s, want reporting", s.Phase)
	}
	if s.TurnCount == 0 || s.TurnCount >= 100 {
		t.Errorf("turn count = %d, want budget-limited small number", s.TurnCount)
	}
}

func TestNegotiationDisabledSkipsPhase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxQuestions = 1
	cfg.EnableNegotiation = false
	e := newTestEngine(t, cfg)

	provider := &scriptedProvider{responses: repeatAnswer(goodAnswer, 1)}
	if err := e.Run(context.Background(), BindJob("Dev", "", ""), provider); err != nil {
		t.Fatal(err)
	}

	s := e.State()
	if s.NegotiationTurns != 0 {
		t.Errorf("negotiation turns = %d, want 0", s.NegotiationTurns)
	}
	for _, rec := range s.Transcript {
		if rec.Negotiation {
			t.Error("transcript contains a negotiation record with negotiation disabled")
		}
	}
}

func TestNegotiationExcludedFromQuestionCounters(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	provider := &scriptedProvider{responses: repeatAnswer(goodAnswer, 1)}

	if err := e.Run(context.Background(), BindJob("Dev", "", ""), provider); err != nil {
		t.Fatal(err)
	}

	s := e.State()
	if s.NegotiationTurns == 0 {
		t.Fatal("expected negotiation turns to run")
	}
	if got := s.TechnicalCount + s.BehavioralCount; got != s.TurnCount {
		t.Errorf("type counters sum to %d, want the %d questioning turns", got, s.TurnCount)
	}
}

func TestDifficultyMovesAtMostOneTierPerTurn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxQuestions = 12
	cfg.TimeBudget = 24 * time.Hour
	e := newTestEngine(t, cfg)
	if err := e.Begin(BindJob("Dev", "", "")); err != nil {
		t.Fatal(err)
	}

	answers := []string{goodAnswer, "", goodAnswer, goodAnswer, "", "", goodAnswer, "x", goodAnswer, "", goodAnswer, goodAnswer}
	prev := e.State().Tier
	for _, answer := range answers {
		if _, ok := e.NextQuestion(); !ok {
			break
		}
		if _, err := e.Submit(answer, time.Second); err != nil {
			t.Fatal(err)
		}
		cur := e.State().Tier
		if diff := int(cur) - int(prev); diff < -1 || diff > 1 {
			t.Fatalf("tier jumped from %v to %v", prev, cur)
		}
		if cur != cur.Clamp() {
			t.Fatalf("tier %v outside tier set", cur)
		}
		prev = cur
	}
}

func TestBeginTwiceFails(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	if err := e.Begin(BindJob("Dev", "", "")); err != nil {
		t.Fatal(err)
	}
	if err := e.Begin(BindJob("Dev", "", "")); err == nil {
		t.Error("expected error on second Begin")
	}
}

func TestCompleteRequiresReportingPhase(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	if err := e.Complete(); err == nil {
		t.Fatal("Complete in intro phase should fail")
	}

	provider := &scriptedProvider{responses: repeatAnswer(goodAnswer, 1)}
	if err := e.Run(context.Background(), BindJob("Dev", "", ""), provider); err != nil {
		t.Fatal(err)
	}
	if err := e.Complete(); err != nil {
		t.Fatalf("Complete after run: %v", err)
	}
	if !e.State().Terminal() {
		t.Error("session not terminal after Complete")
	}
	if err := e.Complete(); err == nil {
		t.Error("expected error on second Complete")
	}
}
