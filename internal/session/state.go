package session

import (
	"time"

	"github.com/mpandit/prepterm/internal/bank"
	"github.com/mpandit/prepterm/internal/evaluate"
)

// Phase is the current interview phase. Phases only move forward; a
// phase is never revisited once left.
type Phase int

const (
	PhaseIntro       Phase = iota // Binding job parameters
	PhaseQuestioning              // Turn loop: select, answer, evaluate
	PhaseNegotiation              // Fixed salary negotiation exchanges
	PhaseReporting                // Final report being generated
	PhaseDone                     // Terminal; session is read-only
)

// String returns the phase display name.
func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhaseQuestioning:
		return "questioning"
	case PhaseNegotiation:
		return "salary-negotiation"
	case PhaseReporting:
		return "reporting"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// SessionState tracks the runtime state of one interview session. It
// has a single writer (the engine) and is never mutated concurrently;
// other components receive it read-only.
type SessionState struct {
	// ID is the UUID for this session.
	ID string

	// Job holds the role parameters bound during the intro phase.
	Job Job

	// Phase is the current phase.
	Phase Phase

	// Tier is the current difficulty tier. Only the difficulty
	// controller changes it, and only between questioning turns.
	Tier bank.Tier

	// AskedIDs is the set of asked question IDs.
	AskedIDs map[string]bool

	// AskedOrder preserves insertion order for the transcript.
	AskedOrder []string

	// Transcript is the ordered sequence of answer records, one per
	// completed turn (negotiation turns included).
	Transcript []evaluate.AnswerRecord

	// CumulativeScore is the arithmetic mean of all transcript scores,
	// maintained on every append.
	CumulativeScore float64

	// TurnCount is the number of completed questioning turns.
	TurnCount int

	// ScheduleIndex is the position in the question-type schedule.
	ScheduleIndex int

	// TechnicalCount and BehavioralCount track asked questions by type.
	TechnicalCount  int
	BehavioralCount int

	// NegotiationTurns is the number of completed negotiation exchanges.
	NegotiationTurns int

	// StartTime is when the questioning phase began.
	StartTime time.Time

	// TimeBudget is the cumulative session budget.
	TimeBudget time.Duration

	// Cancelled is set when the user quits; it takes effect at the
	// next turn boundary.
	Cancelled bool
}

// newSessionState initializes the mutable state for one session.
func newSessionState(id string, cfg Config) *SessionState {
	return &SessionState{
		ID:         id,
		Phase:      PhaseIntro,
		Tier:       cfg.StartingTier.Clamp(),
		AskedIDs:   make(map[string]bool),
		TimeBudget: cfg.TimeBudget,
	}
}

// appendRecord adds a record to the transcript and refreshes the
// cumulative mean.
func (s *SessionState) appendRecord(rec evaluate.AnswerRecord) {
	s.Transcript = append(s.Transcript, rec)

	sum := 0.0
	for _, r := range s.Transcript {
		sum += r.Score
	}
	s.CumulativeScore = sum / float64(len(s.Transcript))
}

// markAsked records a question as asked, preserving order. The type
// counters describe the questioning phase only; negotiation questions
// are tracked by NegotiationTurns instead.
func (s *SessionState) markAsked(q bank.Question) {
	s.AskedIDs[q.ID] = true
	s.AskedOrder = append(s.AskedOrder, q.ID)
	if q.IsNegotiation() {
		return
	}
	switch q.Type {
	case bank.TypeTechnical:
		s.TechnicalCount++
	case bank.TypeBehavioral:
		s.BehavioralCount++
	}
}

// ScoreHistory returns the questioning-phase scores in turn order.
// Negotiation turns are excluded: difficulty only reacts to the
// questioning loop.
func (s *SessionState) ScoreHistory() []float64 {
	history := make([]float64, 0, len(s.Transcript))
	for _, rec := range s.Transcript {
		if rec.Negotiation {
			continue
		}
		history = append(history, rec.Score)
	}
	return history
}

// Elapsed returns the time spent since the questioning phase began.
func (s *SessionState) Elapsed(now time.Time) time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	return now.Sub(s.StartTime)
}

// Terminal reports whether the session has reached its final phase.
func (s *SessionState) Terminal() bool {
	return s.Phase == PhaseDone
}
