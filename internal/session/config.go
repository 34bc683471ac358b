package session

import (
	"fmt"
	"time"

	"github.com/mpandit/prepterm/internal/bank"
	"github.com/mpandit/prepterm/internal/difficulty"
	"github.com/mpandit/prepterm/internal/evaluate"
)

// Config holds the recognized session options.
type Config struct {
	// MaxQuestions is the questioning-phase turn budget.
	MaxQuestions int

	// TimeBudget is the cumulative session time budget, checked at
	// turn boundaries.
	TimeBudget time.Duration

	// StartingTier is the difficulty tier for the first turn.
	StartingTier bank.Tier

	// EnableNegotiation controls whether the salary negotiation phase
	// runs. When false the session moves straight to reporting.
	EnableNegotiation bool

	// NegotiationTurns is the fixed number of negotiation exchanges.
	NegotiationTurns int

	// TypeSchedule is the repeating question-type cycle for the
	// questioning phase. The schedule position lives in SessionState.
	TypeSchedule []bank.QuestionType

	// Evaluator and Difficulty expose the scoring and tier-adjustment
	// tuning knobs.
	Evaluator  evaluate.Config
	Difficulty difficulty.Config
}

// DefaultConfig returns the standard session options: five questions in
// fifteen minutes, starting at medium, technical-heavy with a
// behavioral checkpoint every third question, negotiation enabled.
func DefaultConfig() Config {
	return Config{
		MaxQuestions:      5,
		TimeBudget:        15 * time.Minute,
		StartingTier:      bank.TierMedium,
		EnableNegotiation: true,
		NegotiationTurns:  2,
		TypeSchedule: []bank.QuestionType{
			bank.TypeTechnical,
			bank.TypeTechnical,
			bank.TypeBehavioral,
		},
		Evaluator:  evaluate.DefaultConfig(),
		Difficulty: difficulty.DefaultConfig(),
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c Config) Validate() error {
	if c.MaxQuestions <= 0 {
		return fmt.Errorf("max_questions must be positive, got %d", c.MaxQuestions)
	}
	if c.TimeBudget <= 0 {
		return fmt.Errorf("time_budget must be positive, got %s", c.TimeBudget)
	}
	if c.StartingTier != c.StartingTier.Clamp() {
		return fmt.Errorf("starting_difficulty out of range: %d", c.StartingTier)
	}
	if c.EnableNegotiation && c.NegotiationTurns <= 0 {
		return fmt.Errorf("negotiation_turns must be positive when negotiation is enabled, got %d", c.NegotiationTurns)
	}
	if len(c.TypeSchedule) == 0 {
		return fmt.Errorf("question_type_schedule is empty")
	}
	for i, qtype := range c.TypeSchedule {
		if qtype != bank.TypeTechnical && qtype != bank.TypeBehavioral {
			return fmt.Errorf("question_type_schedule[%d]: unknown type %q", i, qtype)
		}
	}
	return nil
}
