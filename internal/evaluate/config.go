package evaluate

import "github.com/mpandit/prepterm/internal/bank"

// Weights controls how the sub-scores combine into the overall 0-5 score.
// The three weights should sum to 1.0.
type Weights struct {
	// STAR is the weight of STAR-component coverage.
	STAR float64

	// Relevance is the weight of job-skill relevance.
	Relevance float64

	// Depth is the weight of answer length/detail.
	Depth float64
}

// Config holds the evaluator's tuning parameters. These are product
// knobs, not structural constraints; DefaultConfig matches the shipped
// behavior and tests pin it down.
type Config struct {
	Weights Weights

	// Strictness scales the combined score per tier. Harder tiers use a
	// factor below 1.0 so identical STAR coverage scores lower.
	Strictness map[bank.Tier]float64

	// DepthTargetWords is the word count at which the depth sub-score
	// saturates at 1.0.
	DepthTargetWords int

	// MinRelevance is the relevance sub-score when none of the bound
	// job skills appear in the answer.
	MinRelevance float64

	// HighBand and MidBand are the confidence cutoffs: a score at or
	// above HighBand is high confidence, at or above MidBand is medium.
	HighBand float64
	MidBand  float64

	// Keywords holds the per-component STAR detection keyword lists.
	Keywords KeywordSets
}

// KeywordSets holds the detection keywords for each STAR component.
// Matching is case-insensitive substring matching; this is a structural
// heuristic and will misread figurative or non-English phrasing.
type KeywordSets struct {
	Situation []string
	Task      []string
	Action    []string
	Result    []string
}

// DefaultConfig returns the standard evaluator tuning.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			STAR:      0.70,
			Relevance: 0.15,
			Depth:     0.15,
		},
		Strictness: map[bank.Tier]float64{
			bank.TierEasy:   1.05,
			bank.TierMedium: 1.00,
			bank.TierHard:   0.90,
		},
		DepthTargetWords: 80,
		MinRelevance:     0.5,
		HighBand:         4.0,
		MidBand:          2.8,
		Keywords: KeywordSets{
			Situation: []string{
				"situation", "context", "background", "scenario", "role",
				"previous", "company", "team", "project", "working on",
				"at the time", "we were",
			},
			Task: []string{
				"task", "goal", "responsibility", "responsible", "assigned",
				"tasked", "objective", "challenge", "needed to", "had to",
				"my job was",
			},
			Action: []string{
				"action", "implemented", "did", "used", "applied",
				"developed", "created", "built", "wrote", "designed",
				"profiled", "optimized", "fixed", "refactored", "debugged",
				"migrated", "handled",
			},
			Result: []string{
				"result", "impact", "outcome", "achieved", "improved",
				"reduced", "increased", "saved", "shipped", "delivered",
				"cut", "%",
			},
		},
	}
}
