// Package evaluate scores interview answers against the STAR rubric
// (Situation, Task, Action, Result) using keyword and structure
// heuristics. Evaluation is total and deterministic: the same
// (question, answer, tier) input always produces the same record, and
// no input produces an error.
package evaluate

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mpandit/prepterm/internal/bank"
)

// Feedback strings with fixed wording relied on by the session engine.
const (
	FeedbackNoAnswer = "no answer provided"
	FeedbackSkipped  = "skipped"
)

// Confidence buckets an answer score into a coarse quality band.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// STARUsage records which STAR components were detected in an answer.
type STARUsage struct {
	Situation bool
	Task      bool
	Action    bool
	Result    bool
}

// Count returns the number of detected components (0-4).
func (u STARUsage) Count() int {
	n := 0
	for _, present := range []bool{u.Situation, u.Task, u.Action, u.Result} {
		if present {
			n++
		}
	}
	return n
}

// Missing returns the display names of the absent components, in
// S-T-A-R order.
func (u STARUsage) Missing() []string {
	var missing []string
	if !u.Situation {
		missing = append(missing, "Situation")
	}
	if !u.Task {
		missing = append(missing, "Task")
	}
	if !u.Action {
		missing = append(missing, "Action")
	}
	if !u.Result {
		missing = append(missing, "Result")
	}
	return missing
}

// AnswerRecord is the immutable result of evaluating one answer.
type AnswerRecord struct {
	QuestionID string
	Answer     string
	STAR       STARUsage
	Score      float64 // 0-5
	Confidence Confidence
	Feedback   string
	Elapsed    time.Duration // set by the session engine, not the evaluator
	Skipped    bool          // true for turns degraded by input faults

	// Negotiation marks records from the salary negotiation phase.
	// Set by the session engine; negotiation turns do not drive
	// difficulty adjustment.
	Negotiation bool
}

// Evaluator scores answers. It is stateless and safe for concurrent use.
type Evaluator struct {
	cfg Config
}

// New creates an Evaluator with the given tuning.
func New(cfg Config) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Evaluate scores a single answer at the given tier. skills is the set
// of job-required skills bound at session start; it feeds the relevance
// sub-score and may be empty.
func (e *Evaluator) Evaluate(q bank.Question, answer string, tier bank.Tier, skills []string) AnswerRecord {
	rec := AnswerRecord{QuestionID: q.ID, Answer: answer}

	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		rec.Score = 0
		rec.Confidence = ConfidenceLow
		rec.Feedback = FeedbackNoAnswer
		return rec
	}

	lower := strings.ToLower(trimmed)
	rec.STAR = detectSTAR(lower, e.cfg.Keywords)

	starScore := float64(rec.STAR.Count()) / 4
	relevance := e.relevance(lower, skills)
	depth := e.depth(trimmed)

	w := e.cfg.Weights
	raw := w.STAR*starScore + w.Relevance*relevance + w.Depth*depth

	strictness, ok := e.cfg.Strictness[tier.Clamp()]
	if !ok {
		strictness = 1.0
	}

	score := raw * 5 * strictness
	score = math.Round(math.Min(math.Max(score, 0), 5)*100) / 100
	rec.Score = score
	rec.Confidence = e.confidence(score)
	rec.Feedback = e.feedback(rec, relevance, depth)
	return rec
}

// SkippedRecord builds the record for a turn abandoned after repeated
// input faults: minimum score, fixed feedback, never an error.
func SkippedRecord(questionID string, elapsed time.Duration) AnswerRecord {
	return AnswerRecord{
		QuestionID: questionID,
		Score:      0,
		Confidence: ConfidenceLow,
		Feedback:   FeedbackSkipped,
		Elapsed:    elapsed,
		Skipped:    true,
	}
}

// detectSTAR runs keyword detection for each component over the
// lowercased answer.
func detectSTAR(lower string, kw KeywordSets) STARUsage {
	return STARUsage{
		Situation: containsAny(lower, kw.Situation),
		Task:      containsAny(lower, kw.Task),
		Action:    containsAny(lower, kw.Action),
		Result:    containsAny(lower, kw.Result),
	}
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// relevance returns 1.0 if any bound skill appears in the answer, the
// configured minimum otherwise. With no skills bound there is nothing to
// miss, so relevance is full.
func (e *Evaluator) relevance(lower string, skills []string) float64 {
	if len(skills) == 0 {
		return 1.0
	}
	for _, skill := range skills {
		if skill == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(skill)) {
			return 1.0
		}
	}
	return e.cfg.MinRelevance
}

// depth saturates at 1.0 once the answer reaches the target word count.
func (e *Evaluator) depth(answer string) float64 {
	words := len(strings.Fields(answer))
	target := e.cfg.DepthTargetWords
	if target <= 0 || words >= target {
		return 1.0
	}
	return float64(words) / float64(target)
}

func (e *Evaluator) confidence(score float64) Confidence {
	switch {
	case score >= e.cfg.HighBand:
		return ConfidenceHigh
	case score >= e.cfg.MidBand:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// feedback builds the qualitative feedback string, keyed to the missing
// or weak parts of the answer.
func (e *Evaluator) feedback(rec AnswerRecord, relevance, depth float64) string {
	var lines []string

	if missing := rec.STAR.Missing(); len(missing) > 0 {
		lines = append(lines, fmt.Sprintf("Structure your answer using STAR: missing %s.", strings.Join(missing, ", ")))
		if !rec.STAR.Result {
			lines = append(lines, "State a measurable result, e.g. reduced latency, fewer incidents, time saved.")
		}
	} else {
		lines = append(lines, "You covered the situation, task, action, and result well.")
	}

	if relevance < 1.0 {
		lines = append(lines, "Connect your answer to the skills named in the job description.")
	}
	if depth < 0.7 {
		lines = append(lines, "Add more detail: concrete examples and numbers strengthen the story.")
	}

	switch rec.Confidence {
	case ConfidenceHigh:
		lines = append(lines, "Strong answer: well structured, relevant, and detailed.")
	case ConfidenceMedium:
		lines = append(lines, "Decent answer; work on the points above to reach the top band.")
	default:
		lines = append(lines, "This answer needs work: revisit the STAR method before the next question.")
	}

	return strings.Join(lines, "\n")
}

// CoverageSummary renders the component presence flags in the fixed
// "S=Present, T=Missing, ..." wire format used in transcripts.
func CoverageSummary(u STARUsage) string {
	parts := []struct {
		label   string
		present bool
	}{
		{"S", u.Situation},
		{"T", u.Task},
		{"A", u.Action},
		{"R", u.Result},
	}
	out := make([]string, len(parts))
	for i, p := range parts {
		state := "Missing"
		if p.present {
			state = "Present"
		}
		out[i] = p.label + "=" + state
	}
	return strings.Join(out, ", ")
}
