// Package report derives the final interview report from a finished
// session. Generation is a pure function of the transcript: the same
// session always yields the same report.
package report

import (
	"errors"
	"fmt"

	"github.com/mpandit/prepterm/internal/evaluate"
	"github.com/mpandit/prepterm/internal/session"
)

// ErrPrematureReport is returned when a report is requested before the
// session reaches the reporting phase. This is a caller bug, surfaced
// loudly rather than papered over with a partial report.
var ErrPrematureReport = errors.New("report requested before the session finished")

// Presence-rate cutoffs for classifying STAR components.
const (
	strengthRate    = 0.75 // component present in at least this share of answers
	improvementRate = 0.40 // component present in at most this share of answers
)

// FinalReport is the read-only snapshot computed from a terminal
// session.
type FinalReport struct {
	Role      string
	Company   string
	Seniority session.Seniority

	TotalQuestions  int
	TechnicalCount  int
	BehavioralCount int
	SkippedTurns    int

	AverageScore      float64
	OverallConfidence evaluate.Confidence
	STARCoverage      float64 // 0-1 share of components present across answers

	Strengths        []string
	ImprovementAreas []string
	NextSteps        []string

	NegotiationOutcome string
}

// starComponent pairs a display name with its presence accessor.
var starComponents = []struct {
	name    string
	present func(evaluate.STARUsage) bool
}{
	{"Situation", func(u evaluate.STARUsage) bool { return u.Situation }},
	{"Task", func(u evaluate.STARUsage) bool { return u.Task }},
	{"Action", func(u evaluate.STARUsage) bool { return u.Action }},
	{"Result", func(u evaluate.STARUsage) bool { return u.Result }},
}

// nextStepsByComponent maps the weakest STAR component to targeted
// preparation guidance.
var nextStepsByComponent = map[string]string{
	"Situation": "Open each story with one sentence of context: where you were, what the system was, why it mattered.",
	"Task":      "State your specific goal or responsibility before describing what you did.",
	"Action":    "Describe the concrete steps you personally took, not what the team did in general.",
	"Result":    "Close every story with a measurable outcome: a number, a before/after, a shipped artifact.",
}

// Generate computes the final report. The session must have reached the
// reporting phase; earlier calls return ErrPrematureReport.
func Generate(s *session.SessionState) (*FinalReport, error) {
	if s.Phase < session.PhaseReporting {
		return nil, fmt.Errorf("%w: session is in phase %s", ErrPrematureReport, s.Phase)
	}

	// Negotiation exchanges are reported in their own section, not as
	// interview questions.
	interviewTurns := 0
	for _, rec := range s.Transcript {
		if !rec.Negotiation {
			interviewTurns++
		}
	}

	r := &FinalReport{
		Role:            s.Job.Role,
		Company:         s.Job.Company,
		Seniority:       s.Job.Seniority,
		TotalQuestions:  interviewTurns,
		TechnicalCount:  s.TechnicalCount,
		BehavioralCount: s.BehavioralCount,
	}

	if len(s.Transcript) == 0 {
		// Mean of an empty transcript is defined as zero.
		r.OverallConfidence = evaluate.ConfidenceLow
		r.ImprovementAreas = []string{"No questions were answered; complete a session to get feedback."}
		r.NextSteps = []string{"Run the interview again and answer at least one question."}
		r.NegotiationOutcome = "Not reached."
		return r, nil
	}

	r.AverageScore = s.CumulativeScore
	r.OverallConfidence = confidenceBand(r.AverageScore)

	scored := scoredRecords(s.Transcript)
	for _, rec := range s.Transcript {
		if rec.Skipped {
			r.SkippedTurns++
		}
	}

	rates := presenceRates(scored)
	r.STARCoverage = overallCoverage(rates)
	r.Strengths, r.ImprovementAreas = classifyComponents(rates)
	r.NextSteps = nextSteps(rates, r.AverageScore)
	r.NegotiationOutcome = negotiationOutcome(s.Transcript)
	return r, nil
}

// scoredRecords filters out skipped and negotiation turns: STAR
// statistics describe real interview answers only.
func scoredRecords(transcript []evaluate.AnswerRecord) []evaluate.AnswerRecord {
	var out []evaluate.AnswerRecord
	for _, rec := range transcript {
		if rec.Skipped || rec.Negotiation {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// presenceRates returns, per STAR component, the share of answers in
// which it was detected. With no scored answers all rates are zero.
func presenceRates(scored []evaluate.AnswerRecord) map[string]float64 {
	rates := make(map[string]float64, len(starComponents))
	if len(scored) == 0 {
		for _, c := range starComponents {
			rates[c.name] = 0
		}
		return rates
	}
	for _, c := range starComponents {
		count := 0
		for _, rec := range scored {
			if c.present(rec.STAR) {
				count++
			}
		}
		rates[c.name] = float64(count) / float64(len(scored))
	}
	return rates
}

// overallCoverage averages the component rates.
func overallCoverage(rates map[string]float64) float64 {
	sum := 0.0
	for _, c := range starComponents {
		sum += rates[c.name]
	}
	return sum / float64(len(starComponents))
}

// classifyComponents splits components into consistent strengths and
// consistent gaps, in fixed S-T-A-R order.
func classifyComponents(rates map[string]float64) (strengths, improvements []string) {
	for _, c := range starComponents {
		rate := rates[c.name]
		switch {
		case rate >= strengthRate:
			strengths = append(strengths, fmt.Sprintf("%s framing came through consistently.", c.name))
		case rate <= improvementRate:
			improvements = append(improvements, fmt.Sprintf("%s was missing from most answers.", c.name))
		}
	}
	return strengths, improvements
}

// nextSteps builds the templated guidance, leading with the weakest
// STAR component. Ties break in S-T-A-R order for determinism.
func nextSteps(rates map[string]float64, avg float64) []string {
	weakest := starComponents[0].name
	for _, c := range starComponents {
		if rates[c.name] < rates[weakest] {
			weakest = c.name
		}
	}

	steps := []string{nextStepsByComponent[weakest]}
	if avg < 2.8 {
		steps = append(steps, "Prepare two or three STAR stories in advance and rehearse them out loud.")
	}
	steps = append(steps, "Review the per-question feedback in the transcript for recurring patterns.")
	return steps
}

// negotiationOutcome summarizes the negotiation exchanges, if any ran.
func negotiationOutcome(transcript []evaluate.AnswerRecord) string {
	count := 0
	sum := 0.0
	for _, rec := range transcript {
		if rec.Negotiation {
			count++
			sum += rec.Score
		}
	}
	if count == 0 {
		return "Negotiation skipped."
	}

	avg := sum / float64(count)
	switch {
	case avg >= 4.0:
		return "Strong negotiation: you anchored a number and backed it with evidence."
	case avg >= 2.8:
		return "Reasonable negotiation; practice justifying your number with concrete impact."
	default:
		return "Negotiation needs work: state a range and tie it to the value you bring."
	}
}

// confidenceBand mirrors the evaluator's score bands for the overall
// rating.
func confidenceBand(avg float64) evaluate.Confidence {
	switch {
	case avg >= 4.0:
		return evaluate.ConfidenceHigh
	case avg >= 2.8:
		return evaluate.ConfidenceMedium
	default:
		return evaluate.ConfidenceLow
	}
}
