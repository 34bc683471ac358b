package evaluate

import (
	"strings"
	"testing"

	"github.com/mpandit/prepterm/internal/bank"
)

var testQuestion = bank.Question{
	ID:   "beh-med-mistake",
	Text: "Describe a mistake you made.",
	Type: bank.TypeBehavioral,
	Tier: bank.TierMedium,
}

const fullSTARAnswer = "I was on a team project, my task was to fix latency, " +
	"I profiled and optimized the query layer, and reduced p99 latency by 40%"

func TestFullSTARAnswerScoresTopBand(t *testing.T) {
	e := New(DefaultConfig())

	rec := e.Evaluate(testQuestion, fullSTARAnswer, bank.TierMedium, nil)

	want := STARUsage{Situation: true, Task: true, Action: true, Result: true}
	if rec.STAR != want {
		t.Errorf("STAR = %+v, want all present", rec.STAR)
	}
	if rec.Score < 4.0 {
		t.Errorf("Score = %.2f, want >= 4.0", rec.Score)
	}
	if rec.Confidence != ConfidenceHigh {
		t.Errorf("Confidence = %s, want high", rec.Confidence)
	}
}

func TestEmptyAnswerScoresZero(t *testing.T) {
	e := New(DefaultConfig())

	for _, tier := range bank.AllTiers() {
		for _, answer := range []string{"", "   ", "\n\t"} {
			rec := e.Evaluate(testQuestion, answer, tier, nil)
			if rec.Score != 0 {
				t.Errorf("tier %s: Score = %.2f, want 0", tier, rec.Score)
			}
			if rec.Feedback != FeedbackNoAnswer {
				t.Errorf("tier %s: Feedback = %q, want %q", tier, rec.Feedback, FeedbackNoAnswer)
			}
			if rec.STAR.Count() != 0 {
				t.Errorf("tier %s: STAR components detected in empty answer", tier)
			}
		}
	}
}

func TestHarderTierScoresLower(t *testing.T) {
	e := New(DefaultConfig())

	easy := e.Evaluate(testQuestion, fullSTARAnswer, bank.TierEasy, nil)
	medium := e.Evaluate(testQuestion, fullSTARAnswer, bank.TierMedium, nil)
	hard := e.Evaluate(testQuestion, fullSTARAnswer, bank.TierHard, nil)

	if !(hard.Score < medium.Score) {
		t.Errorf("hard %.2f should score below medium %.2f", hard.Score, medium.Score)
	}
	if !(medium.Score <= easy.Score) {
		t.Errorf("medium %.2f should not exceed easy %.2f", medium.Score, easy.Score)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	e := New(DefaultConfig())
	skills := []string{"SQL", "Docker"}

	first := e.Evaluate(testQuestion, fullSTARAnswer, bank.TierHard, skills)
	for i := 0; i < 10; i++ {
		again := e.Evaluate(testQuestion, fullSTARAnswer, bank.TierHard, skills)
		if again != first {
			t.Fatalf("run %d: record differs: %+v vs %+v", i, again, first)
		}
	}
}

func TestScoreStaysInRange(t *testing.T) {
	e := New(DefaultConfig())

	answers := []string{
		"no",
		"situation task action result impact outcome improved reduced",
		strings.Repeat("I built and shipped and improved the project results. ", 40),
	}
	for _, answer := range answers {
		for _, tier := range bank.AllTiers() {
			rec := e.Evaluate(testQuestion, answer, tier, nil)
			if rec.Score < 0 || rec.Score > 5 {
				t.Errorf("tier %s: score %.2f out of [0,5] for %q", tier, rec.Score, answer)
			}
		}
	}
}

func TestRelevanceSubScore(t *testing.T) {
	e := New(DefaultConfig())
	skills := []string{"Kubernetes", "Terraform"}

	onTopic := e.Evaluate(testQuestion, fullSTARAnswer+" using Kubernetes", bank.TierMedium, skills)
	offTopic := e.Evaluate(testQuestion, fullSTARAnswer, bank.TierMedium, skills)

	if !(offTopic.Score < onTopic.Score) {
		t.Errorf("off-topic %.2f should score below on-topic %.2f", offTopic.Score, onTopic.Score)
	}
	if !strings.Contains(offTopic.Feedback, "job description") {
		t.Errorf("off-topic feedback missing relevance hint: %q", offTopic.Feedback)
	}
}

func TestFeedbackNamesMissingComponents(t *testing.T) {
	e := New(DefaultConfig())

	// An answer with an action but no framing, goal, or result.
	rec := e.Evaluate(testQuestion, "I implemented the fix.", bank.TierMedium, nil)

	for _, name := range []string{"Situation", "Task", "Result"} {
		if !strings.Contains(rec.Feedback, name) {
			t.Errorf("feedback does not name missing %s: %q", name, rec.Feedback)
		}
	}
}

func TestSkippedRecord(t *testing.T) {
	rec := SkippedRecord("q1", 0)
	if rec.Score != 0 || rec.Feedback != FeedbackSkipped || !rec.Skipped {
		t.Errorf("unexpected skipped record: %+v", rec)
	}
}

func TestCoverageSummary(t *testing.T) {
	u := STARUsage{Situation: true, Action: true}
	got := CoverageSummary(u)
	want := "S=Present, T=Missing, A=Present, R=Missing"
	if got != want {
		t.Errorf("CoverageSummary = %q, want %q", got, want)
	}
}
