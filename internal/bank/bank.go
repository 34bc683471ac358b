package bank

import (
	"fmt"
	"slices"
	"strings"
)

// typeTier is the composite index key for (type, tier) lookups.
type typeTier struct {
	qtype QuestionType
	tier  Tier
}

// Bank is an immutable catalog of interview questions with precomputed
// indices. A Bank is safe for concurrent use by multiple sessions.
type Bank struct {
	questions  []Question
	byID       map[string]*Question
	byTypeTier map[typeTier][]Question
	salary     []Question
}

// New builds a Bank from a slice of questions, preserving input order.
// It rejects duplicate IDs, empty text, and unknown types.
func New(questions []Question) (*Bank, error) {
	if err := validateQuestions(questions); err != nil {
		return nil, err
	}

	b := &Bank{
		questions:  slices.Clone(questions),
		byID:       make(map[string]*Question, len(questions)),
		byTypeTier: make(map[typeTier][]Question),
	}

	for i := range b.questions {
		q := &b.questions[i]
		b.byID[q.ID] = q
		if q.IsNegotiation() {
			b.salary = append(b.salary, *q)
			continue
		}
		key := typeTier{qtype: q.Type, tier: q.Tier}
		b.byTypeTier[key] = append(b.byTypeTier[key], *q)
	}

	return b, nil
}

// validateQuestions performs all structural checks on the given question set.
// Returns a combined error describing all problems found, or nil if valid.
func validateQuestions(questions []Question) error {
	var errs []string

	if len(questions) == 0 {
		errs = append(errs, "question set is empty")
	}

	idSet := make(map[string]bool, len(questions))
	for _, q := range questions {
		if q.ID == "" {
			errs = append(errs, "question with empty ID")
			continue
		}
		if idSet[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		idSet[q.ID] = true

		if strings.TrimSpace(q.Text) == "" {
			errs = append(errs, fmt.Sprintf("question %q has empty text", q.ID))
		}
		if q.Type != TypeTechnical && q.Type != TypeBehavioral {
			errs = append(errs, fmt.Sprintf("question %q has unknown type %q", q.ID, q.Type))
		}
		if q.Tier != q.Tier.Clamp() {
			errs = append(errs, fmt.Sprintf("question %q has out-of-range tier %d", q.ID, q.Tier))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid question bank:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Len returns the total number of questions, negotiation questions included.
func (b *Bank) Len() int {
	return len(b.questions)
}

// All returns every question in load order.
func (b *Bank) All() []Question {
	return slices.Clone(b.questions)
}

// Get returns a question by ID, or an error if not found.
func (b *Bank) Get(id string) (Question, error) {
	q, ok := b.byID[id]
	if !ok {
		return Question{}, fmt.Errorf("question not found: %q", id)
	}
	return *q, nil
}

// Has reports whether the bank contains the given question ID.
func (b *Bank) Has(id string) bool {
	_, ok := b.byID[id]
	return ok
}

// Matching returns the questions of the given type at the given tier,
// in load order. Negotiation questions are never returned.
func (b *Bank) Matching(qtype QuestionType, tier Tier) []Question {
	return slices.Clone(b.byTypeTier[typeTier{qtype: qtype, tier: tier}])
}

// SalaryQuestions returns the negotiation questions in load order.
func (b *Bank) SalaryQuestions() []Question {
	return slices.Clone(b.salary)
}

// CoverageGaps returns the (type, tier) combinations with no questions.
// Gaps are not an error: selection degrades via tier and type relaxation.
func (b *Bank) CoverageGaps() []string {
	var gaps []string
	for _, qtype := range AllTypes() {
		for _, tier := range AllTiers() {
			if len(b.byTypeTier[typeTier{qtype: qtype, tier: tier}]) == 0 {
				gaps = append(gaps, fmt.Sprintf("%s/%s", qtype, tier))
			}
		}
	}
	return gaps
}
