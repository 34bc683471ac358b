// Package selector picks the next question from the bank, honoring the
// requested tier and type and never repeating a question within a
// session. When the exact pool is empty it degrades gracefully:
// adjacent tiers are searched outward before the type constraint is
// relaxed, and only a fully exhausted bank raises ErrExhaustedBank.
package selector

import (
	"errors"

	"github.com/mpandit/prepterm/internal/bank"
)

// ErrExhaustedBank signals that no unasked question remains for this
// session. It is a control signal, not a failure: the session engine
// responds by ending the questioning phase early.
var ErrExhaustedBank = errors.New("question bank exhausted for this session")

// SelectNext returns the next question of the desired type at the
// desired tier, excluding already-asked IDs.
//
// Relaxation order when the exact pool is empty:
//  1. same type, tiers at increasing distance (tier±1, then tier±2),
//     preferring the easier side at equal distance
//  2. the other type, same tier-outward search
//
// Within a pool, questions are taken in bank load order, which keeps
// selection deterministic for a fixed bank and asked set.
func SelectNext(b *bank.Bank, asked map[string]bool, tier bank.Tier, desired bank.QuestionType) (bank.Question, error) {
	tier = tier.Clamp()

	for _, qtype := range typeOrder(desired) {
		for _, t := range tierOrder(tier) {
			if q, ok := firstUnasked(b.Matching(qtype, t), asked); ok {
				return q, nil
			}
		}
	}

	return bank.Question{}, ErrExhaustedBank
}

// SelectSalary returns the next unasked negotiation question, in bank
// load order.
func SelectSalary(b *bank.Bank, asked map[string]bool) (bank.Question, error) {
	if q, ok := firstUnasked(b.SalaryQuestions(), asked); ok {
		return q, nil
	}
	return bank.Question{}, ErrExhaustedBank
}

// firstUnasked returns the first question not in the asked set.
func firstUnasked(pool []bank.Question, asked map[string]bool) (bank.Question, bool) {
	for _, q := range pool {
		if !asked[q.ID] {
			return q, true
		}
	}
	return bank.Question{}, false
}

// tierOrder returns the tiers to search, nearest first, easier side
// first at equal distance.
func tierOrder(tier bank.Tier) []bank.Tier {
	order := []bank.Tier{tier}
	for dist := bank.Tier(1); ; dist++ {
		lower, upper := tier-dist, tier+dist
		added := false
		if lower >= bank.TierEasy {
			order = append(order, lower)
			added = true
		}
		if upper <= bank.TierHard {
			order = append(order, upper)
			added = true
		}
		if !added {
			return order
		}
	}
}

// typeOrder returns the desired type first, then the remaining types.
func typeOrder(desired bank.QuestionType) []bank.QuestionType {
	order := []bank.QuestionType{desired}
	for _, t := range bank.AllTypes() {
		if t != desired {
			order = append(order, t)
		}
	}
	return order
}
