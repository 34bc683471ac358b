package difficulty

import (
	"testing"

	"github.com/mpandit/prepterm/internal/bank"
)

func TestNoHistoryStartsAtDefault(t *testing.T) {
	c := New(DefaultConfig())
	if got := c.Next(bank.TierHard, nil); got != bank.TierMedium {
		t.Errorf("Next with no history = %v, want medium", got)
	}
}

func TestInsufficientHistoryHolds(t *testing.T) {
	c := New(DefaultConfig())
	if got := c.Next(bank.TierHard, []float64{5.0}); got != bank.TierHard {
		t.Errorf("Next with short history = %v, want hold at hard", got)
	}
	if got := c.Next(bank.TierEasy, []float64{5.0, 5.0}); got != bank.TierEasy {
		t.Errorf("Next with short history = %v, want hold at easy", got)
	}
}

func TestThreeHighScoresEscalateOneTier(t *testing.T) {
	c := New(DefaultConfig())

	// Three consecutive 5.0s at easy escalate to medium, not beyond.
	got := c.Next(bank.TierEasy, []float64{5.0, 5.0, 5.0})
	if got != bank.TierMedium {
		t.Errorf("Next = %v, want medium", got)
	}
}

func TestDecisionTable(t *testing.T) {
	c := New(DefaultConfig())

	tests := []struct {
		name    string
		current bank.Tier
		history []float64
		want    bank.Tier
	}{
		{"easy high", bank.TierEasy, []float64{4.5, 4.5, 4.5}, bank.TierMedium},
		{"easy mid", bank.TierEasy, []float64{3.5, 3.5, 3.5}, bank.TierEasy},
		{"easy low floors", bank.TierEasy, []float64{1.0, 1.0, 1.0}, bank.TierEasy},
		{"medium high", bank.TierMedium, []float64{4.2, 4.2, 4.2}, bank.TierHard},
		{"medium mid", bank.TierMedium, []float64{3.5, 3.5, 3.5}, bank.TierMedium},
		{"medium low", bank.TierMedium, []float64{2.0, 3.0, 3.0}, bank.TierEasy},
		{"hard high caps", bank.TierHard, []float64{5.0, 5.0, 5.0}, bank.TierHard},
		{"hard mid", bank.TierHard, []float64{3.5, 3.5, 3.5}, bank.TierHard},
		{"hard low", bank.TierHard, []float64{1.0, 2.0, 2.0}, bank.TierMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Next(tt.current, tt.history); got != tt.want {
				t.Errorf("Next(%v, %v) = %v, want %v", tt.current, tt.history, got, tt.want)
			}
		})
	}
}

func TestOnlyTrailingWindowCounts(t *testing.T) {
	c := New(DefaultConfig())

	// Early low scores are outside the window of 3; recent highs win.
	history := []float64{0, 0, 0, 5.0, 5.0, 5.0}
	if got := c.Next(bank.TierMedium, history); got != bank.TierHard {
		t.Errorf("Next = %v, want hard", got)
	}
}

func TestNeverMovesMoreThanOneTier(t *testing.T) {
	c := New(DefaultConfig())

	extremes := [][]float64{
		{5, 5, 5}, {0, 0, 0}, {4.2, 4.2, 4.2}, {3.0, 3.0, 3.0},
	}
	for _, tier := range bank.AllTiers() {
		for _, history := range extremes {
			next := c.Next(tier, history)
			diff := int(next) - int(tier)
			if diff < -1 || diff > 1 {
				t.Errorf("Next(%v, %v) = %v, moved %d tiers", tier, history, next, diff)
			}
			if next != next.Clamp() {
				t.Errorf("Next(%v, %v) = %v, outside tier set", tier, history, next)
			}
		}
	}
}
