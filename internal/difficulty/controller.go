// Package difficulty decides the question tier for the next turn from
// the rolling score history. Adjustment is expressed as a decision table
// (tier x trailing-average bucket -> next tier) so every transition is
// enumerable and testable.
package difficulty

import "github.com/mpandit/prepterm/internal/bank"

// Bucket classifies a trailing average against the thresholds.
type Bucket int

const (
	BucketLow  Bucket = iota // trailing average at or below the low threshold
	BucketMid                // between the thresholds
	BucketHigh               // at or above the high threshold
)

// Config holds the controller's tuning parameters.
type Config struct {
	// Window is the number of most recent scores in the trailing average.
	Window int

	// HighThreshold escalates one tier when the trailing average
	// reaches it.
	HighThreshold float64

	// LowThreshold de-escalates one tier when the trailing average
	// falls to it.
	LowThreshold float64

	// Start is the tier used before any history exists.
	Start bank.Tier
}

// DefaultConfig returns the standard controller tuning.
func DefaultConfig() Config {
	return Config{
		Window:        3,
		HighThreshold: 4.2,
		LowThreshold:  3.0,
		Start:         bank.TierMedium,
	}
}

// Controller computes the next difficulty tier. It is stateless: the
// caller owns the score history and the current tier.
type Controller struct {
	cfg   Config
	table map[bank.Tier]map[Bucket]bank.Tier
}

// New creates a Controller with the given tuning.
func New(cfg Config) *Controller {
	if cfg.Window <= 0 {
		cfg.Window = DefaultConfig().Window
	}
	return &Controller{cfg: cfg, table: buildTable()}
}

// buildTable enumerates every (tier, bucket) -> next tier transition.
// Moves are always exactly one step, clamped at the ends, which rules
// out oscillation from multi-tier jumps.
func buildTable() map[bank.Tier]map[Bucket]bank.Tier {
	table := make(map[bank.Tier]map[Bucket]bank.Tier, len(bank.AllTiers()))
	for _, tier := range bank.AllTiers() {
		table[tier] = map[Bucket]bank.Tier{
			BucketLow:  (tier - 1).Clamp(),
			BucketMid:  tier,
			BucketHigh: (tier + 1).Clamp(),
		}
	}
	return table
}

// Next returns the tier for the upcoming turn given the current tier and
// the full score history (oldest first). With insufficient history the
// current tier holds; with no history at all the configured start tier
// is used.
func (c *Controller) Next(current bank.Tier, history []float64) bank.Tier {
	if len(history) == 0 {
		return c.cfg.Start
	}
	if len(history) < c.cfg.Window {
		return current.Clamp()
	}
	bucket := c.bucket(trailingAverage(history, c.cfg.Window))
	return c.table[current.Clamp()][bucket]
}

// StartTier returns the configured starting tier.
func (c *Controller) StartTier() bank.Tier {
	return c.cfg.Start
}

// bucket classifies a trailing average.
func (c *Controller) bucket(avg float64) Bucket {
	switch {
	case avg >= c.cfg.HighThreshold:
		return BucketHigh
	case avg <= c.cfg.LowThreshold:
		return BucketLow
	default:
		return BucketMid
	}
}

// trailingAverage computes the mean of the last n entries.
func trailingAverage(history []float64, n int) float64 {
	if n > len(history) {
		n = len(history)
	}
	window := history[len(history)-n:]
	sum := 0.0
	for _, s := range window {
		sum += s
	}
	return sum / float64(n)
}
