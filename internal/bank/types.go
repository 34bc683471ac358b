package bank

// QuestionType classifies a question as technical or behavioral.
type QuestionType string

const (
	TypeTechnical  QuestionType = "technical"
	TypeBehavioral QuestionType = "behavioral"
)

// AllTypes returns the question types in display order.
func AllTypes() []QuestionType {
	return []QuestionType{TypeTechnical, TypeBehavioral}
}

// TypeDisplayName returns a human-readable name for a question type.
func TypeDisplayName(t QuestionType) string {
	switch t {
	case TypeTechnical:
		return "Technical"
	case TypeBehavioral:
		return "Behavioral"
	default:
		return string(t)
	}
}

// Tier represents an ordered difficulty tier.
type Tier int

const (
	TierEasy Tier = iota
	TierMedium
	TierHard
)

// AllTiers returns the tiers in ascending order of difficulty.
func AllTiers() []Tier {
	return []Tier{TierEasy, TierMedium, TierHard}
}

// String returns the canonical lowercase name of a tier.
func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "easy"
	case TierMedium:
		return "medium"
	case TierHard:
		return "hard"
	default:
		return "unknown"
	}
}

// DisplayName returns a human-readable name for a tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierEasy:
		return "Easy"
	case TierMedium:
		return "Medium"
	case TierHard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// Clamp returns the tier bounded to the valid range.
func (t Tier) Clamp() Tier {
	if t < TierEasy {
		return TierEasy
	}
	if t > TierHard {
		return TierHard
	}
	return t
}

// TierFromString parses a tier name. The second return value reports
// whether the name was recognized.
func TierFromString(s string) (Tier, bool) {
	switch s {
	case "easy":
		return TierEasy, true
	case "medium":
		return TierMedium, true
	case "hard":
		return TierHard, true
	}
	return TierMedium, false
}

// TopicSalary tags questions used during the salary negotiation phase.
// Negotiation questions are excluded from regular question selection.
const TopicSalary = "salary"

// Question is a single interview question. Questions are immutable once
// loaded; sessions hold only their IDs.
type Question struct {
	ID    string       `json:"id"`
	Text  string       `json:"text"`
	Type  QuestionType `json:"type"`
	Tier  Tier         `json:"-"`
	Topic string       `json:"topic"`

	// Difficulty is the wire name of Tier, kept for JSON round-trips.
	Difficulty string `json:"difficulty"`
}

// IsNegotiation reports whether the question belongs to the salary
// negotiation phase rather than the questioning phase.
func (q Question) IsNegotiation() bool {
	return q.Topic == TopicSalary
}
