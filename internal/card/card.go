package card

import "time"

// Subject classifies a card into one of the supported exam subjects.
type Subject string

const (
	SubjectChemistry Subject = "chemistry"
	SubjectPhysics   Subject = "physics"
)

// Type describes how a card is answered mentally: a quick recall fact,
// a decision between alternatives, or a multi-step process.
type Type string

const (
	TypeQuick    Type = "quick"
	TypeDecision Type = "decision"
	TypeProcess  Type = "process"
)

// DefaultConfidence is the starting recall-strength estimate for a card
// that has never been scored.
const DefaultConfidence = 50

// Card is a single flashcard: immutable study content plus the mutable
// review state owned by the scheduler.
type Card struct {
	ID         string   `json:"id"`
	Subject    Subject  `json:"subject"`
	Chapter    string   `json:"chapter"`
	Type       Type     `json:"type"`
	Difficulty int      `json:"difficulty"` // 1 (easy) to 5 (hard)
	Tags       []string `json:"tags,omitempty"`

	Question       string   `json:"question"`
	Answer         string   `json:"answer"`
	Page           int      `json:"page,omitempty"`
	Image          string   `json:"image,omitempty"`
	Conditions     []string `json:"conditions,omitempty"`
	Misconceptions []string `json:"misconceptions,omitempty"`

	// Review state. Mutated once per graded presentation, persisted after
	// every mutation.
	ReviewCount  int        `json:"review_count"`
	CorrectCount int        `json:"correct_count"`
	Confidence   int        `json:"confidence"` // 0-100
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
	NextReview   *time.Time `json:"next_review,omitempty"`
}

// IsNew reports whether the card has never been scored. A card with
// ReviewCount == 0 is new regardless of any residual confidence value.
func (c *Card) IsNew() bool {
	return c.ReviewCount == 0
}

// ConfidenceOrDefault returns the stored confidence, substituting the
// default for a card whose confidence was never initialized.
func (c *Card) ConfidenceOrDefault() int {
	if c.Confidence == 0 && c.IsNew() {
		return DefaultConfidence
	}
	return c.Confidence
}

// SuccessRate returns CorrectCount / ReviewCount, or 0 for a new card.
func (c *Card) SuccessRate() float64 {
	if c.ReviewCount == 0 {
		return 0
	}
	return float64(c.CorrectCount) / float64(c.ReviewCount)
}

// IsDue reports whether the card's scheduled review time has passed.
// A card with no scheduled review is treated as due now.
func (c *Card) IsDue(now time.Time) bool {
	if c.NextReview == nil {
		return true
	}
	return !now.Before(*c.NextReview)
}

// HasTag reports whether the card carries the given topic tag.
func (c *Card) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the card. Slices and time pointers are
// duplicated so mutating the copy never touches the original.
func (c *Card) Clone() *Card {
	dup := *c
	dup.Tags = append([]string(nil), c.Tags...)
	dup.Conditions = append([]string(nil), c.Conditions...)
	dup.Misconceptions = append([]string(nil), c.Misconceptions...)
	if c.LastReviewed != nil {
		t := *c.LastReviewed
		dup.LastReviewed = &t
	}
	if c.NextReview != nil {
		t := *c.NextReview
		dup.NextReview = &t
	}
	return &dup
}
