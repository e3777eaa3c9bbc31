package cardgen

import "github.com/ksuda/kioku/internal/card"

// GenerateInput holds all context needed to generate cards from a
// section of source material.
type GenerateInput struct {
	// Subject is the subject the cards belong to.
	Subject card.Subject

	// Chapter groups the generated cards, e.g. "acids-and-bases".
	Chapter string

	// SourceText is the textbook excerpt to convert into cards.
	SourceText string

	// Page is the source page number, recorded on each card.
	Page int

	// PriorQuestions contains the question text of cards already in the
	// pool for this chapter. Used for deduplication in the prompt.
	PriorQuestions []string
}
