package cardgen

import (
	"context"

	"github.com/ksuda/kioku/internal/card"
)

// Generator produces flashcards from source material using an LLM provider.
type Generator interface {
	// Generate produces a batch of cards for the given input context.
	// Returned cards are cleansed, deduplicated, and validated.
	Generate(ctx context.Context, input GenerateInput) ([]*card.Card, error)
}
