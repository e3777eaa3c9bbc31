package cardgen

import (
	"strings"

	"github.com/ksuda/kioku/internal/card"
)

// signatureLen is how many characters of the normalized question
// identify a card for deduplication. Questions that agree on this
// prefix are treated as the same card.
const signatureLen = 30

// questionSignature normalizes a question into its dedup key.
func questionSignature(question string) string {
	q := strings.ToLower(CleanText(question))
	runes := []rune(q)
	if len(runes) > signatureLen {
		runes = runes[:signatureLen]
	}
	return string(runes)
}

// Dedupe removes duplicate cards, keeping for each question signature
// the card with the longer answer. Order of first appearance is preserved.
func Dedupe(cards []*card.Card) []*card.Card {
	index := make(map[string]int, len(cards))
	var unique []*card.Card

	for _, c := range cards {
		key := questionSignature(c.Question)
		if i, ok := index[key]; ok {
			if len(c.Answer) > len(unique[i].Answer) {
				unique[i] = c
			}
			continue
		}
		index[key] = len(unique)
		unique = append(unique, c)
	}
	return unique
}
