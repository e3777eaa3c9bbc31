package cardgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are converting textbook material into study flashcards for exam revision.

Rules:
- Generate 3-5 cards per section. Skip filler; only card-worthy facts, procedures, and decisions.
- Reuse the source's precise wording for definitions and formulas. Chemical formulas must be exact (H₂O, CO₂, SO₄²⁻).
- Keep each question self-contained and at most 120 characters.
- Choose "quick" for recall facts, "decision" for questions that choose between principles or methods, "process" for multi-step procedures.
- List the conditions the answer assumes (temperature, concentration, catalyst) so the learner knows when it applies.
- List the misconceptions a learner is likely to bring to this question.
- Do not repeat any question from the "already in the pool" list.`

// buildUserMessage constructs the user message from GenerateInput and Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: %s\n", input.Subject)
	fmt.Fprintf(&b, "Chapter: %s\n", input.Chapter)
	fmt.Fprintf(&b, "Source page: %d\n", input.Page)
	fmt.Fprintf(&b, "Max cards: %d\n", cfg.MaxCardsPerSection)

	b.WriteString("\nAlready in the pool:\n")
	b.WriteString(buildDedup(input.PriorQuestions, cfg.MaxPriorQuestions))

	b.WriteString("\n\nSource material:\n")
	b.WriteString(input.SourceText)

	return b.String()
}

// buildDedup formats prior questions for the prompt, respecting the max limit.
// Returns "None" if there are no prior questions.
func buildDedup(priorQuestions []string, max int) string {
	if len(priorQuestions) == 0 {
		return "None"
	}

	// Keep only the most recent N questions.
	if max > 0 && len(priorQuestions) > max {
		priorQuestions = priorQuestions[len(priorQuestions)-max:]
	}

	var b strings.Builder
	for i, q := range priorQuestions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
