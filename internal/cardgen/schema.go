package cardgen

import "github.com/ksuda/kioku/internal/llm"

// CardsSchema defines the JSON schema for LLM card generation responses.
var CardsSchema = &llm.Schema{
	Name:        "flash-cards",
	Description: "A batch of study flashcards extracted from source material",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type": map[string]any{
							"type":        "string",
							"enum":        []any{"quick", "decision", "process"},
							"description": "quick for recall facts, decision for choosing between principles, process for multi-step procedures",
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The question prompt, at most 120 characters",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The answer. Reuse precise wording from the source where it is already clear.",
						},
						"tags": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Topic tags, at most 5",
						},
						"difficulty": map[string]any{
							"type":        "integer",
							"minimum":     1,
							"maximum":     5,
							"description": "Self-assessed difficulty from 1 (easy) to 5 (hard)",
						},
						"conditions": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Assumptions the answer depends on, e.g. constant temperature, dilute solution",
						},
						"misconceptions": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Common mistakes learners make on this question",
						},
					},
					"required":             []any{"type", "question", "answer", "tags", "difficulty", "conditions", "misconceptions"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"cards"},
		"additionalProperties": false,
	},
}
