package cardgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ksuda/kioku/internal/card"
	"github.com/ksuda/kioku/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// cardOutput is one raw card from the LLM response before validation.
type cardOutput struct {
	Type           string   `json:"type"`
	Question       string   `json:"question"`
	Answer         string   `json:"answer"`
	Tags           []string `json:"tags"`
	Difficulty     int      `json:"difficulty"`
	Conditions     []string `json:"conditions"`
	Misconceptions []string `json:"misconceptions"`
}

// batchOutput is the raw LLM response envelope.
type batchOutput struct {
	Cards []cardOutput `json:"cards"`
}

// Generate produces a batch of cards for the given input context.
// Cards that fail validation are dropped rather than failing the batch.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) ([]*card.Card, error) {
	ctx = llm.WithPurpose(ctx, "card-gen")

	userMsg := buildUserMessage(input, g.config)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      CardsSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	outputs := raw.Cards
	if g.config.MaxCardsPerSection > 0 && len(outputs) > g.config.MaxCardsPerSection {
		outputs = outputs[:g.config.MaxCardsPerSection]
	}

	var cards []*card.Card
	for _, out := range outputs {
		c := &card.Card{
			ID:             uuid.NewString(),
			Subject:        input.Subject,
			Chapter:        input.Chapter,
			Type:           card.Type(out.Type),
			Difficulty:     out.Difficulty,
			Tags:           out.Tags,
			Question:       out.Question,
			Answer:         out.Answer,
			Page:           input.Page,
			Conditions:     out.Conditions,
			Misconceptions: out.Misconceptions,
		}
		Cleanse(c)

		if !g.valid(c) {
			continue
		}
		cards = append(cards, c)
	}

	return Dedupe(cards), nil
}

func (g *LLMGenerator) valid(c *card.Card) bool {
	for _, v := range g.config.Validators {
		if err := v.Validate(c); err != nil {
			return false
		}
	}
	return true
}
