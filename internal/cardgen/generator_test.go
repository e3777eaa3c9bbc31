package cardgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ksuda/kioku/internal/card"
	"github.com/ksuda/kioku/internal/llm"
)

func batchJSON(cards ...map[string]any) json.RawMessage {
	b, err := json.Marshal(map[string]any{"cards": cards})
	if err != nil {
		panic(err)
	}
	return b
}

func rawCard(question string) map[string]any {
	return map[string]any{
		"type":           "quick",
		"question":       question,
		"answer":         "A proton donor.",
		"tags":           []string{"acids"},
		"difficulty":     2,
		"conditions":     []string{"aqueous solution"},
		"misconceptions": []string{"confusing acids with oxidizers"},
	}
}

func testInput() GenerateInput {
	return GenerateInput{
		Subject:    card.SubjectChemistry,
		Chapter:    "acids-and-bases",
		SourceText: "An acid donates a proton.",
		Page:       42,
	}
}

func TestGenerateBuildsCards(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: batchJSON(rawCard("What is an acid?"), rawCard("What is a base?")),
	})
	gen := New(mock, DefaultConfig())

	cards, err := gen.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("len(cards) = %d, want 2", len(cards))
	}

	c := cards[0]
	if c.ID == "" {
		t.Error("expected generated ID")
	}
	if c.Subject != card.SubjectChemistry || c.Chapter != "acids-and-bases" || c.Page != 42 {
		t.Errorf("input context not applied: %+v", c)
	}
	if c.Type != card.TypeQuick || c.Difficulty != 2 {
		t.Errorf("card fields not mapped: %+v", c)
	}
	if len(c.Conditions) != 1 || len(c.Misconceptions) != 1 {
		t.Errorf("conditions/misconceptions not mapped: %+v", c)
	}
	if cards[0].ID == cards[1].ID {
		t.Error("cards share an ID")
	}
}

func TestGenerateCleansesText(t *testing.T) {
	raw := rawCard("What does H2O plus CO2 form?")
	mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON(raw)})
	gen := New(mock, DefaultConfig())

	cards, err := gen.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if cards[0].Question != "What does H₂O plus CO₂ form?" {
		t.Errorf("question = %q", cards[0].Question)
	}
}

func TestGenerateDropsInvalidCards(t *testing.T) {
	bad := rawCard("")
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: batchJSON(rawCard("What is an acid?"), bad),
	})
	gen := New(mock, DefaultConfig())

	cards, err := gen.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("len(cards) = %d, want 1: invalid card should be dropped", len(cards))
	}
}

func TestGenerateDeduplicatesBatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: batchJSON(rawCard("What is an acid?"), rawCard("What is an acid?")),
	})
	gen := New(mock, DefaultConfig())

	cards, err := gen.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("len(cards) = %d, want 1", len(cards))
	}
}

func TestGenerateCapsBatchSize(t *testing.T) {
	var raws []map[string]any
	for _, q := range []string{"q one?", "q two?", "q three?"} {
		raws = append(raws, rawCard("What is "+q))
	}
	mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON(raws...)})

	cfg := DefaultConfig()
	cfg.MaxCardsPerSection = 2
	gen := New(mock, cfg)

	cards, err := gen.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("len(cards) = %d, want 2", len(cards))
	}
}

func TestGeneratePassesSchemaAndPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON(rawCard("What is an acid?"))})
	gen := New(mock, DefaultConfig())

	input := testInput()
	input.PriorQuestions = []string{"What is molarity?"}
	if _, err := gen.Generate(context.Background(), input); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(mock.Calls))
	}
	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "flash-cards" {
		t.Errorf("schema not set: %+v", req.Schema)
	}
	if req.System == "" {
		t.Error("system prompt not set")
	}
	if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "What is molarity?") {
		t.Error("prior questions not included in prompt")
	}
}

func TestGeneratePropagatesProviderError(t *testing.T) {
	wantErr := errors.New("rate limited")
	mock := llm.NewMockProvider(llm.MockResponse{Err: wantErr})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), testInput())
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want wrapped %v", err, wantErr)
	}
}

func TestGenerateMalformedResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{not json}`)})
	gen := New(mock, DefaultConfig())

	if _, err := gen.Generate(context.Background(), testInput()); err == nil {
		t.Fatal("expected parse error")
	}
}
