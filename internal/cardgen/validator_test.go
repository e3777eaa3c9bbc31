package cardgen

import (
	"strings"
	"testing"

	"github.com/ksuda/kioku/internal/card"
)

func validCard() *card.Card {
	return &card.Card{
		Type:       card.TypeQuick,
		Question:   "What is an acid?",
		Answer:     "A proton donor.",
		Difficulty: 2,
	}
}

func TestStructuralValidatorAccepts(t *testing.T) {
	v := &StructuralValidator{}
	if err := v.Validate(validCard()); err != nil {
		t.Fatalf("expected pass, got: %v", err)
	}
}

func TestStructuralValidatorRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*card.Card)
	}{
		{"empty question", func(c *card.Card) { c.Question = "" }},
		{"long question", func(c *card.Card) { c.Question = strings.Repeat("q", maxQuestionLen+1) }},
		{"empty answer", func(c *card.Card) { c.Answer = "" }},
		{"long answer", func(c *card.Card) { c.Answer = strings.Repeat("a", maxAnswerLen+1) }},
		{"difficulty too low", func(c *card.Card) { c.Difficulty = 0 }},
		{"difficulty too high", func(c *card.Card) { c.Difficulty = 6 }},
		{"unknown type", func(c *card.Card) { c.Type = "essay" }},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCard()
			tt.mutate(c)
			err := v.Validate(c)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if err.Validator != "structural" {
				t.Errorf("validator = %q, want structural", err.Validator)
			}
		})
	}
}

func TestStructuralValidatorCountsRunes(t *testing.T) {
	c := validCard()
	// Multibyte characters count as one character, not one byte.
	c.Question = strings.Repeat("水", maxQuestionLen)
	v := &StructuralValidator{}
	if err := v.Validate(c); err != nil {
		t.Fatalf("rune-length question should pass: %v", err)
	}
}
