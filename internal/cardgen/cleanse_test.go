package cardgen

import (
	"testing"

	"github.com/ksuda/kioku/internal/card"
)

func TestCleanTextFormulas(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"H2O is a polar molecule", "H₂O is a polar molecule"},
		{"CO2 dissolves in water", "CO₂ dissolves in water"},
		{"burning CH4 in O2", "burning CH₄ in O₂"},
		{"dilute H2SO4", "dilute H₂SO₄"},
		{"Na+ and Cl- ions", "Na⁺ and Cl⁻ ions"},
		{"SO42- is the sulfate ion", "SO₄²⁻ is the sulfate ion"},
		{"heated to 100℃", "heated to 100°C"},
		{"NaCi crystal", "NaCl crystal"},
	}
	for _, tt := range tests {
		if got := CleanText(tt.in); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanTextLongerFormulasWin(t *testing.T) {
	// CO2 must not decay into C + O₂ via the bare O2 rule.
	if got := CleanText("CO2"); got != "CO₂" {
		t.Errorf("CleanText(CO2) = %q, want CO₂", got)
	}
	if got := CleanText("H2SO4"); got != "H₂SO₄" {
		t.Errorf("CleanText(H2SO4) = %q, want H₂SO₄", got)
	}
}

func TestCleanTextWhitespace(t *testing.T) {
	got := CleanText("  what   is\n\tmolarity  ")
	if got != "what is molarity" {
		t.Errorf("CleanText = %q, want %q", got, "what is molarity")
	}
}

func TestCleanTextEmpty(t *testing.T) {
	if got := CleanText(""); got != "" {
		t.Errorf("CleanText(\"\") = %q, want empty", got)
	}
}

func TestCleanseCapsTags(t *testing.T) {
	c := &card.Card{
		Question: "what is H2O",
		Answer:   "water",
		Tags:     []string{"a", "b", "", "c", "d", "e", "f"},
	}
	Cleanse(c)

	if c.Question != "what is H₂O" {
		t.Errorf("question = %q", c.Question)
	}
	if len(c.Tags) != maxTags {
		t.Errorf("len(tags) = %d, want %d", len(c.Tags), maxTags)
	}
	for _, tag := range c.Tags {
		if tag == "" {
			t.Error("empty tag survived cleansing")
		}
	}
}
