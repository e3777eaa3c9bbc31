package cardgen

import (
	"strings"
	"testing"

	"github.com/ksuda/kioku/internal/card"
)

func TestBuildUserMessageIncludesContext(t *testing.T) {
	input := GenerateInput{
		Subject:    card.SubjectChemistry,
		Chapter:    "acids-and-bases",
		SourceText: "An acid donates a proton.",
		Page:       42,
	}
	msg := buildUserMessage(input, DefaultConfig())

	for _, want := range []string{
		"Subject: chemistry",
		"Chapter: acids-and-bases",
		"Source page: 42",
		"An acid donates a proton.",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildUserMessageNoPriorQuestions(t *testing.T) {
	msg := buildUserMessage(GenerateInput{Subject: card.SubjectChemistry}, DefaultConfig())
	if !strings.Contains(msg, "Already in the pool:\nNone") {
		t.Errorf("expected None for empty prior questions:\n%s", msg)
	}
}

func TestBuildDedupLimits(t *testing.T) {
	prior := []string{"q1", "q2", "q3", "q4", "q5"}
	out := buildDedup(prior, 3)

	// Only the most recent 3 are kept.
	if strings.Contains(out, "q1") || strings.Contains(out, "q2") {
		t.Errorf("old questions should be dropped:\n%s", out)
	}
	for _, want := range []string{"q3", "q4", "q5"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q:\n%s", want, out)
		}
	}
}

func TestBuildDedupUnlimited(t *testing.T) {
	out := buildDedup([]string{"a", "b"}, 0)
	if !strings.Contains(out, "1. a") || !strings.Contains(out, "2. b") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
