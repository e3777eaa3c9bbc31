package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/ksuda/kioku/internal/router"
	"github.com/ksuda/kioku/internal/session"
	"github.com/ksuda/kioku/internal/srs"
)

func testSummary() *session.Summary {
	return &session.Summary{
		Mode:     srs.ModeNormal,
		DeckSize: 20,
		Stats: session.Stats{
			CardsStudied:    18,
			CorrectCount:    15,
			MaxStreak:       7,
			ConfidenceDelta: 120,
		},
		Duration: 9*time.Minute + 30*time.Second,
	}
}

func TestSummaryScreen_View(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 24)

	for _, want := range []string{"Session complete!", "18/20", "9:30", "7 in a row", "Confidence +120"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_VerdictByAccuracy(t *testing.T) {
	sum := testSummary()
	s := New(sum)
	if !strings.Contains(s.View(80, 24), "Strong session") {
		t.Error("expected the strong-session verdict at 83% accuracy")
	}

	sum.Stats.CorrectCount = 8
	if strings.Contains(s.View(80, 24), "Strong session") {
		t.Error("expected the keep-at-it verdict below 80% accuracy")
	}
}

func TestSummaryScreen_NilSummary(t *testing.T) {
	s := New(nil)
	if s.View(80, 24) != "" {
		t.Error("expected empty view for nil summary")
	}
}

func TestSummaryScreen_DismissPops(t *testing.T) {
	s := New(testSummary())

	for _, code := range []rune{tea.KeyEnter, tea.KeyEscape} {
		_, cmd := s.Update(tea.KeyPressMsg{Code: code})
		if cmd == nil {
			t.Fatal("expected a navigation command")
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Error("expected a pop back to the previous screen")
		}
	}
}
