package session

import (
	"testing"
	"time"

	"github.com/ksuda/kioku/internal/card"
	"github.com/ksuda/kioku/internal/srs"
)

func TestStats_Record(t *testing.T) {
	var s Stats

	for _, q := range []int{4, 5, 3, 1, 4, 4, 0} {
		s.Record(q)
	}

	if s.CardsStudied != 7 {
		t.Errorf("CardsStudied = %d, want 7", s.CardsStudied)
	}
	if s.CorrectCount != 5 {
		t.Errorf("CorrectCount = %d, want 5", s.CorrectCount)
	}
	if s.MaxStreak != 3 {
		t.Errorf("MaxStreak = %d, want 3", s.MaxStreak)
	}
	if s.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0 after a miss", s.CurrentStreak)
	}
}

func TestStats_Accuracy(t *testing.T) {
	var s Stats
	if s.Accuracy() != 0 {
		t.Error("accuracy of an empty session should be 0")
	}

	s.Record(4)
	s.Record(1)
	if got := s.Accuracy(); got != 0.5 {
		t.Errorf("Accuracy() = %v, want 0.5", got)
	}
}

func TestGrade_Quality(t *testing.T) {
	tests := []struct {
		grade Grade
		want  int
	}{
		{GradeDontKnow, 1},
		{GradeKnow, 4},
		{GradePerfect, 5},
	}
	for _, tt := range tests {
		if got := tt.grade.Quality(); got != tt.want {
			t.Errorf("%s.Quality() = %d, want %d", tt.grade, got, tt.want)
		}
	}
}

func TestClampQuality(t *testing.T) {
	tests := []struct{ in, want int }{
		{-3, 0},
		{0, 0},
		{3, 3},
		{5, 5},
		{9, 5},
	}
	for _, tt := range tests {
		if got := ClampQuality(tt.in); got != tt.want {
			t.Errorf("ClampQuality(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestState_Lifecycle(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	deck := []*card.Card{{ID: "a"}, {ID: "b"}}
	st := NewState("sess-1", srs.ModeNormal, deck, start)

	if st.Done() {
		t.Fatal("fresh session reported done")
	}
	if st.Current().ID != "a" {
		t.Errorf("Current() = %q, want a", st.Current().ID)
	}

	st.Revealed = true
	st.Advance()
	if st.Revealed {
		t.Error("Advance should hide the next card's answer")
	}
	if st.Current().ID != "b" {
		t.Errorf("Current() = %q, want b", st.Current().ID)
	}

	st.Advance()
	if !st.Done() {
		t.Error("session should be done after the last card")
	}
	if st.Current() != nil {
		t.Error("Current() should be nil once done")
	}
}

func TestState_Summarize(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	st := NewState("sess-2", srs.ModeQuick, []*card.Card{{ID: "a"}}, start)
	st.Stats.Record(5)
	st.Advance()

	sum := st.Summarize(start.Add(90 * time.Second))

	if sum.Mode != srs.ModeQuick {
		t.Errorf("Mode = %s, want quick", sum.Mode)
	}
	if sum.DeckSize != 1 {
		t.Errorf("DeckSize = %d, want 1", sum.DeckSize)
	}
	if sum.Duration != 90*time.Second {
		t.Errorf("Duration = %v, want 90s", sum.Duration)
	}
	if sum.Stats.CorrectCount != 1 {
		t.Errorf("CorrectCount = %d, want 1", sum.Stats.CorrectCount)
	}
}
