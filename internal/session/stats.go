package session

import "github.com/ksuda/kioku/internal/srs"

// Stats holds the ephemeral counters for one study session. They live
// only as long as the deck: a new deck starts from zeros.
type Stats struct {
	CardsStudied  int
	CorrectCount  int
	CurrentStreak int
	MaxStreak     int

	// ConfidenceDelta is the net confidence change across every card
	// graded this session. Tallied by the caller, which sees both sides
	// of the scorer update.
	ConfidenceDelta int
}

// Record tallies one graded card. Correct means quality at or above the
// pass boundary.
func (s *Stats) Record(quality int) {
	s.CardsStudied++
	if quality >= srs.QualityPass {
		s.CorrectCount++
		s.CurrentStreak++
		if s.CurrentStreak > s.MaxStreak {
			s.MaxStreak = s.CurrentStreak
		}
	} else {
		s.CurrentStreak = 0
	}
}

// Accuracy returns the fraction of studied cards answered correctly.
func (s *Stats) Accuracy() float64 {
	if s.CardsStudied == 0 {
		return 0
	}
	return float64(s.CorrectCount) / float64(s.CardsStudied)
}
