package session

import (
	"time"

	"github.com/ksuda/kioku/internal/card"
	"github.com/ksuda/kioku/internal/srs"
)

// State tracks one study session: the deck, the position in it, and the
// running stats. It is created at session start and discarded when the
// index pointer reaches the deck length.
type State struct {
	SessionID string
	Mode      srs.Mode
	Deck      []*card.Card
	Index     int
	Revealed  bool
	Stats     Stats
	StartedAt time.Time
}

// NewState builds session state around a freshly generated deck.
func NewState(sessionID string, mode srs.Mode, deck []*card.Card, startedAt time.Time) *State {
	return &State{
		SessionID: sessionID,
		Mode:      mode,
		Deck:      deck,
		StartedAt: startedAt,
	}
}

// Current returns the card being presented, or nil once the session is
// done.
func (s *State) Current() *card.Card {
	if s.Index < 0 || s.Index >= len(s.Deck) {
		return nil
	}
	return s.Deck[s.Index]
}

// Advance moves to the next card and hides its answer.
func (s *State) Advance() {
	s.Index++
	s.Revealed = false
}

// Done reports whether every card in the deck has been graded.
func (s *State) Done() bool {
	return s.Index >= len(s.Deck)
}

// Progress returns the studied fraction of the deck in [0,1].
func (s *State) Progress() float64 {
	if len(s.Deck) == 0 {
		return 0
	}
	p := float64(s.Index) / float64(len(s.Deck))
	if p > 1 {
		return 1
	}
	return p
}

// Summary is the end-of-session report handed to the summary screen.
type Summary struct {
	Mode     srs.Mode
	DeckSize int
	Stats    Stats
	Duration time.Duration
}

// Summarize closes out the session at time now.
func (s *State) Summarize(now time.Time) *Summary {
	return &Summary{
		Mode:     s.Mode,
		DeckSize: len(s.Deck),
		Stats:    s.Stats,
		Duration: now.Sub(s.StartedAt),
	}
}
