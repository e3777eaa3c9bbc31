package study

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/ksuda/kioku/internal/card"
	"github.com/ksuda/kioku/internal/router"
	"github.com/ksuda/kioku/internal/screen"
	"github.com/ksuda/kioku/internal/screens/summary"
	"github.com/ksuda/kioku/internal/session"
	"github.com/ksuda/kioku/internal/srs"
	"github.com/ksuda/kioku/internal/store"
	"github.com/ksuda/kioku/internal/ui/layout"
)

// Options selects what the study session draws from the pool.
type Options struct {
	Mode    srs.Mode
	Size    int
	Subject string
	Chapter string
}

// StudyScreen runs one flashcard session: present, reveal, grade, repeat.
type StudyScreen struct {
	cards  store.CardRepo
	events store.EventRepo
	opts   Options

	state       *session.State
	confirmQuit bool
	cardStart   time.Time
	errMsg      string
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)
var _ screen.EscHandler = (*StudyScreen)(nil)

// New creates a StudyScreen with injected dependencies.
func New(cards store.CardRepo, events store.EventRepo, opts Options) *StudyScreen {
	if opts.Mode == "" {
		opts.Mode = srs.ModeNormal
	}
	if opts.Size <= 0 {
		opts.Size = srs.DefaultDeckSize
	}
	return &StudyScreen{cards: cards, events: events, opts: opts}
}

func (s *StudyScreen) Init() tea.Cmd {
	return s.loadDeck()
}

func (s *StudyScreen) Title() string {
	return "Study"
}

// WantsEsc keeps esc inside the screen while a session is live, so it
// opens the quit confirmation instead of popping mid-session.
func (s *StudyScreen) WantsEsc() bool {
	return s.errMsg == "" && s.state != nil && !s.state.Done()
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	if s.state == nil {
		return nil
	}
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.state.Revealed {
		return []layout.KeyHint{
			{Key: "←", Description: "Didn't know"},
			{Key: "→", Description: "Knew it"},
			{Key: "↑", Description: "Perfect"},
			{Key: "0-5", Description: "Grade"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Reveal"},
		{Key: "Esc", Description: "Quit"},
	}
}

// loadDeck filters the pool, assembles the deck, and records the
// session start.
func (s *StudyScreen) loadDeck() tea.Cmd {
	opts := s.opts
	return func() tea.Msg {
		ctx := context.Background()

		pool, err := s.cards.Filter(ctx, opts.Subject, opts.Chapter)
		if err != nil {
			return deckReadyMsg{Err: err}
		}

		now := time.Now()
		deck := srs.GenerateDeck(pool, opts.Size, opts.Mode, now, defaultRand{})
		if len(deck) == 0 {
			return deckReadyMsg{Err: errors.New("no cards to study; import some first")}
		}

		sessionID := uuid.New().String()
		_ = s.events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID: sessionID,
			Action:    "started",
			Mode:      string(opts.Mode),
		})

		return deckReadyMsg{State: session.NewState(sessionID, opts.Mode, deck, now)}
	}
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case deckReadyMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.state = msg.State
		s.cardStart = time.Now()
		return s, nil

	case gradePersistedMsg:
		// Persistence failures surface but don't kill the session.
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		return s, nil

	case studyEndMsg:
		return s.finish(msg.abandoned)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *StudyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state. Any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.state == nil {
		return s, nil
	}

	// Session finished and the summary was dismissed. Go home.
	if s.state.Done() {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, func() tea.Msg { return studyEndMsg{abandoned: true} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if !s.state.Revealed {
		switch key {
		case "esc":
			s.confirmQuit = true
			return s, nil
		case " ", "space", "enter":
			s.state.Revealed = true
			return s, nil
		}
		return s, nil
	}

	// Answer shown; waiting for a grade.
	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "left", "h":
		return s.grade(session.GradeDontKnow.Quality())
	case "right", "l":
		return s.grade(session.GradeKnow.Quality())
	case "up", "p":
		return s.grade(session.GradePerfect.Quality())
	case "0", "1", "2", "3", "4", "5":
		return s.grade(int(key[0] - '0'))
	}
	return s, nil
}

// grade applies one quality rating to the current card, persists it,
// and advances the session.
func (s *StudyScreen) grade(quality int) (screen.Screen, tea.Cmd) {
	c := s.state.Current()
	if c == nil {
		return s, nil
	}

	quality = session.ClampQuality(quality)
	now := time.Now()
	before := c.ConfidenceOrDefault()
	timeMs := time.Since(s.cardStart).Milliseconds()

	srs.Commit(c, quality, now)
	s.state.Stats.Record(quality)
	s.state.Stats.ConfidenceDelta += c.Confidence - before

	persist := s.persistGrade(c.Clone(), quality, before, timeMs)

	s.state.Advance()
	s.cardStart = now

	if s.state.Done() {
		return s, tea.Batch(persist, func() tea.Msg { return studyEndMsg{} })
	}
	return s, persist
}

// persistGrade writes the card's new review state and the review event.
func (s *StudyScreen) persistGrade(c *card.Card, quality, before int, timeMs int64) tea.Cmd {
	sessionID := s.state.SessionID
	return func() tea.Msg {
		ctx := context.Background()

		if err := s.cards.UpdateReviewState(ctx, c); err != nil {
			return gradePersistedMsg{Err: err}
		}

		var nextReview time.Time
		if c.NextReview != nil {
			nextReview = *c.NextReview
		}
		err := s.events.AppendReviewEvent(ctx, store.ReviewEventData{
			SessionID:        sessionID,
			CardID:           c.ID,
			Quality:          quality,
			Correct:          quality >= srs.QualityPass,
			ConfidenceBefore: before,
			ConfidenceAfter:  c.Confidence,
			NextReview:       nextReview,
			TimeMs:           timeMs,
		})
		return gradePersistedMsg{Err: err}
	}
}

// finish records the session end event and navigates to the summary.
func (s *StudyScreen) finish(abandoned bool) (screen.Screen, tea.Cmd) {
	if s.state == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	now := time.Now()
	sum := s.state.Summarize(now)

	action := "completed"
	if abandoned {
		action = "abandoned"
	}
	_ = s.events.AppendSessionEvent(context.Background(), store.SessionEventData{
		SessionID:    s.state.SessionID,
		Action:       action,
		Mode:         string(s.state.Mode),
		CardsStudied: sum.Stats.CardsStudied,
		CorrectCount: sum.Stats.CorrectCount,
		MaxStreak:    sum.Stats.MaxStreak,
		DurationSecs: int(sum.Duration.Seconds()),
	})

	if abandoned && sum.Stats.CardsStudied == 0 {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	return s, func() tea.Msg {
		return router.PushScreenMsg{Screen: summary.New(sum)}
	}
}

// defaultRand adapts the global math/rand/v2 source to the deck shuffler.
type defaultRand struct{}

func (defaultRand) Float64() float64 { return rand.Float64() }
