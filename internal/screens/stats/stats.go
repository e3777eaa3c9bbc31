package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/ksuda/kioku/internal/router"
	"github.com/ksuda/kioku/internal/screen"
	"github.com/ksuda/kioku/internal/srs"
	"github.com/ksuda/kioku/internal/store"
	"github.com/ksuda/kioku/internal/ui/components"
	"github.com/ksuda/kioku/internal/ui/layout"
	"github.com/ksuda/kioku/internal/ui/theme"
)

type statsLoadedMsg struct {
	Pool     srs.PoolStats
	Total    int
	Sessions []store.SessionRecord
	Err      error
}

// StatsScreen displays the pool dashboard and recent session history.
type StatsScreen struct {
	cards  store.CardRepo
	events store.EventRepo

	pool     srs.PoolStats
	total    int
	sessions []store.SessionRecord
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(cards store.CardRepo, events store.EventRepo) *StatsScreen {
	return &StatsScreen{cards: cards, events: events}
}

func (s *StatsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		pool, err := s.cards.All(ctx)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}

		sessions, err := s.events.RecentSessions(ctx, 10)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}

		return statsLoadedMsg{
			Pool:     srs.Stats(pool),
			Total:    len(pool),
			Sessions: sessions,
		}
	}
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.pool = msg.Pool
			s.total = msg.Total
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading stats...")
	}
	if s.total == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No cards yet. Import or generate some first.")
	}

	var b strings.Builder
	b.WriteString("\n")

	// Confidence bands.
	bandLine := fmt.Sprintf("Mastered: %d    Learning: %d    New: %d    Total: %d",
		s.pool.Mastered, s.pool.Learning, s.pool.New, s.total)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Render(bandLine)))
	b.WriteString("\n\n")

	// Average confidence bar.
	bar := components.NewProgressBar("Avg confidence", s.pool.AverageConfidence/100, true, min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	// Weakest topics.
	if len(s.pool.WeakestTopics) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Weakest topics")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
		for _, t := range s.pool.WeakestTopics {
			line := fmt.Sprintf("  %s    %.0f%% weak (%d cards)",
				t.Tag, t.WeakFraction*100, t.CardCount)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Error).Render(line)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Recent sessions.
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Recent sessions")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	if len(s.sessions) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("  No sessions yet. Start studying!")))
		b.WriteString("\n")
	}
	for _, sess := range s.sessions {
		dateStr := sess.Timestamp.Format("Jan 02, 2006")
		mins := sess.DurationSecs / 60
		secs := sess.DurationSecs % 60

		var accuracy float64
		if sess.CardsStudied > 0 {
			accuracy = float64(sess.CorrectCount) / float64(sess.CardsStudied) * 100
		}

		line := fmt.Sprintf("  %s  %s  %d:%02d  %d cards  %.0f%% accuracy",
			dateStr, sess.Mode, mins, secs, sess.CardsStudied, accuracy)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
