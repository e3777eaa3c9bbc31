package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/ksuda/kioku/internal/router"
	"github.com/ksuda/kioku/internal/screen"
	"github.com/ksuda/kioku/internal/screens/browse"
	"github.com/ksuda/kioku/internal/screens/stats"
	"github.com/ksuda/kioku/internal/screens/study"
	"github.com/ksuda/kioku/internal/srs"
	"github.com/ksuda/kioku/internal/store"
	"github.com/ksuda/kioku/internal/ui/components"
	"github.com/ksuda/kioku/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu     components.Menu
	dueCount int
	newCount int
	mastered int
	total    int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(cards store.CardRepo, events store.EventRepo) *HomeScreen {
	h := &HomeScreen{}

	// Pool counters for the stats bar.
	if cards != nil {
		if pool, err := cards.All(context.Background()); err == nil {
			now := time.Now()
			poolStats := srs.Stats(pool)
			h.total = len(pool)
			h.newCount = poolStats.New
			h.mastered = poolStats.Mastered
			for _, c := range pool {
				if c.IsDue(now) {
					h.dueCount++
				}
			}
		}
	}

	push := func(s screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: s}
			}
		}
	}
	pushStudy := func(mode srs.Mode) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: study.New(cards, events, study.Options{Mode: mode}),
				}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "STUDY", Action: pushStudy(srs.ModeNormal)},
		{Label: "QUICK REVIEW", Action: pushStudy(srs.ModeQuick)},
		{Label: "WEAK TOPICS", Action: pushStudy(srs.ModeWeak)},
		{Label: "NEW CARDS", Action: pushStudy(srs.ModeNew), Disabled: h.newCount == 0},
		{Label: "BROWSE", Action: push(browse.New(cards))},
		{Label: "STATS", Action: push(stats.New(cards, events))},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	}

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("K I O K U"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("spaced-repetition flashcards"))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Due: %d    New: %d    Mastered: %d    Total: %d",
		h.dueCount, h.newCount, h.mastered, h.total)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	if h.dueCount > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(fmt.Sprintf("%d cards waiting for review", h.dueCount)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	return b.String()
}

func (h *HomeScreen) Title() string {
	return "Home"
}
