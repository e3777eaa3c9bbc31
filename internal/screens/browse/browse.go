package browse

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/ksuda/kioku/internal/card"
	"github.com/ksuda/kioku/internal/router"
	"github.com/ksuda/kioku/internal/screen"
	"github.com/ksuda/kioku/internal/store"
	"github.com/ksuda/kioku/internal/ui/components"
	"github.com/ksuda/kioku/internal/ui/layout"
	"github.com/ksuda/kioku/internal/ui/theme"
)

type poolLoadedMsg struct {
	Cards []*card.Card
	Err   error
}

// BrowseScreen lists the card pool with incremental text search.
type BrowseScreen struct {
	cards store.CardRepo

	pool     []*card.Card
	filtered []*card.Card
	search   components.TextInput
	selected int
	expanded map[string]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*BrowseScreen)(nil)
var _ screen.KeyHintProvider = (*BrowseScreen)(nil)

// New creates a new BrowseScreen.
func New(cards store.CardRepo) *BrowseScreen {
	return &BrowseScreen{
		cards:    cards,
		search:   components.NewTextInput("Search questions, tags...", false, 40),
		expanded: make(map[string]bool),
	}
}

func (s *BrowseScreen) Init() tea.Cmd {
	load := func() tea.Msg {
		pool, err := s.cards.All(context.Background())
		return poolLoadedMsg{Cards: pool, Err: err}
	}
	return tea.Batch(load, s.search.Init())
}

func (s *BrowseScreen) Title() string {
	return "Browse"
}

func (s *BrowseScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Show answer"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BrowseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case poolLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.pool = msg.Cards
			s.applyFilter()
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down":
			if s.selected < len(s.filtered)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if s.selected >= 0 && s.selected < len(s.filtered) {
				id := s.filtered[s.selected].ID
				s.expanded[id] = !s.expanded[id]
			}
			return s, nil
		}
	}

	// Everything else goes to the search box.
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	s.applyFilter()
	return s, cmd
}

// applyFilter recomputes the visible list from the search query.
func (s *BrowseScreen) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(s.search.Value()))
	if query == "" {
		s.filtered = s.pool
	} else {
		s.filtered = s.filtered[:0]
		for _, c := range s.pool {
			if matches(c, query) {
				s.filtered = append(s.filtered, c)
			}
		}
	}
	if s.selected >= len(s.filtered) {
		s.selected = len(s.filtered) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

// matches checks the query against question, chapter, and tags.
func matches(c *card.Card, query string) bool {
	if strings.Contains(strings.ToLower(c.Question), query) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Chapter), query) {
		return true
	}
	for _, tag := range c.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func (s *BrowseScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading cards...")
	}

	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(s.search.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).
		Render("  " + strings.Repeat("─", max(width-8, 0))))
	b.WriteString("\n\n")

	if len(s.filtered) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No matching cards."))
		return b.String()
	}

	// Window the list around the selection so it fits the screen.
	visible := max(height-6, 3)
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}
	end := min(start+visible, len(s.filtered))

	for i := start; i < end; i++ {
		c := s.filtered[i]

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		conf := fmt.Sprintf("%3d", c.ConfidenceOrDefault())
		line := fmt.Sprintf("%s[%s] %s  %s", prefix, conf, c.Chapter, c.Question)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString("  " + style.Render(truncate(line, width-6)))
		b.WriteString("\n")

		if s.expanded[c.ID] {
			answer := lipgloss.NewStyle().Foreground(theme.Success).
				Render(truncate("      "+c.Answer, width-6))
			b.WriteString("  " + answer)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d of %d cards", len(s.filtered), len(s.pool))))

	return b.String()
}

// truncate cuts a line to fit the given width.
func truncate(s string, width int) string {
	if width <= 3 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
