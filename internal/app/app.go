package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ksuda/kioku/internal/router"
	"github.com/ksuda/kioku/internal/screen"
	"github.com/ksuda/kioku/internal/screens/home"
	"github.com/ksuda/kioku/internal/screens/study"
	"github.com/ksuda/kioku/internal/store"
	"github.com/ksuda/kioku/internal/ui/layout"
)

// Options carries the dependencies the TUI needs.
type Options struct {
	Cards  store.CardRepo
	Events store.EventRepo

	// Study, when set, opens a session on top of the home screen at
	// startup instead of waiting for a menu selection.
	Study *study.Options
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
	due    int
	total  int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	m := AppModel{
		opts:   opts,
		router: router.New(home.New(opts.Cards, opts.Events)),
	}
	m.refreshCounts()
	return m
}

// refreshCounts recomputes the header due/total counters from the pool.
func (m *AppModel) refreshCounts() {
	if m.opts.Cards == nil {
		return
	}
	pool, err := m.opts.Cards.All(context.Background())
	if err != nil {
		return
	}
	now := time.Now()
	due := 0
	for _, c := range pool {
		if c.IsDue(now) {
			due++
		}
	}
	m.due = due
	m.total = len(pool)
}

func (m AppModel) Init() tea.Cmd {
	if m.opts.Study != nil {
		opts := *m.opts.Study
		return func() tea.Msg {
			return router.PushScreenMsg{
				Screen: study.New(m.opts.Cards, m.opts.Events, opts),
			}
		}
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case router.PopScreenMsg:
		// Returning from a screen may have changed review state.
		cmd := m.router.Update(msg)
		m.refreshCounts()
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscHandler); ok && h.WantsEsc() {
				break // let the screen handle it
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.due, m.total, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
