// Package app hosts the root Bubble Tea model: a router of screens framed by
// a header with progress counts and a footer with key hints.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/wordloop/wordloop/internal/hints"
	"github.com/wordloop/wordloop/internal/mastery"
	"github.com/wordloop/wordloop/internal/router"
	"github.com/wordloop/wordloop/internal/screen"
	"github.com/wordloop/wordloop/internal/screens/home"
	"github.com/wordloop/wordloop/internal/screens/welcome"
	"github.com/wordloop/wordloop/internal/store"
	"github.com/wordloop/wordloop/internal/ui/layout"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Mastery   *mastery.Service
	Hints     *hints.Service
	EventRepo store.EventRepo
	Log       logrus.FieldLogger
	Now       func() time.Time
	// Splash plays the welcome animation before the home screen.
	Splash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	mastery *mastery.Service
	width   int
	height  int
}

// newAppModel creates a new AppModel rooted at the home screen, behind the
// welcome splash when opts.Splash is set.
func newAppModel(opts Options) AppModel {
	newHome := func() screen.Screen {
		return home.New(home.Deps{
			Mastery:   opts.Mastery,
			Hints:     opts.Hints,
			EventRepo: opts.EventRepo,
			Log:       opts.Log,
			Now:       opts.Now,
		})
	}

	var initial screen.Screen
	if opts.Splash {
		var due func() int
		if opts.Mastery != nil {
			due = func() int { return opts.Mastery.Stats().Due }
		}
		initial = welcome.New(newHome, due)
	} else {
		initial = newHome()
	}
	return AppModel{
		router:  router.New(initial),
		mastery: opts.Mastery,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.Confirmer); ok && c.CapturesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop
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

	header := layout.RenderHeader(title, m.headerStats(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) headerStats() layout.HeaderStats {
	if m.mastery == nil {
		return layout.HeaderStats{}
	}
	st := m.mastery.Stats()
	return layout.HeaderStats{Due: st.Due, Mastered: st.Mastered, Total: st.Total}
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
