// Package welcome is the splash shown at startup: a flash card flips over,
// then the title and the day's due count appear.
package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wordloop/wordloop/internal/router"
	"github.com/wordloop/wordloop/internal/screen"
	"github.com/wordloop/wordloop/internal/ui/components"
	"github.com/wordloop/wordloop/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	flipAt       = 600 * time.Millisecond
	bannerAt     = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const cardFront = `╭─────────────────╮
│                 │
│    ephemeral    │
│                 │
│      ·····      │
╰─────────────────╯`

const cardBack = `╭─────────────────╮
│                 │
│  lasting a very │
│   short time    │
│      box 5      │
╰─────────────────╯`

var sparkleFrames = []string{"✦", "✧"}

type tickMsg time.Time

// WelcomeScreen plays a short splash and then replaces itself with the
// screen built by next. Any key skips ahead.
type WelcomeScreen struct {
	next         func() screen.Screen
	due          func() int
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. due may be nil.
func New(next func() screen.Screen, due func() int) *WelcomeScreen {
	return &WelcomeScreen{next: next, due: due}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.tickCount++
		w.elapsed += tickInterval
		if w.elapsed >= totalDur {
			w.elapsed = totalDur
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	home := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	card := cardFront
	if w.elapsed >= flipAt {
		card = cardBack
	}
	rendered := lipgloss.NewStyle().Foreground(theme.Secondary).Render(card)

	if w.elapsed >= flipAt {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Primary).Render(sparkle)
		lines := strings.Split(rendered, "\n")
		lines[0] = s1 + "  " + lines[0] + "  " + s2
		lines[len(lines)-1] = s2 + "  " + lines[len(lines)-1] + "  " + s1
		rendered = strings.Join(lines, "\n")
	}

	sections := []string{rendered}
	if w.elapsed >= bannerAt {
		sections = append(sections,
			"",
			components.RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("One word at a time, five boxes deep."),
		)
		if w.due != nil {
			sections = append(sections, theme.Muted.Render(dueLine(w.due())))
		}
		sections = append(sections,
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

func dueLine(n int) string {
	switch n {
	case 0:
		return "Nothing is due. A good day to browse the word list."
	case 1:
		return "1 word is waiting for you."
	default:
		return fmt.Sprintf("%d words are waiting for you.", n)
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
