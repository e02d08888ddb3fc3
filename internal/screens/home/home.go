// Package home is the root screen: progress at a glance and the main menu.
package home

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/wordloop/wordloop/internal/hints"
	"github.com/wordloop/wordloop/internal/mastery"
	"github.com/wordloop/wordloop/internal/router"
	"github.com/wordloop/wordloop/internal/screen"
	"github.com/wordloop/wordloop/internal/screens/drill"
	"github.com/wordloop/wordloop/internal/screens/history"
	"github.com/wordloop/wordloop/internal/screens/words"
	"github.com/wordloop/wordloop/internal/spacedrep"
	"github.com/wordloop/wordloop/internal/store"
	"github.com/wordloop/wordloop/internal/ui/components"
	"github.com/wordloop/wordloop/internal/ui/layout"
)

// Deps are the services the home screen and the screens it opens share.
type Deps struct {
	Mastery   *mastery.Service
	Hints     *hints.Service
	EventRepo store.EventRepo
	Log       logrus.FieldLogger
	Now       func() time.Time
}

type (
	cycleCategoryMsg struct{}
	toggleModeMsg    struct{}
	askResetMsg      struct{}
)

// Menu positions.
const (
	itemStart = iota
	itemWords
	itemHistory
	itemCategory
	itemMode
	itemReset
	itemQuit
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps       Deps
	menu       components.Menu
	stats      spacedrep.Stats
	confirming bool
	notice     string
	errMsg     string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)
var _ screen.Confirmer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu([]components.MenuItem{
		itemStart: {Shortcut: "n", Action: func() tea.Cmd {
			return router.Push(drill.New(drill.Deps{
				Mastery: deps.Mastery,
				Hints:   deps.Hints,
				Log:     deps.Log,
				Now:     deps.Now,
			}))
		}},
		itemWords: {Label: "Word List", Shortcut: "w", Action: func() tea.Cmd {
			return router.Push(words.New(deps.Mastery, deps.Now))
		}},
		itemHistory: {Label: "History", Shortcut: "h", Action: func() tea.Cmd {
			return router.Push(history.New(deps.EventRepo))
		}},
		itemCategory: {Shortcut: "c", Action: msgCmd(cycleCategoryMsg{})},
		itemMode:     {Shortcut: "m", Action: msgCmd(toggleModeMsg{})},
		itemReset:    {Label: "Reset All Progress", Shortcut: "x", Action: msgCmd(askResetMsg{})},
		itemQuit:     {Label: "Quit", Shortcut: "q", Action: func() tea.Cmd { return tea.Quit }},
	})
	h.refresh()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes the counts after a drill or a word list closes.
func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// CapturesEsc is true while the reset confirmation is open.
func (h *HomeScreen) CapturesEsc() bool {
	return h.confirming
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.confirming {
		return []layout.KeyHint{
			{Key: "y", Description: "Reset"},
			{Key: "n", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "c", Description: "Category"},
		{Key: "m", Description: "Mode"},
		{Key: "q", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cycleCategoryMsg:
		h.apply("change category", func(ctx context.Context) error {
			return h.deps.Mastery.SetCategory(ctx, h.deps.Mastery.Category().Next())
		})
		return h, nil
	case toggleModeMsg:
		h.apply("change mode", func(ctx context.Context) error {
			return h.deps.Mastery.SetMode(ctx, h.deps.Mastery.Mode().Toggle())
		})
		return h, nil
	case askResetMsg:
		h.confirming = true
		return h, nil
	case tea.KeyPressMsg:
		if h.confirming {
			return h, h.handleConfirm(msg)
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) handleConfirm(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		h.confirming = false
		h.apply("reset progress", h.deps.Mastery.Reset)
		if h.errMsg == "" {
			h.notice = "All progress has been reset."
			h.deps.Log.Info("progress reset")
		}
	case "n", "N", "esc":
		h.confirming = false
	}
	return nil
}

// apply runs a state change, then refreshes. A failed save is shown on screen.
func (h *HomeScreen) apply(what string, fn func(context.Context) error) {
	h.notice = ""
	h.errMsg = ""
	if err := fn(context.Background()); err != nil {
		h.deps.Log.WithError(err).Error(what)
		h.errMsg = fmt.Sprintf("Could not %s: %v", what, err)
	}
	h.refresh()
}

// refresh recomputes the counts and the labels that depend on them.
func (h *HomeScreen) refresh() {
	svc := h.deps.Mastery
	h.stats = svc.Stats()
	h.menu.Items[itemStart].Label = fmt.Sprintf("Start Due Session [%d due]", h.stats.Due)
	h.menu.Items[itemCategory].Label = fmt.Sprintf("Category: %s", svc.Category())
	h.menu.Items[itemMode].Label = fmt.Sprintf("Mode: %s", svc.Mode().Label())
	h.menu.SetDisabled(itemStart, h.stats.Due == 0)
}

func msgCmd(msg tea.Msg) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return msg }
	}
}
