// Package words lists every item in the current category with its box,
// due time and accuracy.
package words

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wordloop/wordloop/internal/mastery"
	"github.com/wordloop/wordloop/internal/router"
	"github.com/wordloop/wordloop/internal/screen"
	"github.com/wordloop/wordloop/internal/spacedrep"
	"github.com/wordloop/wordloop/internal/ui/components"
	"github.com/wordloop/wordloop/internal/ui/layout"
	"github.com/wordloop/wordloop/internal/ui/theme"
	"github.com/wordloop/wordloop/internal/vocab"
)

// row is one rendered item.
type row struct {
	item  vocab.LearningItem
	state spacedrep.ProgressState
}

// WordsScreen displays the word list.
type WordsScreen struct {
	svc      *mastery.Service
	now      func() time.Time
	rows     []row
	stats    spacedrep.Stats
	selected int
	offset   int
	expanded bool
}

var _ screen.Screen = (*WordsScreen)(nil)
var _ screen.KeyHintProvider = (*WordsScreen)(nil)

// New creates a WordsScreen. A nil now uses time.Now.
func New(svc *mastery.Service, now func() time.Time) *WordsScreen {
	if now == nil {
		now = time.Now
	}
	return &WordsScreen{svc: svc, now: now}
}

func (s *WordsScreen) Init() tea.Cmd {
	s.rows = s.rows[:0]
	for _, item := range s.svc.Pool() {
		ps := spacedrep.DefaultState(item.ID)
		if got := s.svc.Get(item.ID); got != nil {
			ps = *got
		}
		s.rows = append(s.rows, row{item: item, state: ps})
	}
	s.stats = s.svc.Stats()
	return nil
}

func (s *WordsScreen) Title() string {
	return fmt.Sprintf("Word List: %s", s.svc.Category())
}

func (s *WordsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *WordsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc":
		return s, router.Pop
	case "up", "k":
		s.selected = max(s.selected-1, 0)
	case "down", "j":
		s.selected = min(s.selected+1, max(len(s.rows)-1, 0))
	case "pgup":
		s.selected = max(s.selected-10, 0)
	case "pgdown":
		s.selected = min(s.selected+10, max(len(s.rows)-1, 0))
	case "home", "g":
		s.selected = 0
	case "end", "G":
		s.selected = max(len(s.rows)-1, 0)
	case "enter":
		s.expanded = !s.expanded
	}
	return s, nil
}

func (s *WordsScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return layout.Centered(theme.Hint, width, "\n\nNo items in this category.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderBoxes(width))
	b.WriteString("\n")

	listWidth := min(width-4, 96)
	header := fmt.Sprintf("  %-28s %-6s %-12s %-9s %s", "Term", "Box", "Due", "Accuracy", "State")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Muted.Width(listWidth).Render(header)))
	b.WriteString("\n")

	// Rows visible after the box chart, the column header and the detail pane.
	visible := max(height-len(s.stats.PerBox)-8, 3)
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+visible {
		s.offset = s.selected - visible + 1
	}
	end := min(s.offset+visible, len(s.rows))

	now := s.now()
	for i := s.offset; i < end; i++ {
		r := s.rows[i]
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		acc := "-"
		if r.state.Attempts > 0 {
			acc = fmt.Sprintf("%.0f%%", r.state.Accuracy()*100)
		}
		line := fmt.Sprintf("%s%-28s %s %-12s %-9s %s",
			prefix, truncate(r.item.Term, 28),
			theme.BoxStyle(r.state.Box).Render(fmt.Sprintf("%-6d", r.state.Box)),
			dueLabel(r.state, now), acc, mastery.Resolve(&r.state).Label())
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Width(listWidth).Render(line)))
		b.WriteString("\n")
	}

	if s.expanded && s.selected < len(s.rows) {
		item := s.rows[s.selected].item
		detail := strings.Join([]string{
			theme.Selected.Render(item.Term),
			item.Meaning,
			theme.Hint.Render(item.Example),
		}, "\n")
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Card.Width(listWidth).Render(detail)))
	}
	return b.String()
}

func (s *WordsScreen) renderBoxes(width int) string {
	var b strings.Builder
	total := max(s.stats.Total, 1)
	for i, n := range s.stats.PerBox {
		label := fmt.Sprintf("Box %d (%2dd)", i+1, spacedrep.IntervalDays(i+1))
		bar := components.ProgressBar{
			Label:   label,
			Percent: float64(n) / float64(total),
			Width:   min(width-8, 60),
			Detail:  fmt.Sprintf("%d", n),
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}
	return b.String()
}

// dueLabel renders the due time relative to now.
func dueLabel(ps spacedrep.ProgressState, now time.Time) string {
	if spacedrep.IsDue(&ps, now) {
		return "now"
	}
	d := ps.DueTime().Sub(now)
	switch {
	case d < time.Hour:
		return fmt.Sprintf("in %dm", max(int(d.Minutes()), 1))
	case d < 24*time.Hour:
		return fmt.Sprintf("in %dh", int(d.Hours()))
	default:
		return fmt.Sprintf("in %dd", int(d.Hours()/24))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
