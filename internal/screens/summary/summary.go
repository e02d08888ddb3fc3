// Package summary shows the results of a finished drill.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/samber/lo"

	"github.com/wordloop/wordloop/internal/quiz"
	"github.com/wordloop/wordloop/internal/router"
	"github.com/wordloop/wordloop/internal/screen"
	"github.com/wordloop/wordloop/internal/ui/components"
	"github.com/wordloop/wordloop/internal/ui/layout"
	"github.com/wordloop/wordloop/internal/ui/theme"
	"github.com/wordloop/wordloop/internal/vocab"
)

// Input is what the summary screen displays and offers.
type Input struct {
	Summary quiz.Summary
	Items   []vocab.LearningItem
	// Due reports how many items are due now. Restart is disabled at zero.
	Due func() int
	// Restart builds a fresh drill screen.
	Restart func() screen.Screen
}

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	in    Input
	terms map[string]vocab.LearningItem
	menu  components.Menu
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(in Input) *SummaryScreen {
	s := &SummaryScreen{
		in:    in,
		terms: lo.KeyBy(in.Items, func(item vocab.LearningItem) string { return item.ID }),
	}

	due := 0
	if in.Due != nil {
		due = in.Due()
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{
			Label:    fmt.Sprintf("Restart Due Session [%d due]", due),
			Shortcut: "r",
			Disabled: due == 0 || in.Restart == nil,
			Action: func() tea.Cmd {
				next := in.Restart()
				return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			},
		},
		{
			Label:  "Back to Home",
			Action: func() tea.Cmd { return router.Pop },
		},
	})
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "R", Description: "Restart"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "esc" {
		return s, router.Pop
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.in.Summary
	var b strings.Builder

	title := "Session complete!"
	if sum.Questions == 0 {
		title = "Session ended"
	}
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Title, width, title))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(layout.Centered(theme.Muted, width,
		fmt.Sprintf("%s  ·  %d:%02d", sum.Mode.Label(), mins, secs)))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(theme.Body, width,
		fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
			sum.Questions, sum.Correct, sum.Accuracy*100)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))

	if len(sum.Promoted) > 0 {
		b.WriteString(s.section(width, divider, "Newly mastered", sum.Promoted, theme.Correct, false))
	}
	if missed := lo.Uniq(sum.Missed); len(missed) > 0 {
		b.WriteString(s.section(width, divider, "To review", missed, theme.Incorrect, true))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))
	return b.String()
}

func (s *SummaryScreen) section(width int, divider, heading string, ids []string, style lipgloss.Style, withMeaning bool) string {
	var b strings.Builder
	b.WriteString(layout.Centered(theme.Muted, width, heading))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")
	for _, id := range ids {
		item, ok := s.terms[id]
		if !ok {
			continue
		}
		line := style.Render(item.Term)
		if withMeaning {
			line += theme.Muted.Render("  " + item.Meaning)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().MaxWidth(min(width-4, 76)).Render(line)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}
