package drill

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"github.com/samber/lo"

	"github.com/wordloop/wordloop/internal/quiz"
	"github.com/wordloop/wordloop/internal/spacedrep"
	"github.com/wordloop/wordloop/internal/ui/layout"
	"github.com/wordloop/wordloop/internal/ui/theme"
)

func (d *DrillScreen) View(width, height int) string {
	switch {
	case d.sess == nil:
		return layout.Centered(theme.Muted, width, "\n\n\nPreparing your session...")
	case d.confirming:
		return renderQuitConfirm(width)
	case d.sess.Len() == 0:
		return layout.Centered(theme.Hint, width, "\n\n\nNothing is due right now. Come back later!\n\nPress Esc to go back.")
	}

	var b strings.Builder
	b.WriteString(d.renderInfoLine(width))
	b.WriteString("\n\n")

	q := d.sess.Current()
	if q == nil {
		return b.String()
	}

	promptLabel := "Term"
	if q.Mode == quiz.ModeMeaningToTerm {
		promptLabel = "Meaning"
	}
	b.WriteString(layout.Centered(theme.Muted, width, promptLabel))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width,
		lipgloss.NewStyle().Width(min(width-8, 70)).Align(lipgloss.Center).Render(q.Prompt)))
	b.WriteString("\n\n")

	block := d.choices.View(min(width-4, 76))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
	b.WriteString("\n")

	if d.sess.Phase() == quiz.PhaseFeedback {
		b.WriteString(d.renderFeedback(width))
	} else {
		b.WriteString(layout.Centered(lipgloss.NewStyle(), width,
			d.help.ShortHelpView([]key.Binding{d.keys.Choose, d.keys.Move, d.keys.Submit})))
	}
	return b.String()
}

func (d *DrillScreen) renderInfoLine(width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  %s  ·  %s", d.sess.Category, d.sess.Mode.Label()))

	correct := lo.CountBy(d.sess.Results(), func(r quiz.Result) bool { return r.Correct })
	right := theme.Muted.Render(fmt.Sprintf("Question %d / %d   %s %d",
		d.sess.Position(), d.sess.Len(),
		lipgloss.NewStyle().Foreground(theme.Success).Render("correct"), correct))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 2; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line + "\n" + lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-2, 0)))
}

func (d *DrillScreen) renderFeedback(width int) string {
	r := d.sess.LastResult()
	q := d.sess.Current()
	if r == nil || q == nil {
		return ""
	}

	var b strings.Builder
	if r.Correct {
		b.WriteString(layout.Centered(theme.Correct, width, "Correct."))
	} else {
		b.WriteString(layout.Centered(theme.Incorrect, width, "Incorrect."))
		b.WriteString("\n")
		b.WriteString(layout.Centered(theme.Muted, width, "Answer: "+q.Answer))
	}
	b.WriteString("\n")

	move := fmt.Sprintf("Box %d → %d", r.Before.Box, r.After.Box)
	if r.Promoted() {
		move += "  mastered!"
	}
	b.WriteString(layout.Centered(theme.BoxStyle(r.After.Box), width, move+"   "+dueText(r.After)))
	b.WriteString("\n\n")

	if q.Item.Example != "" {
		b.WriteString(layout.Centered(theme.Hint, width,
			lipgloss.NewStyle().Width(min(width-8, 70)).Render("Example: "+q.Item.Example)))
		b.WriteString("\n")
	}

	switch {
	case d.hint != nil:
		card := strings.Join([]string{
			theme.Selected.Render("Memory hint"),
			d.hint.Explanation,
			lipgloss.NewStyle().Foreground(theme.Accent).Render(d.hint.Mnemonic),
			theme.Hint.Render(d.hint.Example),
		}, "\n")
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Card.Width(min(width-8, 72)).Render(card)))
		b.WriteString("\n")
	case !r.Correct && d.deps.Hints.Pending():
		b.WriteString(layout.Centered(theme.Muted, width, "Fetching a memory hint..."))
		b.WriteString("\n")
	}

	if d.saveFailed {
		b.WriteString(layout.Centered(theme.Incorrect, width, "Progress could not be saved. See the log file."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	nextLabel := "Press Enter for the next question"
	if d.sess.Position() >= d.sess.Len() {
		nextLabel = "Press Enter to finish"
	}
	b.WriteString(layout.Centered(theme.Muted, width, nextLabel))
	return b.String()
}

// dueText describes when an item is next due.
func dueText(ps spacedrep.ProgressState) string {
	days := spacedrep.IntervalFor(ps.Box).Hours() / 24
	switch {
	case days <= 0:
		return "due again now"
	case days == 1:
		return "due tomorrow"
	default:
		return fmt.Sprintf("due in %.0f days", days)
	}
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, "End session early?"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Muted, width, "Answers so far are already saved."))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Success), width, "[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Primary), width, "[N] No, keep going"))
	return b.String()
}
