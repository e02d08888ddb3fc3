package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/wordloop/wordloop/internal/ui/components"
	"github.com/wordloop/wordloop/internal/ui/theme"
)

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back the header and footer.
	compact := height+8 < 30 || width < 100
	cw := contentWidth(width, compact)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, h.renderStats(cw))

	switch {
	case h.confirming:
		sections = append(sections, renderResetConfirm(cw))
	default:
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(lipgloss.NewStyle().Align(lipgloss.Left).Render(h.menu.View())))
	}

	if h.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).
			Width(cw).Align(lipgloss.Center).Render(h.errMsg))
	} else if h.notice != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Success).
			Width(cw).Align(lipgloss.Center).Render(h.notice))
	}
	if !h.deps.Hints.Enabled() {
		sections = append(sections, theme.Hint.Width(cw).Align(lipgloss.Center).
			Render("Memory hints are off. Configure an LLM provider to enable them."))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int, compact bool) int {
	limit := 76
	if compact {
		limit = 60
	}
	return max(min(frameWidth-6, limit), 20)
}

func renderTitle(cw int, compact bool) string {
	width := cw
	if compact {
		width = 0
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(components.RenderBanner(width))
}

// renderStats renders the dashboard counts in a bordered box.
func (h *HomeScreen) renderStats(cw int) string {
	st := h.stats
	label := theme.Muted
	value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	dueStyle := value
	if st.Due > 0 {
		dueStyle = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	}

	completed := "not yet"
	if st.Completed {
		completed = lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("yes")
	}

	line1 := fmt.Sprintf("%s %s   %s %s   %s %s",
		label.Render("Total"), value.Render(fmt.Sprint(st.Total)),
		label.Render("Due now"), dueStyle.Render(fmt.Sprint(st.Due)),
		label.Render("Mastered"), value.Render(fmt.Sprintf("%d/%d", st.Mastered, st.Total)))
	line2 := fmt.Sprintf("%s %s   %s %s",
		label.Render("Completed"), completed,
		label.Render("Mode"), value.Render(h.deps.Mastery.Mode().Label()))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line1 + "\n" + line2)
}

func renderResetConfirm(cw int) string {
	body := strings.Join([]string{
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Reset all progress?"),
		theme.Muted.Render("Every item goes back to box 1 and becomes due."),
		"",
		lipgloss.NewStyle().Foreground(theme.Error).Render("[Y] Yes, reset") + "    " +
			lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] No"),
	}, "\n")
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(body)
}

// renderFrame wraps content in a double border centered in the given area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
