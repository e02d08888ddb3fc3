package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoice_NumberKey(t *testing.T) {
	mc := NewMultiChoice([]string{"short", "plentiful", "frank"}, 1)

	mc, submitted := mc.Update(keyPress('2'))
	if !submitted || !mc.IsCorrect() {
		t.Fatalf("submitted=%v correct=%v", submitted, mc.IsCorrect())
	}
	if mc.Chosen() != "plentiful" {
		t.Errorf("chosen = %q", mc.Chosen())
	}

	// Further keys are ignored once submitted.
	mc, submitted = mc.Update(keyPress('1'))
	if submitted || mc.ChosenIndex != 1 {
		t.Error("second answer accepted")
	}
}

func TestMultiChoice_OutOfRangeNumber(t *testing.T) {
	mc := NewMultiChoice([]string{"a", "b"}, 0)
	mc, submitted := mc.Update(keyPress('4'))
	if submitted || mc.Submitted {
		t.Error("key 4 should do nothing with two options")
	}
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	mc := NewMultiChoice([]string{"a", "b", "c"}, 2)
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if mc.Selected != 2 {
		t.Fatalf("selected = %d, want 2 (clamped)", mc.Selected)
	}
	mc, submitted := mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !submitted || !mc.IsCorrect() {
		t.Error("enter should submit the selected option")
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	var picked string
	pick := func(name string) func() tea.Cmd {
		return func() tea.Cmd { picked = name; return nil }
	}
	m := NewMenu([]MenuItem{
		{Label: "Start", Shortcut: "n", Action: pick("start"), Disabled: true},
		{Label: "Words", Action: pick("words")},
		{Label: "Quit", Action: pick("quit")},
	})
	if m.Selected != 1 {
		t.Fatalf("selected = %d, want first enabled item", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Error("up should not land on a disabled item")
	}

	m, _ = m.Update(keyPress('n'))
	if picked != "" {
		t.Error("disabled shortcut fired")
	}

	m.SetDisabled(0, false)
	m, _ = m.Update(keyPress('n'))
	if picked != "start" {
		t.Errorf("picked = %q, want start", picked)
	}

	if !strings.Contains(m.View(), "▸ Start") {
		t.Errorf("view should mark the selected item:\n%s", m.View())
	}
}

func TestProgressBar(t *testing.T) {
	out := ProgressBar{Label: "Box 1", Percent: 0.5, Width: 40, Detail: "3"}.View()
	if !strings.Contains(out, "Box 1") || !strings.Contains(out, "3") {
		t.Errorf("bar = %q", out)
	}
}

func TestRenderBanner_Fallback(t *testing.T) {
	if got := RenderBanner(40); !strings.Contains(got, "W · O · R · D") {
		t.Errorf("narrow banner = %q", got)
	}
	if got := RenderBanner(BannerWidth); !strings.Contains(got, "██") {
		t.Error("wide banner should use block letters")
	}
}
