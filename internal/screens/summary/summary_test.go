package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/wordloop/wordloop/internal/quiz"
	"github.com/wordloop/wordloop/internal/router"
	"github.com/wordloop/wordloop/internal/screen"
	"github.com/wordloop/wordloop/internal/vocab"
)

type stubScreen struct{}

func (stubScreen) Init() tea.Cmd                           { return nil }
func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (stubScreen) View(int, int) string                    { return "" }
func (stubScreen) Title() string                           { return "stub" }

func testInput(due int) Input {
	return Input{
		Summary: quiz.Summary{
			SessionID: "s-1",
			Mode:      quiz.ModeTermToMeaning,
			Questions: 4,
			Correct:   3,
			Accuracy:  0.75,
			Duration:  2*time.Minute + 5*time.Second,
			Promoted:  []string{"w-001"},
			Missed:    []string{"pv-001"},
		},
		Items: []vocab.LearningItem{
			{ID: "w-001", Term: "abundant", Meaning: "plentiful"},
			{ID: "pv-001", Term: "give up", Meaning: "stop trying"},
		},
		Due:     func() int { return due },
		Restart: func() screen.Screen { return stubScreen{} },
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testInput(0))
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	view := New(testInput(3)).View(100, 30)
	for _, want := range []string{"Session complete!", "2:05", "Accuracy: 75%", "abundant", "give up", "stop trying", "Restart Due Session [3 due]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_Restart(t *testing.T) {
	s := New(testInput(2))
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a command on r")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("restart should replace the summary with a new drill")
	}
}

func TestSummaryScreen_RestartDisabledWhenNothingDue(t *testing.T) {
	s := New(testInput(0))
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd != nil {
		t.Error("restart should be disabled with nothing due")
	}

	// Enter lands on Back to Home.
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("enter should pop back home")
	}
}

func TestSummaryScreen_Esc(t *testing.T) {
	s := New(testInput(1))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}
