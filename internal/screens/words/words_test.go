package words

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/wordloop/wordloop/internal/mastery"
	"github.com/wordloop/wordloop/internal/router"
	"github.com/wordloop/wordloop/internal/spacedrep"
	"github.com/wordloop/wordloop/internal/vocab"
)

var testNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func newScreen(t *testing.T) (*WordsScreen, *mastery.Service) {
	t.Helper()
	log, _ := test.NewNullLogger()
	svc, err := mastery.NewService(context.Background(), mastery.Options{
		Items: []vocab.LearningItem{
			{ID: "w-001", Category: vocab.CategoryWords, Term: "abundant", Meaning: "plentiful", Example: "Rain is abundant."},
			{ID: "w-002", Category: vocab.CategoryWords, Term: "brief", Meaning: "short"},
			{ID: "pv-001", Category: vocab.CategoryPhrasalVerbs, Term: "give up", Meaning: "stop trying"},
		},
		Category: vocab.CategoryWords,
		Log:      log,
		Now:      func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatal(err)
	}
	return New(svc, func() time.Time { return testNow }), svc
}

func TestWordsScreen_ListsCategory(t *testing.T) {
	s, svc := newScreen(t)
	svc.Tracker().Answer("w-001", true, testNow)
	svc.Tracker().Answer("w-001", true, testNow)
	s.Init()

	if len(s.rows) != 2 {
		t.Fatalf("rows = %d, want 2 words", len(s.rows))
	}
	if !strings.Contains(s.Title(), "Words") {
		t.Errorf("title = %q", s.Title())
	}

	view := s.View(100, 40)
	for _, want := range []string{"abundant", "brief", "in 3d", "100%", "Learning", "New"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "give up") {
		t.Error("phrasal verbs should be filtered out")
	}
}

func TestWordsScreen_NavigationAndDetail(t *testing.T) {
	s, _ := newScreen(t)
	s.Init()

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want clamped to 1", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(100, 40), "Rain is abundant.") {
		t.Error("enter should show the selected item's details")
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc should pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc should pop")
	}
}

func TestDueLabel(t *testing.T) {
	tests := []struct {
		dueAt time.Time
		want  string
	}{
		{testNow, "now"},
		{testNow.Add(-time.Hour), "now"},
		{testNow.Add(20 * time.Minute), "in 20m"},
		{testNow.Add(5 * time.Hour), "in 5h"},
		{testNow.Add(72 * time.Hour), "in 3d"},
	}
	for _, tt := range tests {
		ps := spacedrep.ProgressState{Box: 2, DueAt: tt.dueAt.UnixMilli()}
		if got := dueLabel(ps, testNow); got != tt.want {
			t.Errorf("dueLabel(%v) = %q, want %q", tt.dueAt, got, tt.want)
		}
	}
}
