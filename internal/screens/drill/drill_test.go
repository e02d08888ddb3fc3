package drill

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/wordloop/wordloop/internal/hints"
	"github.com/wordloop/wordloop/internal/llm"
	"github.com/wordloop/wordloop/internal/mastery"
	"github.com/wordloop/wordloop/internal/router"
	"github.com/wordloop/wordloop/internal/screen"
	"github.com/wordloop/wordloop/internal/store"
	"github.com/wordloop/wordloop/internal/vocab"
)

var testNow = time.Date(2025, 4, 2, 18, 30, 0, 0, time.UTC)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testItems() []vocab.LearningItem {
	return []vocab.LearningItem{
		{ID: "w-001", Category: vocab.CategoryWords, Term: "abundant", Meaning: "plentiful", Example: "Rain is abundant here."},
		{ID: "w-002", Category: vocab.CategoryWords, Term: "brief", Meaning: "short", Example: "It was a brief visit."},
		{ID: "w-003", Category: vocab.CategoryWords, Term: "candid", Meaning: "frank", Example: "She gave a candid answer."},
		{ID: "w-004", Category: vocab.CategoryWords, Term: "diligent", Meaning: "hard-working", Example: "A diligent student."},
	}
}

type fixture struct {
	screen *DrillScreen
	store  *store.Store
	svc    *mastery.Service
}

func newFixture(t *testing.T, provider llm.Provider) fixture {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "drill.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	log, _ := test.NewNullLogger()
	now := func() time.Time { return testNow }
	svc, err := mastery.NewService(context.Background(), mastery.Options{
		Items:        testItems(),
		SnapshotRepo: st.SnapshotRepo(),
		EventRepo:    st.EventRepo(),
		Log:          log,
		Now:          now,
	})
	if err != nil {
		t.Fatalf("mastery service: %v", err)
	}

	d := New(Deps{
		Mastery: svc,
		Hints:   hints.NewService(provider, hints.DefaultConfig(), log),
		Log:     log,
		Now:     now,
	})
	d.Init()
	return fixture{screen: d, store: st, svc: svc}
}

// choiceKey returns the number key for the right or a wrong option.
func choiceKey(d *DrillScreen, correct bool) tea.KeyPressMsg {
	q := d.sess.Current()
	idx := q.AnswerIndex()
	if !correct {
		idx = (idx + 1) % len(q.Choices)
	}
	return keyPress(rune('1' + idx))
}

func TestDrillScreen_Title(t *testing.T) {
	f := newFixture(t, nil)
	if f.screen.Title() != "Drill" {
		t.Errorf("Title = %q, want Drill", f.screen.Title())
	}
}

func TestDrillScreen_CorrectAnswer(t *testing.T) {
	f := newFixture(t, nil)
	d := f.screen
	itemID := d.sess.Current().Item.ID

	var scr screen.Screen = d
	scr, _ = scr.Update(choiceKey(d, true))
	d = scr.(*DrillScreen)

	r := d.sess.LastResult()
	if r == nil || !r.Correct {
		t.Fatalf("expected a correct result, got %+v", r)
	}
	view := d.View(100, 30)
	if !strings.Contains(view, "Correct.") {
		t.Errorf("feedback missing:\n%s", view)
	}
	if !strings.Contains(view, "Example: ") {
		t.Error("feedback should show the example sentence")
	}

	acc, err := f.store.EventRepo().ItemAccuracy(context.Background(), itemID)
	if err != nil {
		t.Fatal(err)
	}
	if acc.Attempts != 1 || acc.Correct != 1 {
		t.Errorf("answer event = %+v", acc)
	}

	snap, err := f.store.SnapshotRepo().Latest(context.Background())
	if err != nil || snap == nil {
		t.Fatalf("expected a snapshot after answering, err=%v", err)
	}
	if snap.Data.Progress[itemID].Box != 2 {
		t.Errorf("snapshot box = %d, want 2", snap.Data.Progress[itemID].Box)
	}
}

func TestDrillScreen_IncorrectAnswerFetchesHint(t *testing.T) {
	body, _ := json.Marshal(map[string]string{
		"explanation": "It means more than enough.",
		"mnemonic":    "A BUNDANCE of buns.",
		"example":     "Food was abundant at the feast.",
	})
	mock := llm.NewMockProvider(llm.MockResponse{Content: body})
	f := newFixture(t, mock)
	d := f.screen

	d.Update(choiceKey(d, false))
	view := d.View(100, 30)
	if !strings.Contains(view, "Incorrect.") {
		t.Errorf("feedback missing:\n%s", view)
	}
	if d.sess.LastResult().After.Box != 1 {
		t.Error("a miss must reset to box 1")
	}

	deadline := time.Now().Add(5 * time.Second)
	for d.hint == nil && time.Now().Before(deadline) {
		d.Update(hintTickMsg(time.Now()))
		time.Sleep(5 * time.Millisecond)
	}
	if d.hint == nil {
		t.Fatal("hint never arrived")
	}
	if !strings.Contains(d.View(100, 40), "A BUNDANCE of buns.") {
		t.Error("hint should be rendered in the feedback")
	}

	calls := mock.Calls()
	if len(calls) != 1 || !strings.Contains(calls[0].Messages[0].Content, d.sess.Current().Item.Term) {
		t.Errorf("unexpected hint requests: %+v", calls)
	}
}

func TestDrillScreen_QuitConfirm(t *testing.T) {
	f := newFixture(t, nil)
	var scr screen.Screen = f.screen

	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	d := scr.(*DrillScreen)
	if !d.confirming {
		t.Fatal("expected quit confirmation dialog")
	}

	scr, _ = d.Update(keyPress('n'))
	d = scr.(*DrillScreen)
	if d.confirming {
		t.Error("expected quit confirmation to be dismissed")
	}
	if d.sess.LastResult() != nil {
		t.Error("dismissing must not answer the question")
	}
}

func TestDrillScreen_QuitConfirm_Yes(t *testing.T) {
	f := newFixture(t, nil)
	var scr screen.Screen = f.screen
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	_, cmd := scr.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command after quit confirmation")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("ending should replace the drill with its summary")
	}

	sessions, err := f.store.EventRepo().QuerySessionSummaries(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 || sessions[0].QuestionsServed != 0 {
		t.Errorf("sessions = %+v", sessions)
	}
}

func TestDrillScreen_FullPass(t *testing.T) {
	f := newFixture(t, nil)
	d := f.screen
	if d.sess.Len() != 4 {
		t.Fatalf("due = %d, want 4", d.sess.Len())
	}

	var last tea.Cmd
	for i := 0; i < 4; i++ {
		d.Update(choiceKey(d, true))
		_, last = d.Update(specialKey(tea.KeyEnter))
	}
	if last == nil {
		t.Fatal("the last Next should end the drill")
	}
	msg, ok := last().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("unexpected msg %#v", last())
	}
	if msg.Screen.Title() != "Session Summary" {
		t.Errorf("next screen = %q", msg.Screen.Title())
	}

	// Everything moved to box 2, so nothing is due any more.
	if due := f.svc.Stats().Due; due != 0 {
		t.Errorf("due after pass = %d, want 0", due)
	}
}

func TestDrillScreen_NothingDue(t *testing.T) {
	f := newFixture(t, nil)
	for _, item := range testItems() {
		f.svc.Tracker().Answer(item.ID, true, testNow)
	}

	d := New(f.screen.deps)
	d.Init()
	if !strings.Contains(d.View(100, 30), "Nothing is due") {
		t.Error("expected the empty state")
	}
	_, cmd := d.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("esc should leave")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc with nothing due should pop without a summary")
	}
}

func TestDrillScreen_KeyHints(t *testing.T) {
	f := newFixture(t, nil)
	d := f.screen
	if got := len(d.KeyHints()); got != 4 {
		t.Errorf("asking hints = %d, want 4", got)
	}
	d.Update(keyPress('1'))
	hints := d.KeyHints()
	if len(hints) != 2 || hints[0].Description != "next" {
		t.Errorf("feedback hints = %+v", hints)
	}
	if !d.CapturesEsc() {
		t.Error("drill should capture esc")
	}
}
