// Package drill is the question screen: one pass over the items that are
// due when it opens.
package drill

import (
	"context"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/wordloop/wordloop/internal/hints"
	"github.com/wordloop/wordloop/internal/mastery"
	"github.com/wordloop/wordloop/internal/quiz"
	"github.com/wordloop/wordloop/internal/router"
	"github.com/wordloop/wordloop/internal/screen"
	"github.com/wordloop/wordloop/internal/screens/summary"
	"github.com/wordloop/wordloop/internal/ui/components"
	"github.com/wordloop/wordloop/internal/ui/layout"
)

// Deps are the collaborators a drill needs.
type Deps struct {
	Mastery *mastery.Service
	Hints   *hints.Service
	Log     logrus.FieldLogger
	// Now defaults to time.Now.
	Now func() time.Time
}

// DrillScreen implements screen.Screen for an active drill.
type DrillScreen struct {
	deps    Deps
	sess    *quiz.Session
	choices components.MultiChoice
	keys    keyMap
	help    help.Model

	hint       *hints.Hint
	confirming bool
	saveFailed bool
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)
var _ screen.Confirmer = (*DrillScreen)(nil)

// New creates a DrillScreen. The session starts in Init.
func New(deps Deps) *DrillScreen {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	return &DrillScreen{
		deps: deps,
		keys: newKeyMap(),
		help: help.New(),
	}
}

func (d *DrillScreen) Init() tea.Cmd {
	d.sess = d.deps.Mastery.NewSession()
	if d.sess.Len() > 0 {
		d.deps.Mastery.StartSession(context.Background(), d.sess)
	}
	d.deps.Log.WithFields(logrus.Fields{
		"session":  d.sess.ID,
		"due":      d.sess.Len(),
		"category": d.sess.Category,
		"mode":     d.sess.Mode,
	}).Info("drill started")
	d.loadChoices()
	return nil
}

func (d *DrillScreen) Title() string {
	return "Drill"
}

// CapturesEsc is always true: Esc asks before ending the drill.
func (d *DrillScreen) CapturesEsc() bool {
	return true
}

func (d *DrillScreen) KeyHints() []layout.KeyHint {
	switch {
	case d.confirming:
		return hintsFor(d.keys.Yes, d.keys.No)
	case d.sess == nil || d.sess.Phase() == quiz.PhaseDone:
		return hintsFor(d.keys.End)
	case d.sess.Phase() == quiz.PhaseFeedback:
		return hintsFor(d.keys.Next, d.keys.End)
	default:
		return hintsFor(d.keys.Choose, d.keys.Move, d.keys.Submit, d.keys.End)
	}
}

func (d *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case hintTickMsg:
		return d, d.pollHint()
	case tea.KeyPressMsg:
		return d.handleKey(msg)
	}
	return d, nil
}

func (d *DrillScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if d.sess == nil {
		return d, nil
	}

	if d.confirming {
		switch {
		case key.Matches(msg, d.keys.Yes):
			d.confirming = false
			return d, d.finish()
		case key.Matches(msg, d.keys.No):
			d.confirming = false
		}
		return d, nil
	}

	switch d.sess.Phase() {
	case quiz.PhaseDone:
		if key.Matches(msg, d.keys.End) {
			if d.sess.Len() == 0 {
				return d, router.Pop
			}
			return d, d.finish()
		}
	case quiz.PhaseFeedback:
		switch {
		case key.Matches(msg, d.keys.Next):
			return d, d.next()
		case key.Matches(msg, d.keys.End):
			d.confirming = true
		}
	case quiz.PhaseAsking:
		if key.Matches(msg, d.keys.End) {
			d.confirming = true
			return d, nil
		}
		var submitted bool
		d.choices, submitted = d.choices.Update(msg)
		if submitted {
			return d, d.answer(d.choices.Chosen())
		}
	}
	return d, nil
}

// answer grades choice, persists the result and asks for a hint on a miss.
func (d *DrillScreen) answer(choice string) tea.Cmd {
	q := *d.sess.Current()
	r, err := d.sess.Answer(choice, d.deps.Now())
	if err != nil {
		d.deps.Log.WithError(err).Warn("answer rejected")
		return nil
	}

	ctx := context.Background()
	if err := d.deps.Mastery.RecordAnswer(ctx, d.sess, q, r); err != nil {
		d.saveFailed = true
		d.deps.Log.WithError(err).Error("persist answer")
	}

	if r.Correct || !d.deps.Hints.Enabled() {
		return nil
	}
	d.deps.Hints.Request(ctx, hints.Input{
		Item:     q.Item,
		Picked:   choice,
		Accuracy: r.After.Accuracy(),
		Attempts: r.After.Attempts,
	})
	return hintTick()
}

// next advances to the following question or ends the drill.
func (d *DrillScreen) next() tea.Cmd {
	d.deps.Hints.Cancel()
	d.hint = nil
	if !d.sess.Next(d.deps.Now()) {
		return d.finish()
	}
	d.loadChoices()
	return nil
}

// finish records the end of the drill and shows the summary in its place.
func (d *DrillScreen) finish() tea.Cmd {
	d.deps.Hints.Cancel()
	sum := d.deps.Mastery.EndSession(context.Background(), d.sess)
	d.deps.Log.WithFields(logrus.Fields{
		"session":   sum.SessionID,
		"questions": sum.Questions,
		"correct":   sum.Correct,
		"promoted":  len(sum.Promoted),
	}).Info("drill ended")

	deps := d.deps
	next := summary.New(summary.Input{
		Summary: sum,
		Items:   deps.Mastery.Items(),
		Due:     func() int { return deps.Mastery.Stats().Due },
		Restart: func() screen.Screen { return New(deps) },
	})
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (d *DrillScreen) pollHint() tea.Cmd {
	if d.sess == nil || d.sess.Phase() != quiz.PhaseFeedback {
		return nil
	}
	if h, ok := d.deps.Hints.Consume(d.sess.Current().Item.ID); ok {
		d.hint = h
		return nil
	}
	if d.deps.Hints.Pending() {
		return hintTick()
	}
	return nil
}

func (d *DrillScreen) loadChoices() {
	q := d.sess.Current()
	if q == nil {
		d.choices = components.MultiChoice{}
		return
	}
	d.choices = components.NewMultiChoice(q.Choices, q.AnswerIndex())
}

func hintTick() tea.Cmd {
	return tea.Tick(hintPollInterval, func(t time.Time) tea.Msg {
		return hintTickMsg(t)
	})
}
