package quiz

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/wordloop/wordloop/internal/spacedrep"
	"github.com/wordloop/wordloop/internal/vocab"
)

var (
	// ErrNoQuestion is returned when answering with no active question.
	ErrNoQuestion = errors.New("no active question")

	// ErrAlreadyAnswered is returned on a second answer to the same question.
	ErrAlreadyAnswered = errors.New("question already answered")
)

// Phase is the current phase of a drill session.
type Phase int

const (
	PhaseAsking   Phase = iota // Waiting for an answer
	PhaseFeedback              // Answer graded, showing feedback
	PhaseDone                  // Queue exhausted
)

// Result is the outcome of one answered question.
type Result struct {
	ItemID  string
	Choice  string
	Correct bool
	Before  spacedrep.ProgressState
	After   spacedrep.ProgressState
	Elapsed time.Duration
}

// Promoted reports whether the answer moved the item into the target box.
func (r Result) Promoted() bool {
	return r.Before.Box < spacedrep.TargetBox && r.After.Box >= spacedrep.TargetBox
}

// Session is a single pass over the items that were due when it started.
// A Session is not safe for concurrent use; the Tracker it writes to is.
type Session struct {
	// ID is the UUID for this session.
	ID string

	// Mode is the quiz direction for every question in the session.
	Mode Mode

	// Category is the filter the pool was built from.
	Category vocab.Category

	tracker *spacedrep.Tracker
	pool    []vocab.LearningItem
	rng     *rand.Rand

	queue    []vocab.LearningItem
	index    int
	question *Question
	result   *Result
	shownAt  time.Time

	startTime time.Time
	results   []Result
}

// NewSession starts a session over the items in pool that are due at now.
// A nil rng uses a randomly seeded source.
func NewSession(tracker *spacedrep.Tracker, pool []vocab.LearningItem, category vocab.Category, mode Mode, rng *rand.Rand, now time.Time) *Session {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := &Session{
		ID:       uuid.New().String(),
		Mode:     mode,
		Category: category,
		tracker:  tracker,
		pool:     pool,
		rng:      rng,
	}
	s.Restart(now)
	return s
}

// Restart rebuilds the queue from the items due at now and clears the tally.
func (s *Session) Restart(now time.Time) {
	queue := s.tracker.Due(s.pool, now)
	s.rng.Shuffle(len(queue), func(i, j int) {
		queue[i], queue[j] = queue[j], queue[i]
	})
	s.queue = queue
	s.index = 0
	s.results = nil
	s.startTime = now
	s.loadQuestion(now)
}

// Phase returns the current session phase.
func (s *Session) Phase() Phase {
	switch {
	case s.question == nil:
		return PhaseDone
	case s.result != nil:
		return PhaseFeedback
	default:
		return PhaseAsking
	}
}

// Current returns the active question, or nil when the queue is exhausted.
func (s *Session) Current() *Question {
	return s.question
}

// LastResult returns the result for the active question, or nil if it has
// not been answered yet.
func (s *Session) LastResult() *Result {
	return s.result
}

// Position is the 1-based number of the active question.
func (s *Session) Position() int {
	return min(s.index+1, len(s.queue))
}

// Len is the number of questions in the queue.
func (s *Session) Len() int {
	return len(s.queue)
}

// Answer grades choice against the active question and records it in the
// tracker. Each question accepts one answer.
func (s *Session) Answer(choice string, now time.Time) (Result, error) {
	if s.question == nil {
		return Result{}, ErrNoQuestion
	}
	if s.result != nil {
		return Result{}, ErrAlreadyAnswered
	}

	id := s.question.Item.ID
	before := spacedrep.DefaultState(id)
	if ps := s.tracker.Get(id); ps != nil {
		before = *ps
	}
	correct := s.question.IsCorrect(choice)
	after := s.tracker.Answer(id, correct, now)

	r := Result{
		ItemID:  id,
		Choice:  choice,
		Correct: correct,
		Before:  before,
		After:   after,
		Elapsed: now.Sub(s.shownAt),
	}
	s.result = &r
	s.results = append(s.results, r)
	return r, nil
}

// Next advances to the following question. It returns false when the queue
// is exhausted.
func (s *Session) Next(now time.Time) bool {
	if s.question == nil {
		return false
	}
	s.index++
	s.loadQuestion(now)
	return s.question != nil
}

// Results returns the answered questions in order.
func (s *Session) Results() []Result {
	return s.results
}

// StartTime is when the current pass began.
func (s *Session) StartTime() time.Time {
	return s.startTime
}

func (s *Session) loadQuestion(now time.Time) {
	s.result = nil
	if s.index >= len(s.queue) {
		s.question = nil
		return
	}
	q := BuildQuestion(s.queue[s.index], s.pool, s.Mode, s.rng, MaxChoices)
	s.question = &q
	s.shownAt = now
}
