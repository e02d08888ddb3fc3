// Package mastery owns the learner's progress for a dataset: it restores
// the tracker from the latest snapshot, persists it after every change and
// records answer and session events.
package mastery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wordloop/wordloop/internal/quiz"
	"github.com/wordloop/wordloop/internal/spacedrep"
	"github.com/wordloop/wordloop/internal/store"
	"github.com/wordloop/wordloop/internal/vocab"
)

// DefaultKeep is the snapshot retention used when Options.Keep is unset.
const DefaultKeep = 20

// Options configures NewService.
type Options struct {
	Items        []vocab.LearningItem
	SnapshotRepo store.SnapshotRepo
	EventRepo    store.EventRepo

	// Keep is how many snapshots survive each save.
	Keep int

	// Mode and Category override the values stored in the snapshot when set.
	Mode     quiz.Mode
	Category vocab.Category

	Log logrus.FieldLogger
	Now func() time.Time
}

// Service provides progress state management for all items.
type Service struct {
	items     []vocab.LearningItem
	snapRepo  store.SnapshotRepo
	eventRepo store.EventRepo
	keep      int
	log       logrus.FieldLogger
	now       func() time.Time

	mu       sync.RWMutex
	tracker  *spacedrep.Tracker
	mode     quiz.Mode
	category vocab.Category
}

// NewService creates a service, loading state from the latest snapshot.
// A snapshot that cannot be decoded is logged and replaced by defaults.
func NewService(ctx context.Context, opts Options) (*Service, error) {
	s := &Service{
		items:     opts.Items,
		snapRepo:  opts.SnapshotRepo,
		eventRepo: opts.EventRepo,
		keep:      opts.Keep,
		log:       opts.Log,
		now:       opts.Now,
		mode:      quiz.DefaultMode,
		category:  vocab.CategoryAll,
	}
	if s.keep < 1 {
		s.keep = DefaultKeep
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	if s.now == nil {
		s.now = time.Now
	}

	var loaded spacedrep.ProgressMap
	if s.snapRepo != nil {
		snap, err := s.snapRepo.Latest(ctx)
		switch {
		case errors.Is(err, store.ErrCorruptSnapshot):
			s.log.WithError(err).Warn("latest snapshot unreadable, starting from defaults")
		case err != nil:
			return nil, fmt.Errorf("load snapshot: %w", err)
		case snap != nil:
			loaded = snap.Data.Progress
			s.warnRecovered(snap.Data.Recovered)
			if snap.Data.Mode != "" {
				s.mode = quiz.ParseMode(snap.Data.Mode)
			}
			if c, ok := vocab.ParseCategory(snap.Data.Category); ok && snap.Data.Category != "" {
				s.category = c
			}
		}
	}
	if opts.Mode != "" {
		s.mode = opts.Mode
	}
	if opts.Category != "" {
		s.category = opts.Category
	}

	s.tracker = spacedrep.NewTracker(s.items, loaded, s.log)
	return s, nil
}

// Items returns every item in the dataset.
func (s *Service) Items() []vocab.LearningItem {
	return s.items
}

// Tracker returns the progress tracker.
func (s *Service) Tracker() *spacedrep.Tracker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracker
}

// Mode returns the current quiz mode.
func (s *Service) Mode() quiz.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Category returns the current category filter.
func (s *Service) Category() vocab.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.category
}

// SetMode changes the quiz mode and persists it.
func (s *Service) SetMode(ctx context.Context, mode quiz.Mode) error {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
	return s.Save(ctx)
}

// SetCategory changes the category filter and persists it.
func (s *Service) SetCategory(ctx context.Context, category vocab.Category) error {
	s.mu.Lock()
	s.category = category
	s.mu.Unlock()
	return s.Save(ctx)
}

// Pool returns the items in the current category.
func (s *Service) Pool() []vocab.LearningItem {
	return vocab.Filter(s.items, s.Category())
}

// Stats computes progress counts for the current category.
func (s *Service) Stats() spacedrep.Stats {
	return s.Tracker().Stats(s.Pool(), s.now())
}

// Get returns the progress for one item, or nil if it is not tracked.
func (s *Service) Get(itemID string) *spacedrep.ProgressState {
	return s.Tracker().Get(itemID)
}

// NewSession starts a drill over the items due now in the current category.
func (s *Service) NewSession() *quiz.Session {
	return quiz.NewSession(s.Tracker(), s.Pool(), s.Category(), s.Mode(), nil, s.now())
}

// Data returns the state as it would be persisted.
func (s *Service) Data() store.SnapshotData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return store.SnapshotData{
		Version:  store.SnapshotVersion,
		Progress: s.tracker.Snapshot(),
		Mode:     string(s.mode),
		Category: string(s.category),
	}
}

// Save writes a snapshot and prunes old ones. A failed prune is logged.
func (s *Service) Save(ctx context.Context) error {
	if s.snapRepo == nil {
		return nil
	}
	snap := &store.Snapshot{Timestamp: s.now(), Data: s.Data()}
	if err := s.snapRepo.Save(ctx, snap); err != nil {
		return err
	}
	if err := s.snapRepo.Prune(ctx, s.keep); err != nil {
		s.log.WithError(err).Warn("prune snapshots")
	}
	return nil
}

// Reset puts every item back to its default state and saves.
func (s *Service) Reset(ctx context.Context) error {
	s.Tracker().Reset(s.items)
	return s.Save(ctx)
}

// Restore replaces the progress with data and saves. Invalid entries are
// reset, as on startup.
func (s *Service) Restore(ctx context.Context, data store.SnapshotData) error {
	s.warnRecovered(data.Recovered)
	tracker := spacedrep.NewTracker(s.items, data.Progress, s.log)
	s.mu.Lock()
	s.tracker = tracker
	if data.Mode != "" {
		s.mode = quiz.ParseMode(data.Mode)
	}
	if c, ok := vocab.ParseCategory(data.Category); ok && data.Category != "" {
		s.category = c
	}
	s.mu.Unlock()
	return s.Save(ctx)
}

func (s *Service) warnRecovered(ids []string) {
	for _, id := range ids {
		s.log.WithField("item", id).Warn("stored progress entry unreadable, reset to default")
	}
}

// StartSession records the start of a drill.
func (s *Service) StartSession(ctx context.Context, sess *quiz.Session) {
	s.appendSession(ctx, store.SessionEventData{
		SessionID:       sess.ID,
		Action:          store.SessionStart,
		Category:        string(sess.Category),
		Mode:            string(sess.Mode),
		QuestionsServed: sess.Len(),
	})
}

// EndSession records the end of a drill and returns its summary.
func (s *Service) EndSession(ctx context.Context, sess *quiz.Session) quiz.Summary {
	sum := sess.Summary(s.now())
	s.appendSession(ctx, store.SessionEventData{
		SessionID:       sess.ID,
		Action:          store.SessionEnd,
		Category:        string(sess.Category),
		Mode:            string(sess.Mode),
		QuestionsServed: sum.Questions,
		CorrectAnswers:  sum.Correct,
		MasteredCount:   len(sum.Promoted),
		DurationSecs:    int(sum.Duration.Seconds()),
	})
	return sum
}

// RecordAnswer appends the answer event and saves a snapshot. Only the
// snapshot failure is returned; a lost event is logged.
func (s *Service) RecordAnswer(ctx context.Context, sess *quiz.Session, q quiz.Question, r quiz.Result) error {
	if s.eventRepo != nil {
		err := s.eventRepo.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:     sess.ID,
			ItemID:        r.ItemID,
			Category:      string(q.Item.Category),
			Mode:          string(q.Mode),
			Prompt:        q.Prompt,
			CorrectAnswer: q.Answer,
			LearnerAnswer: r.Choice,
			Correct:       r.Correct,
			BoxBefore:     r.Before.Box,
			BoxAfter:      r.After.Box,
			TimeMs:        r.Elapsed.Milliseconds(),
		})
		if err != nil {
			s.log.WithError(err).WithField("item", r.ItemID).Warn("record answer event")
		}
	}
	if err := s.Save(ctx); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (s *Service) appendSession(ctx context.Context, data store.SessionEventData) {
	if s.eventRepo == nil {
		return
	}
	if err := s.eventRepo.AppendSessionEvent(ctx, data); err != nil {
		s.log.WithError(err).WithField("session", data.SessionID).Warn("record session event")
	}
}
