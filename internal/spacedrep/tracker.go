package spacedrep

import (
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/wordloop/wordloop/internal/vocab"
)

// Stats summarizes progress over a set of items.
type Stats struct {
	Total     int
	Due       int
	Mastered  int
	Completed bool
	PerBox    [NumBoxes]int
}

// Tracker owns the progress map for a collection and applies answers to it.
// Mutations are serialized, so concurrent answers for the same item cannot
// interleave.
type Tracker struct {
	mu       sync.RWMutex
	progress ProgressMap
	log      logrus.FieldLogger
}

// NewTracker seeds a default state for every item and then merges loaded
// entries over them. A loaded entry that breaks the invariants, or whose ID
// does not match its key, is replaced by the default state for that key.
// Entries for items not in the dataset are kept so no progress is dropped.
func NewTracker(items []vocab.LearningItem, loaded ProgressMap, log logrus.FieldLogger) *Tracker {
	if log == nil {
		log = logrus.StandardLogger()
	}
	t := &Tracker{
		progress: make(ProgressMap, len(items)),
		log:      log,
	}
	for _, item := range items {
		t.progress[item.ID] = DefaultState(item.ID)
	}

	for id, ps := range loaded {
		if ps.ID != id || !ps.Valid() {
			t.log.WithFields(logrus.Fields{
				"item_id":  id,
				"box":      ps.Box,
				"attempts": ps.Attempts,
				"correct":  ps.Correct,
			}).Warn("discarding corrupted progress entry")
			t.progress[id] = DefaultState(id)
			continue
		}
		t.progress[id] = ps
	}
	return t
}

// Get returns a copy of the state for an item, or nil if it is not tracked.
func (t *Tracker) Get(itemID string) *ProgressState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ps, ok := t.progress[itemID]
	if !ok {
		return nil
	}
	return &ps
}

// Answer records an answer for an item and stores the new state.
func (t *Tracker) Answer(itemID string, correct bool, now time.Time) ProgressState {
	t.mu.Lock()
	defer t.mu.Unlock()

	var current *ProgressState
	if ps, ok := t.progress[itemID]; ok {
		current = &ps
	} else {
		def := DefaultState(itemID)
		current = &def
	}
	next := RecordAnswer(current, correct, now)
	t.progress[itemID] = next

	t.log.WithFields(logrus.Fields{
		"item_id":  itemID,
		"correct":  correct,
		"from_box": current.Box,
		"to_box":   next.Box,
		"due_at":   next.DueAt,
	}).Debug("answer recorded")

	return next
}

// Due returns the items that are due at now, in input order.
func (t *Tracker) Due(items []vocab.LearningItem, now time.Time) []vocab.LearningItem {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return lo.Filter(items, func(item vocab.LearningItem, _ int) bool {
		return IsDue(t.lookup(item.ID), now)
	})
}

// MasteredCount returns how many of the items have reached TargetBox.
func (t *Tracker) MasteredCount(items []vocab.LearningItem) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return lo.CountBy(items, func(item vocab.LearningItem) bool {
		ps := t.lookup(item.ID)
		return ps != nil && ps.Mastered()
	})
}

// Completed reports whether every item is mastered.
func (t *Tracker) Completed(items []vocab.LearningItem) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return IsCompleted(t.progress, items)
}

// Stats computes counts for the items at now.
func (t *Tracker) Stats(items []vocab.LearningItem, now time.Time) Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := Stats{Total: len(items)}
	for _, item := range items {
		ps := t.lookup(item.ID)
		box := 1
		if ps != nil {
			box = clampBox(ps.Box)
		}
		s.PerBox[box-1]++
		if box >= TargetBox {
			s.Mastered++
		}
		if IsDue(ps, now) {
			s.Due++
		}
	}
	s.Completed = IsCompleted(t.progress, items)
	return s
}

// Reset recreates default states for all items.
func (t *Tracker) Reset(items []vocab.LearningItem) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress = make(ProgressMap, len(items))
	for _, item := range items {
		t.progress[item.ID] = DefaultState(item.ID)
	}
	t.log.WithField("items", len(items)).Info("progress reset")
}

// Snapshot returns a copy of the progress map for persistence.
func (t *Tracker) Snapshot() ProgressMap {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(ProgressMap, len(t.progress))
	for id, ps := range t.progress {
		out[id] = ps
	}
	return out
}

func (t *Tracker) lookup(itemID string) *ProgressState {
	ps, ok := t.progress[itemID]
	if !ok {
		return nil
	}
	return &ps
}
