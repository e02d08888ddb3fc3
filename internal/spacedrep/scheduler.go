package spacedrep

import (
	"time"

	"github.com/wordloop/wordloop/internal/vocab"
)

// RecordAnswer applies the Leitner transition for one answer and returns the
// new state. A correct answer moves the item up one box, capped at
// TargetBox. Any incorrect answer sends it back to box 1, which has a zero
// interval, so the item is due again at now.
//
// The input is never modified. A nil state starts from DefaultState("").
func RecordAnswer(state *ProgressState, correct bool, now time.Time) ProgressState {
	current := DefaultState("")
	if state != nil {
		current = *state
	}

	nextBox := 1
	if correct {
		nextBox = min(current.Box+1, NumBoxes)
	}

	next := current
	next.Box = nextBox
	next.DueAt = now.UnixMilli() + intervalMillis(nextBox)
	next.Attempts = current.Attempts + 1
	if correct {
		next.Correct = current.Correct + 1
	}
	return next
}

// IsCompleted reports whether every item has reached TargetBox. Items with
// no entry in progress count as box 1. An empty item list is complete.
func IsCompleted(progress ProgressMap, items []vocab.LearningItem) bool {
	for _, item := range items {
		box := 1
		if ps, ok := progress[item.ID]; ok {
			box = ps.Box
		}
		if box < TargetBox {
			return false
		}
	}
	return true
}
