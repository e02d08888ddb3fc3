package spacedrep

import "time"

// ProgressState holds the Leitner state for a single learning item.
// The JSON field names are the persisted format and must stay stable.
type ProgressState struct {
	ID       string `json:"id"`
	Box      int    `json:"box"`
	DueAt    int64  `json:"dueAt"`
	Attempts int    `json:"attempts"`
	Correct  int    `json:"correct"`
}

// ProgressMap maps item IDs to their progress.
type ProgressMap map[string]ProgressState

// DefaultState returns the state of an item that has never been answered.
// It is immediately due.
func DefaultState(itemID string) ProgressState {
	return ProgressState{
		ID:       itemID,
		Box:      1,
		DueAt:    0,
		Attempts: 0,
		Correct:  0,
	}
}

// IsDue reports whether the item is eligible for review at now.
// A nil state has never been reviewed and is always due.
func IsDue(state *ProgressState, now time.Time) bool {
	var dueAt int64
	if state != nil {
		dueAt = state.DueAt
	}
	return dueAt <= now.UnixMilli()
}

// IsDueNow is IsDue against the wall clock.
func IsDueNow(state *ProgressState) bool {
	return IsDue(state, time.Now())
}

// DueTime returns DueAt as a time.Time.
func (ps ProgressState) DueTime() time.Time {
	return time.UnixMilli(ps.DueAt)
}

// Mastered returns true once the item has reached the target box.
func (ps ProgressState) Mastered() bool {
	return ps.Box >= TargetBox
}

// Accuracy returns the fraction of correct answers, or 0 with no attempts.
func (ps ProgressState) Accuracy() float64 {
	if ps.Attempts == 0 {
		return 0
	}
	return float64(ps.Correct) / float64(ps.Attempts)
}

// Valid reports whether the state satisfies the box and counter invariants.
func (ps ProgressState) Valid() bool {
	return ps.Box >= 1 && ps.Box <= NumBoxes &&
		ps.Attempts >= 0 && ps.Correct >= 0 &&
		ps.Correct <= ps.Attempts
}
