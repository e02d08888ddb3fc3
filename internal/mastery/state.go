package mastery

import "github.com/wordloop/wordloop/internal/spacedrep"

// State is an item's position in the learning lifecycle, derived from its
// Leitner box and answer count.
type State string

const (
	StateNew      State = "new"
	StateLearning State = "learning"
	StateMastered State = "mastered"
)

// Resolve maps a progress state to its display state. A nil state has never
// been answered.
func Resolve(ps *spacedrep.ProgressState) State {
	switch {
	case ps == nil || ps.Attempts == 0:
		return StateNew
	case ps.Mastered():
		return StateMastered
	default:
		return StateLearning
	}
}

// Label is the short display name.
func (s State) Label() string {
	switch s {
	case StateLearning:
		return "Learning"
	case StateMastered:
		return "Mastered"
	default:
		return "New"
	}
}
