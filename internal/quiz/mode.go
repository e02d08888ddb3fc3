package quiz

import "github.com/wordloop/wordloop/internal/vocab"

// Mode selects which side of an item is shown and which side is answered.
type Mode string

const (
	// ModeTermToMeaning shows the term and asks for its meaning.
	ModeTermToMeaning Mode = "term_to_meaning"

	// ModeMeaningToTerm shows the meaning and asks for the term.
	ModeMeaningToTerm Mode = "meaning_to_term"
)

// DefaultMode is used when no valid mode is stored.
const DefaultMode = ModeTermToMeaning

// ParseMode returns the mode named by s, or DefaultMode if s is unknown.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeTermToMeaning, ModeMeaningToTerm:
		return Mode(s)
	}
	return DefaultMode
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeMeaningToTerm {
		return ModeTermToMeaning
	}
	return ModeMeaningToTerm
}

// Label is the short display name.
func (m Mode) Label() string {
	if m == ModeMeaningToTerm {
		return "Meaning -> Term"
	}
	return "Term -> Meaning"
}

func (m Mode) prompt(item vocab.LearningItem) string {
	if m == ModeMeaningToTerm {
		return item.Meaning
	}
	return item.Term
}

func (m Mode) option(item vocab.LearningItem) string {
	if m == ModeMeaningToTerm {
		return item.Term
	}
	return item.Meaning
}
