package quiz

import (
	"math/rand/v2"

	"github.com/samber/lo"

	"github.com/wordloop/wordloop/internal/vocab"
)

// MaxChoices is the number of options shown per question.
const MaxChoices = 4

// Question is a multiple-choice prompt for one learning item.
type Question struct {
	// Item is the learning item being asked about.
	Item vocab.LearningItem

	// Mode decides which side of Item is the prompt.
	Mode Mode

	// Prompt is the term or meaning shown to the learner.
	Prompt string

	// Answer is the correct option text.
	Answer string

	// Choices holds Answer and the distractors in display order.
	Choices []string
}

// BuildQuestion creates a question for item. Distractors are drawn from the
// other items in pool. Options equal to the answer or to each other are
// dropped, so a small pool can yield fewer than maxChoices options.
func BuildQuestion(item vocab.LearningItem, pool []vocab.LearningItem, mode Mode, rng *rand.Rand, maxChoices int) Question {
	answer := mode.option(item)

	candidates := lo.FilterMap(pool, func(other vocab.LearningItem, _ int) (string, bool) {
		v := mode.option(other)
		return v, other.ID != item.ID && v != answer
	})
	candidates = lo.Uniq(candidates)
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if n := max(0, maxChoices-1); len(candidates) > n {
		candidates = candidates[:n]
	}

	choices := append([]string{answer}, candidates...)
	rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	return Question{
		Item:    item,
		Mode:    mode,
		Prompt:  mode.prompt(item),
		Answer:  answer,
		Choices: choices,
	}
}

// IsCorrect reports whether choice is the right answer.
func (q Question) IsCorrect(choice string) bool {
	return choice == q.Answer
}

// AnswerIndex is the position of the answer in Choices.
func (q Question) AnswerIndex() int {
	return lo.IndexOf(q.Choices, q.Answer)
}
