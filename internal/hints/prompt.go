package hints

import (
	"fmt"
	"strings"

	"github.com/wordloop/wordloop/internal/vocab"
)

const systemPrompt = `You help adult English learners remember vocabulary. A learner just picked the wrong option in a multiple-choice drill. Be brief, concrete and friendly.`

func userPrompt(in Input) string {
	var b strings.Builder

	kind := "word"
	if in.Item.Category == vocab.CategoryPhrasalVerbs {
		kind = "phrasal verb"
	}
	fmt.Fprintf(&b, "Term (%s): %s\n", kind, in.Item.Term)
	fmt.Fprintf(&b, "Meaning: %s\n", in.Item.Meaning)
	if in.Item.Example != "" {
		fmt.Fprintf(&b, "Known example: %s\n", in.Item.Example)
	}
	if in.Picked != "" {
		fmt.Fprintf(&b, "Learner picked: %s\n", in.Picked)
	}
	if in.Attempts > 0 {
		fmt.Fprintf(&b, "Learner accuracy on this term: %.0f%% over %d attempts\n", in.Accuracy*100, in.Attempts)
	}

	b.WriteString(`
Instructions:
1. Explain the meaning in one or two plain sentences. If the learner's pick is close in meaning, say how they differ.
2. Give a short mnemonic: a sound-alike, an image or a word-part breakdown.
3. Write one new example sentence, different from the known example.
Plain text only. No markdown.`)

	return b.String()
}
