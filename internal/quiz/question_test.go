package quiz

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wordloop/wordloop/internal/vocab"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func testPool() []vocab.LearningItem {
	return []vocab.LearningItem{
		{ID: "w-001", Term: "abundant", Meaning: "plentiful", Category: vocab.CategoryWords},
		{ID: "w-002", Term: "candid", Meaning: "frank", Category: vocab.CategoryWords},
		{ID: "w-003", Term: "diligent", Meaning: "hard-working", Category: vocab.CategoryWords},
		{ID: "w-004", Term: "elusive", Meaning: "hard to catch", Category: vocab.CategoryWords},
		{ID: "w-005", Term: "frugal", Meaning: "thrifty", Category: vocab.CategoryWords},
		{ID: "pv-001", Term: "give up", Meaning: "stop trying", Category: vocab.CategoryPhrasalVerbs},
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"term_to_meaning", ModeTermToMeaning},
		{"meaning_to_term", ModeMeaningToTerm},
		{"", DefaultMode},
		{"sideways", DefaultMode},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if ModeTermToMeaning.Toggle() != ModeMeaningToTerm || ModeMeaningToTerm.Toggle() != ModeTermToMeaning {
		t.Error("Toggle did not switch modes")
	}
}

func TestBuildQuestion_TermToMeaning(t *testing.T) {
	pool := testPool()
	q := BuildQuestion(pool[0], pool, ModeTermToMeaning, testRand(), MaxChoices)

	assert.Equal(t, "abundant", q.Prompt)
	assert.Equal(t, "plentiful", q.Answer)
	assert.Len(t, q.Choices, MaxChoices)
	assert.Contains(t, q.Choices, "plentiful")
	assert.Equal(t, q.Answer, q.Choices[q.AnswerIndex()])
	assert.True(t, q.IsCorrect("plentiful"))
	assert.False(t, q.IsCorrect("frank"))

	seen := map[string]bool{}
	for _, c := range q.Choices {
		assert.False(t, seen[c], "duplicate choice %q", c)
		seen[c] = true
	}
}

func TestBuildQuestion_MeaningToTerm(t *testing.T) {
	pool := testPool()
	q := BuildQuestion(pool[5], pool, ModeMeaningToTerm, testRand(), MaxChoices)

	assert.Equal(t, "stop trying", q.Prompt)
	assert.Equal(t, "give up", q.Answer)
	assert.Contains(t, q.Choices, "give up")
	for _, c := range q.Choices {
		assert.NotContains(t, []string{"plentiful", "frank", "hard-working", "hard to catch", "thrifty"}, c)
	}
}

func TestBuildQuestion_SmallPool(t *testing.T) {
	pool := testPool()[:2]
	q := BuildQuestion(pool[0], pool, ModeTermToMeaning, testRand(), MaxChoices)
	assert.ElementsMatch(t, []string{"plentiful", "frank"}, q.Choices)

	alone := BuildQuestion(pool[0], pool[:1], ModeTermToMeaning, testRand(), MaxChoices)
	assert.Equal(t, []string{"plentiful"}, alone.Choices)
}

func TestBuildQuestion_DropsDuplicateValues(t *testing.T) {
	pool := []vocab.LearningItem{
		{ID: "a", Term: "a", Meaning: "same"},
		{ID: "b", Term: "b", Meaning: "same"},
		{ID: "c", Term: "c", Meaning: "other"},
		{ID: "d", Term: "d", Meaning: "other"},
	}
	q := BuildQuestion(pool[0], pool, ModeTermToMeaning, testRand(), MaxChoices)
	assert.ElementsMatch(t, []string{"same", "other"}, q.Choices)
}

func TestBuildQuestion_Deterministic(t *testing.T) {
	pool := testPool()
	a := BuildQuestion(pool[2], pool, ModeTermToMeaning, testRand(), MaxChoices)
	b := BuildQuestion(pool[2], pool, ModeTermToMeaning, testRand(), MaxChoices)
	assert.Equal(t, a, b)
}
