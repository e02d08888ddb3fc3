package hints

import "github.com/wordloop/wordloop/internal/llm"

// HintSchema is the structured output requested for a memory hint.
var HintSchema = &llm.Schema{
	Name:        "memory-hint",
	Description: "A short memory aid for a vocabulary item the learner just missed",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "One or two plain sentences on what the term means and how it differs from the learner's pick",
			},
			"mnemonic": map[string]any{
				"type":        "string",
				"description": "A short, vivid memory hook for the term (under 25 words)",
			},
			"example": map[string]any{
				"type":        "string",
				"description": "One new example sentence that uses the term naturally",
			},
		},
		"required":             []any{"explanation", "mnemonic", "example"},
		"additionalProperties": false,
	},
}
