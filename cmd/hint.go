package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/wordloop/wordloop/internal/hints"
	"github.com/wordloop/wordloop/internal/vocab"
)

var hintCmd = &cobra.Command{
	Use:   "hint <term-or-id>",
	Short: "Generate a memory hint for one item",
	Long: `Ask the configured LLM provider for a memory hint, as the drill does
after a wrong answer. Progress is not changed.

Useful for checking hint quality and provider configuration.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		item, ok := findItem(rt.dataset.Items, args[0])
		if !ok {
			return fmt.Errorf("no item matches %q", args[0])
		}

		svc := rt.hintService(cmd.Context())
		if !svc.Enabled() {
			return fmt.Errorf("%w: set an API key such as GEMINI_API_KEY or configure llm.provider", hints.ErrDisabled)
		}

		in := hints.Input{Item: item}
		if ps := rt.mastery.Get(item.ID); ps != nil {
			in.Accuracy, in.Attempts = ps.Accuracy(), ps.Attempts
		}
		h, err := svc.Generate(cmd.Context(), in)
		if err != nil {
			return err
		}

		sep := strings.Repeat("─", 60)
		fmt.Printf("%s (%s)\n", item.Term, item.ID)
		fmt.Println(item.Meaning)
		fmt.Println(sep)
		fmt.Printf("Explanation: %s\n", h.Explanation)
		fmt.Printf("Mnemonic:    %s\n", h.Mnemonic)
		fmt.Printf("Example:     %s\n", h.Example)
		return nil
	},
}

// findItem matches an ID exactly or a term case-insensitively.
func findItem(items []vocab.LearningItem, query string) (vocab.LearningItem, bool) {
	return lo.Find(items, func(item vocab.LearningItem) bool {
		return item.ID == query || strings.EqualFold(item.Term, query)
	})
}
