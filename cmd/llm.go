package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/wordloop/wordloop/internal/llm"
	"github.com/wordloop/wordloop/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the hint requests sent to the LLM provider",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent hint requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		failed, _ := cmd.Flags().GetBool("failed")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if failed {
			events = lo.Reject(events, func(e store.LLMEventRecord, _ int) bool { return e.Success })
		}
		if len(events) == 0 {
			fmt.Println("No hint requests recorded.")
			return nil
		}

		fmt.Printf("%-5s  %-16s  %-24s  %9s  %6s  %s\n", "ID", "When", "Model", "Tokens", "Ms", "Result")
		for _, e := range events {
			result := "ok"
			if !e.Success {
				result = truncate(e.ErrorMessage, 40)
			}
			fmt.Printf("%-5d  %-16s  %-24s  %4d/%-4d  %6d  %s\n",
				e.ID, e.Timestamp.Local().Format("2006-01-02 15:04"), truncate(e.Model, 24),
				e.InputTokens, e.OutputTokens, e.LatencyMs, result)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one hint request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		fmt.Printf("%s via %s, %s\n", e.Model, e.Provider, e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("%d tokens in, %d out, %dms\n", e.InputTokens, e.OutputTokens, e.LatencyMs)
		if e.ErrorMessage != "" {
			fmt.Printf("Failed: %s\n", e.ErrorMessage)
		}
		for _, part := range []struct{ label, body string }{
			{"Prompt", e.RequestBody},
			{"Reply", e.ResponseBody},
		} {
			fmt.Printf("\n── %s ──\n", part.label)
			fmt.Println(lo.Ternary(part.body == "", "(not captured)", part.body))
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		usage, err := s.EventRepo().LLMUsageByModel(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(usage) == 0 {
			fmt.Println("No hint requests recorded.")
			return nil
		}

		fmt.Printf("%-28s  %6s  %9s  %9s  %10s\n", "Model", "Hints", "Input", "Output", "Cost")
		var total float64
		priced := true
		for _, u := range usage {
			cost := "?"
			if price, ok := llm.PriceOf(u.Key); ok {
				c := price.Cost(u.InputTokens, u.OutputTokens)
				total += c
				cost = formatCost(c)
			} else {
				priced = false
			}
			fmt.Printf("%-28s  %6d  %9d  %9d  %10s\n", truncate(u.Key, 28), u.Calls, u.InputTokens, u.OutputTokens, cost)
		}

		calls := lo.SumBy(usage, func(u store.LLMUsage) int { return u.Calls })
		fmt.Println(strings.Repeat("─", 70))
		fmt.Printf("%-28s  %6d  %9s  %9s  %10s\n",
			lo.Ternary(priced, "Total", "Total (some models unpriced)"), calls, "", "", formatCost(total))
		return nil
	},
}

// openStore opens the database alone, for commands that only read events.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().Bool("failed", false, "Show failed requests only")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
