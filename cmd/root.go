package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/wordloop/wordloop/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "wordloop",
	Short: "Terminal vocabulary drill",
	Long: `wordloop drills English words and phrasal verbs in the terminal.

Items move through five Leitner boxes: a correct answer promotes an item and
pushes its next review further out, a miss sends it back to box 1.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides WORDLOOP_DB)")
	pf.String("config", "", "Path to a config file (default: $XDG_CONFIG_HOME/wordloop/config.yaml)")
	pf.String("dataset", "", "Path to a dataset JSON file (default: built-in starter set)")
	pf.String("log-level", "info", "Log level: debug, info, warn or error")
	pf.String("category", "", "Category filter: All, Words or Phrasal Verbs (default: last used)")
	pf.String("mode", "", "Quiz mode: term_to_meaning or meaning_to_term (default: last used)")

	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the configuration for cmd, flags included.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	return config.Load(config.Options{ConfigFile: file, Flags: cmd.Flags()})
}
