package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wordloop/wordloop/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export progress as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("output")

		rt, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		out := os.Stdout
		if outPath != "" && outPath != "-" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", outPath, err)
			}
			defer f.Close()
			out = f
		}
		return store.ExportProgress(out, rt.mastery.Data(), time.Now())
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replace progress with a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()

		data, err := store.ImportProgress(f)
		if err != nil {
			return err
		}

		rt, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.mastery.Restore(cmd.Context(), data); err != nil {
			return fmt.Errorf("restore progress: %w", err)
		}
		if len(data.Recovered) > 0 {
			fmt.Printf("Reset %d unreadable entries: %s\n", len(data.Recovered), strings.Join(data.Recovered, ", "))
		}
		st := rt.mastery.Stats()
		fmt.Printf("Restored %d entries. %d due, %d/%d mastered.\n",
			len(data.Progress), st.Due, st.Mastered, st.Total)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
}
