package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wordloop/wordloop/internal/vocab"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Build a dataset JSON file from markdown word lists",
	Long: `Parse the words and phrasal verbs markdown documents into a dataset.

Words use "## N. term" headings with "- " definition bullets and
"- Example:" bullets. Phrasal verbs use "### N. term" headings with the
meaning on the first line and an "*"-prefixed example.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		wordsPath, _ := cmd.Flags().GetString("words")
		phrasalPath, _ := cmd.Flags().GetString("phrasal")
		outPath, _ := cmd.Flags().GetString("output")
		if wordsPath == "" && phrasalPath == "" {
			return fmt.Errorf("at least one of --words or --phrasal is required")
		}

		var words, phrasal []vocab.LearningItem
		if wordsPath != "" {
			md, err := os.ReadFile(wordsPath)
			if err != nil {
				return fmt.Errorf("read words: %w", err)
			}
			words = vocab.ParseWords(string(md))
		}
		if phrasalPath != "" {
			md, err := os.ReadFile(phrasalPath)
			if err != nil {
				return fmt.Errorf("read phrasal verbs: %w", err)
			}
			phrasal = vocab.ParsePhrasalVerbs(string(md))
		}

		ds := vocab.Build(words, phrasal, time.Now())

		out := os.Stdout
		if outPath != "" && outPath != "-" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", outPath, err)
			}
			defer f.Close()
			out = f
		}
		if err := ds.Write(out); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "Imported %d words and %d phrasal verbs (%d items).\n",
			ds.Counts.Words, ds.Counts.PhrasalVerbs, ds.Counts.Total)
		return nil
	},
}

func init() {
	importCmd.Flags().String("words", "", "Markdown file with words")
	importCmd.Flags().String("phrasal", "", "Markdown file with phrasal verbs")
	importCmd.Flags().StringP("output", "o", "", "Output dataset file (default: stdout)")
}
