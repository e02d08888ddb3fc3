package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List the items due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		rt, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		svc := rt.mastery
		due := svc.Tracker().Due(svc.Pool(), time.Now())
		if len(due) == 0 {
			fmt.Println("Nothing is due.")
			return nil
		}

		fmt.Printf("%-8s  %-30s  %3s  %8s  %s\n", "ID", "Term", "Box", "Attempts", "Meaning")
		fmt.Println(strings.Repeat("─", 100))
		shown := due
		if limit > 0 && len(shown) > limit {
			shown = shown[:limit]
		}
		for _, item := range shown {
			ps := svc.Get(item.ID)
			box, attempts := 1, 0
			if ps != nil {
				box, attempts = ps.Box, ps.Attempts
			}
			fmt.Printf("%-8s  %-30s  %3d  %8d  %s\n",
				item.ID, truncate(item.Term, 30), box, attempts, truncate(item.Meaning, 44))
		}
		if len(shown) < len(due) {
			fmt.Printf("\n%d of %d due items shown\n", len(shown), len(due))
		} else {
			fmt.Printf("\n%d due\n", len(due))
		}
		return nil
	},
}

func init() {
	dueCmd.Flags().IntP("limit", "n", 0, "Maximum number of items to list (0 = all)")
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
