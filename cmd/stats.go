package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wordloop/wordloop/internal/spacedrep"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		svc := rt.mastery
		st := svc.Stats()

		completed := "not yet"
		if st.Completed {
			completed = "yes"
		}
		fmt.Printf("Category:   %s\n", svc.Category())
		fmt.Printf("Mode:       %s\n", svc.Mode().Label())
		fmt.Printf("Total:      %d\n", st.Total)
		fmt.Printf("Due now:    %d\n", st.Due)
		fmt.Printf("Mastered:   %d/%d\n", st.Mastered, st.Total)
		fmt.Printf("Completed:  %s\n", completed)

		fmt.Println()
		fmt.Printf("%-5s  %-9s  %6s\n", "Box", "Interval", "Items")
		fmt.Println(strings.Repeat("─", 24))
		for i, n := range st.PerBox {
			fmt.Printf("%-5d  %-9s  %6d\n", i+1, formatInterval(spacedrep.IntervalFor(i+1)), n)
		}
		return nil
	},
}

func formatInterval(d time.Duration) string {
	days := int(d.Hours() / 24)
	switch days {
	case 0:
		return "now"
	case 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}
