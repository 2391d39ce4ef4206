// Worker stats command for the worktracker CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var workerStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show worker statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		stats, err := a.workers.Stats()
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(stats)
		}
		fmt.Println("Total:      ", stats.Total)
		fmt.Printf("Total hours: %.1f\n", stats.TotalHours)
		fmt.Printf("Avg hours:   %.1f\n", stats.AverageHours)
		if stats.Top != nil {
			fmt.Printf("Top worker:  %s (%.1f hours)\n", stats.Top.Name, stats.Top.Hours)
		}
		return nil
	},
}
