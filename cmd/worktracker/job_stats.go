// Job stats command for the worktracker CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var jobStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show job statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		stats, err := a.jobs.Stats()
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(stats)
		}
		fmt.Println("Total:      ", stats.Total)
		fmt.Println("Pending:    ", stats.Pending)
		fmt.Println("In progress:", stats.InProgress)
		fmt.Println("Completed:  ", stats.Completed)
		fmt.Printf("Completion:  %.1f%%\n", stats.CompletionRate)
		return nil
	},
}
