// Backup stats command for the worktracker CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backupStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show backup history statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		stats, err := a.backups.HistoryStats()
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(stats)
		}
		fmt.Printf("Backups:  %d of %d\n", stats.Count, stats.Cap)
		if stats.Newest != nil {
			fmt.Println("Newest:  ", stats.Newest.Format("2006-01-02 15:04"))
		}
		if stats.Oldest != nil {
			fmt.Println("Oldest:  ", stats.Oldest.Format("2006-01-02 15:04"))
		}
		fmt.Printf("On disk:  %d bytes\n", stats.DirBytes)
		return nil
	},
}
