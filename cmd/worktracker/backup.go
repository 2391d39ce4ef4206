// Backup command group for the worktracker CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michelsoler74/work-tracker-pro/internal/backup"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create, inspect, and restore backups",
}

func init() {
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
	backupCmd.AddCommand(backupValidateCmd)
	backupCmd.AddCommand(backupSaveCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupDeleteCmd)
	backupCmd.AddCommand(backupStatsCmd)
}

// parseStrategy validates the --strategy flag value.
func parseStrategy(s string) backup.Strategy {
	strategy := backup.Strategy(s)
	if !backup.ValidStrategy(strategy) {
		fmt.Fprintf(os.Stderr, "unknown merge strategy %q (valid: skip, overwrite, add)\n", s)
		os.Exit(exitUserError)
	}
	return strategy
}

// printSummary reports what a restore did.
func printSummary(sum backup.Summary) {
	fmt.Printf("Restored %d workers, %d jobs (%d skipped, %d failed)\n",
		sum.WorkersRestored, sum.JobsRestored, sum.Skipped, sum.Failed)
	for _, warn := range sum.Warnings {
		fmt.Println("warning:", warn)
	}
}
