// Worker command group for the worktracker CLI.
package main

import "github.com/spf13/cobra"

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Manage workers",
}

func init() {
	workerCmd.AddCommand(workerAddCmd)
	workerCmd.AddCommand(workerListCmd)
	workerCmd.AddCommand(workerShowCmd)
	workerCmd.AddCommand(workerUpdateCmd)
	workerCmd.AddCommand(workerDeleteCmd)
	workerCmd.AddCommand(workerHoursCmd)
	workerCmd.AddCommand(workerStatsCmd)
}
