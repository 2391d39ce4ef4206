// Job command group for the worktracker CLI.
package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/michelsoler74/work-tracker-pro/internal/service"
	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Manage jobs",
}

func init() {
	jobCmd.AddCommand(jobAddCmd)
	jobCmd.AddCommand(jobListCmd)
	jobCmd.AddCommand(jobShowCmd)
	jobCmd.AddCommand(jobUpdateCmd)
	jobCmd.AddCommand(jobDeleteCmd)
	jobCmd.AddCommand(jobStartCmd)
	jobCmd.AddCommand(jobCompleteCmd)
	jobCmd.AddCommand(jobStatsCmd)
}

// assignedNames lists the names of a job's workers, dangling ids filtered.
func assignedNames(j types.Job, workers []types.Worker) string {
	resolved := service.ResolveWorkers(j, workers)
	names := make([]string, len(resolved))
	for i, w := range resolved {
		names[i] = w.Name
	}
	return strings.Join(names, ", ")
}
