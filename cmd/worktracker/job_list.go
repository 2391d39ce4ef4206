// Job list command for the worktracker CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

var (
	jobListStatus string
	jobListWorker string
)

var jobListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs, optionally filtered by status or worker",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		var jobs []types.Job
		switch {
		case jobListStatus != "":
			jobs, err = a.jobs.ByStatus(jobListStatus)
		case jobListWorker != "":
			jobs, err = a.jobs.ForWorker(jobListWorker)
		default:
			jobs, err = a.jobs.All()
		}
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(jobs)
		}

		workers, err := a.workers.All()
		if err != nil {
			return err
		}

		w := newTabWriter()
		fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tDATE\tWORKERS")
		for _, j := range jobs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", shortID(j.ID), j.Title, j.Status, j.Date, assignedNames(j, workers))
		}
		return w.Flush()
	},
}

func init() {
	jobListCmd.Flags().StringVar(&jobListStatus, "status", "", "filter by status (Pendiente, En Progreso, Completado)")
	jobListCmd.Flags().StringVar(&jobListWorker, "worker", "", "filter by assigned worker id")
}
