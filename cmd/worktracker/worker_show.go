// Worker show command for the worktracker CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

var workerShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one worker and their assigned jobs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		w, err := a.workers.Get(args[0])
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				fmt.Fprintln(os.Stderr, "worker show:", err)
				os.Exit(exitUserError)
			}
			return err
		}

		jobs, err := a.jobs.ForWorker(w.ID)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(struct {
				types.Worker
				Jobs []types.Job `json:"jobs"`
			}{w, jobs})
		}

		fmt.Println("ID:       ", w.ID)
		fmt.Println("Name:     ", w.Name)
		fmt.Println("Specialty:", w.Specialty)
		if w.Phone != "" {
			fmt.Println("Phone:    ", w.Phone)
		}
		if w.Email != "" {
			fmt.Println("Email:    ", w.Email)
		}
		fmt.Printf("Hours:     %.1f\n", w.Hours)
		fmt.Println("Jobs:     ", len(jobs))
		for _, j := range jobs {
			fmt.Printf("  %s  %s (%s)\n", shortID(j.ID), j.Title, j.Status)
		}
		return nil
	},
}
