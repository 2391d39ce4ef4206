// Job lifecycle commands (start, complete) for the worktracker CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

var jobStartCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Mark a job as in progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		j, err := a.jobs.Start(args[0])
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				fmt.Fprintln(os.Stderr, "job start:", err)
				os.Exit(exitUserError)
			}
			return err
		}
		fmt.Printf("Job %s is now %s\n", shortID(j.ID), j.Status)
		return nil
	},
}

var jobCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a job as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		j, err := a.jobs.Complete(args[0])
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				fmt.Fprintln(os.Stderr, "job complete:", err)
				os.Exit(exitUserError)
			}
			return err
		}
		fmt.Printf("Job %s is now %s\n", shortID(j.ID), j.Status)
		return nil
	},
}
