// Worker hours command for the worktracker CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

var workerHoursCmd = &cobra.Command{
	Use:   "hours <id> <hours>",
	Short: "Add worked hours to a worker's total",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		hours, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "worker hours: %q is not a number\n", args[1])
			os.Exit(exitUserError)
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		w, err := a.workers.AddHours(args[0], hours)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				fmt.Fprintln(os.Stderr, "worker hours:", err)
				os.Exit(exitUserError)
			}
			return err
		}
		fmt.Printf("Worker %s now has %.1f hours\n", shortID(w.ID), w.Hours)
		return nil
	},
}
