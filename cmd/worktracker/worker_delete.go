// Worker delete command for the worktracker CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var workerDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a worker",
	Long: `Delete removes the worker record. Jobs that reference the worker keep
the assignment id; it is simply no longer shown once it stops resolving.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.workers.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted worker: %s\n", args[0])
		return nil
	},
}
