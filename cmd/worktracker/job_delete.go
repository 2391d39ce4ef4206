// Job delete command for the worktracker CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var jobDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.jobs.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted job: %s\n", args[0])
		return nil
	},
}
