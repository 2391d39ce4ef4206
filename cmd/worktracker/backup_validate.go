// Backup validate command for the worktracker CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var backupValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a snapshot file without restoring it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		report, err := a.backups.ValidateFile(args[0])
		if err != nil {
			return err
		}

		for _, e := range report.Errors {
			fmt.Println("error:", e)
		}
		for _, w := range report.Warnings {
			fmt.Println("warning:", w)
		}
		if !report.OK() {
			fmt.Println("snapshot is NOT restorable")
			os.Exit(exitUserError)
		}
		fmt.Println("snapshot is valid")
		return nil
	},
}
