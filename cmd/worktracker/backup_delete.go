// Backup delete command for the worktracker CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

var backupDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a backup from the history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.backups.DeleteAuto(args[0]); err != nil {
			if errors.Is(err, types.ErrNotFound) {
				fmt.Fprintln(os.Stderr, "backup delete:", err)
				os.Exit(exitUserError)
			}
			return err
		}
		fmt.Println("Deleted backup", args[0])
		return nil
	},
}
