// Backup restore command for the worktracker CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

var backupRestoreStrategy string

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a backup from the history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strategy := parseStrategy(backupRestoreStrategy)

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		sum, err := a.backups.RestoreAuto(args[0], strategy)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrBackupInvalid) {
				fmt.Fprintln(os.Stderr, "backup restore:", err)
				os.Exit(exitUserError)
			}
			return err
		}
		printSummary(sum)
		return nil
	},
}

func init() {
	backupRestoreCmd.Flags().StringVar(&backupRestoreStrategy, "strategy", "skip", "merge strategy: skip, overwrite, add")
}
