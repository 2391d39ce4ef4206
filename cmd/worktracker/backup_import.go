// Backup import command for the worktracker CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

var backupImportStrategy string

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore a snapshot file into the live data",
	Long: `Import validates the snapshot and merges it using the chosen strategy:
skip keeps existing records, overwrite replaces them, add inserts
everything under fresh ids. A safety backup of the current state is saved
first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strategy := parseStrategy(backupImportStrategy)

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		sum, err := a.backups.ImportFile(args[0], strategy)
		if err != nil {
			if errors.Is(err, types.ErrBackupInvalid) {
				fmt.Fprintln(os.Stderr, "backup import:", err)
				os.Exit(exitUserError)
			}
			return err
		}
		printSummary(sum)
		return nil
	},
}

func init() {
	backupImportCmd.Flags().StringVar(&backupImportStrategy, "strategy", "skip", "merge strategy: skip, overwrite, add")
}
