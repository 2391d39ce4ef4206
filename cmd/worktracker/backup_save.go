// Backup save command stores a snapshot in the rolling history.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backupSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a snapshot into the automatic-backup history",
	Long: `Save stores a snapshot in the data directory's backup history, subject
to the same rolling cap as scheduled backups.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		entry, err := a.backups.SaveAuto("manual")
		if err != nil {
			return err
		}
		fmt.Printf("Saved backup %s (%d jobs, %d workers)\n", entry.ID, entry.Jobs, entry.Workers)
		return nil
	},
}
