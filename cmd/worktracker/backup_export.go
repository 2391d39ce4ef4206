// Backup export command for the worktracker CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	backupExportOut         string
	backupExportStripImages bool
)

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a full snapshot to a file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		path, err := a.backups.Export(backupExportOut, backupExportStripImages)
		if err != nil {
			return err
		}
		fmt.Println("Backup written to", path)
		return nil
	},
}

func init() {
	backupExportCmd.Flags().StringVar(&backupExportOut, "out", ".", "output directory")
	backupExportCmd.Flags().BoolVar(&backupExportStripImages, "strip-images", false, "drop attached images from the snapshot")
}
