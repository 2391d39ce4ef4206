// Init command creates the storage schema in the data directory.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the local storage",
	Long:  `Initialize creates the data directory and the database schema so later commands start from a known-good state.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		fmt.Println("initialized storage in", a.dataDir)
		return nil
	},
}
