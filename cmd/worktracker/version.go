// Version command for the worktracker CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/michelsoler74/work-tracker-pro/pkg/worktracker"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the worktracker version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("worktracker", worktracker.Version)
	},
}
