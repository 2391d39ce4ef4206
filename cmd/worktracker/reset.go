// Reset command wipes the local database.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all local data and recreate empty storage",
	Long: `Reset destroys the database file and recreates the schema from scratch.
Backups in the history directory are kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			fmt.Print("This deletes ALL jobs and workers. Type 'yes' to continue: ")
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.TrimSpace(line) != "yes" {
				fmt.Println("aborted")
				return nil
			}
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.backend.Reset(); err != nil {
			if errors.Is(err, types.ErrDatabaseLocked) {
				fmt.Fprintln(os.Stderr, "reset: database is in use; close other worktracker sessions and retry")
				os.Exit(exitUserError)
			}
			return err
		}
		fmt.Println("storage reset")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "skip the confirmation prompt")
}
