// Job show command for the worktracker CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

var jobShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one job in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		j, err := a.jobs.Get(args[0])
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				fmt.Fprintln(os.Stderr, "job show:", err)
				os.Exit(exitUserError)
			}
			return err
		}

		if flagJSON {
			return printJSON(j)
		}

		workers, err := a.workers.All()
		if err != nil {
			return err
		}

		fmt.Println("ID:         ", j.ID)
		fmt.Println("Title:      ", j.Title)
		fmt.Println("Description:", j.Description)
		fmt.Println("Date:       ", j.Date)
		fmt.Println("Status:     ", j.Status)
		fmt.Println("Workers:    ", assignedNames(j, workers))
		fmt.Println("Images:     ", len(j.Images))
		fmt.Println("Created:    ", j.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Println("Updated:    ", j.UpdatedAt.Format("2006-01-02 15:04"))
		return nil
	},
}
